package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barstock/backend/internal/domain/inventory"
	"github.com/barstock/backend/internal/domain/shared"
)

var countSortFields = map[string]bool{
	"name":           true,
	"status":         true,
	"scheduled_date": true,
	"completed_date": true,
}

// GormCountRepository implements CountRepository using GORM
type GormCountRepository struct {
	db *gorm.DB
}

// NewGormCountRepository creates a new GormCountRepository
func NewGormCountRepository(db *gorm.DB) *GormCountRepository {
	return &GormCountRepository{db: db}
}

// Save creates or updates a count with its items
func (r *GormCountRepository) Save(ctx context.Context, count *inventory.Count) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(count).Error; err != nil {
			return err
		}

		// Reconcile items: delete removed ones, save the rest.
		currentItemIDs := make([]uuid.UUID, len(count.Items))
		for i, item := range count.Items {
			currentItemIDs[i] = item.ID
		}

		query := tx.Where("count_id = ?", count.ID)
		if len(currentItemIDs) > 0 {
			query = query.Where("id NOT IN ?", currentItemIDs)
		}
		if err := query.Delete(&inventory.CountItem{}).Error; err != nil {
			return err
		}

		for i := range count.Items {
			count.Items[i].CountID = count.ID
			if err := tx.Save(&count.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds a count by its ID, loading its items
func (r *GormCountRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Count, error) {
	var count inventory.Count
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&count, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &count, nil
}

// FindAll finds all counts matching the filter
func (r *GormCountRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*inventory.Count], error) {
	return r.findPage(ctx, filter, nil)
}

// FindByLocation finds all counts taken at a location
func (r *GormCountRepository) FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) (shared.Paginated[*inventory.Count], error) {
	return r.findPage(ctx, filter, func(q *gorm.DB) *gorm.DB {
		return q.Where("location_id = ?", locationID)
	})
}

// Delete deletes a count; its items go with it via the FK cascade
func (r *GormCountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Count{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCountRepository) findPage(ctx context.Context, filter shared.Filter, scope func(*gorm.DB) *gorm.DB) (shared.Paginated[*inventory.Count], error) {
	query := r.db.WithContext(ctx).Model(&inventory.Count{})
	if scope != nil {
		query = scope(query)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR notes ILIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "created_by":
			query = query.Where("created_by = ?", value)
		}
	}
	return findPage[*inventory.Count](query, filter, countSortFields, "created_at")
}

var _ inventory.CountRepository = (*GormCountRepository)(nil)

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barstock/backend/internal/domain/partner"
	"github.com/barstock/backend/internal/domain/shared"
)

var locationSortFields = map[string]bool{
	"name": true,
}

// GormLocationRepository implements LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// Save creates or updates a location
func (r *GormLocationRepository) Save(ctx context.Context, location *partner.Location) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// FindByID finds a location by its ID
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Location, error) {
	var location partner.Location
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindAll finds all locations matching the filter
func (r *GormLocationRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*partner.Location], error) {
	query := r.db.WithContext(ctx).Model(&partner.Location{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "is_storage":
			query = query.Where("is_storage = ?", value)
		case "is_service":
			query = query.Where("is_service = ?", value)
		}
	}
	return findPage[*partner.Location](query, filter, locationSortFields, "name")
}

// FindDefaultStorage returns the first active storage location ordered
// by name, or shared.ErrNotFound when none exists.
func (r *GormLocationRepository) FindDefaultStorage(ctx context.Context) (*partner.Location, error) {
	var location partner.Location
	if err := r.db.WithContext(ctx).
		Where("is_storage = ? AND is_active = ?", true, true).
		Order("name ASC").
		First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// Delete deletes a location
func (r *GormLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Location{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ partner.LocationRepository = (*GormLocationRepository)(nil)

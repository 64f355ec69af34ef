package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/barstock/backend/internal/domain/inventory"
	"github.com/barstock/backend/internal/domain/shared"
)

var stockLevelSortFields = map[string]bool{
	"product_id":  true,
	"location_id": true,
	"quantity":    true,
}

// GormStockLevelRepository implements StockLevelRepository using GORM
type GormStockLevelRepository struct {
	db *gorm.DB
}

// NewGormStockLevelRepository creates a new GormStockLevelRepository
func NewGormStockLevelRepository(db *gorm.DB) *GormStockLevelRepository {
	return &GormStockLevelRepository{db: db}
}

// GetOrCreate returns the stock row for (product, location), inserting
// a zero-quantity row first when none exists.
func (r *GormStockLevelRepository) GetOrCreate(ctx context.Context, productID, locationID uuid.UUID) (*inventory.StockLevel, error) {
	level, err := r.FindByProductAndLocation(ctx, productID, locationID)
	if err == nil {
		return level, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	level = inventory.NewStockLevel(productID, locationID)

	// ON CONFLICT DO NOTHING absorbs the race where two transactions
	// insert the same (product, location) pair concurrently.
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "location_id"}},
			DoNothing: true,
		}).
		Create(level)
	if result.Error != nil {
		return nil, result.Error
	}

	// RowsAffected == 0 means another transaction won the insert;
	// fetch the row it created.
	if result.RowsAffected == 0 {
		return r.FindByProductAndLocation(ctx, productID, locationID)
	}
	return level, nil
}

// FindByProductAndLocation finds the stock row for a product at a location
func (r *GormStockLevelRepository) FindByProductAndLocation(ctx context.Context, productID, locationID uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		First(&level).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

// FindByProduct finds all stock rows for a product across locations
func (r *GormStockLevelRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*inventory.StockLevel, error) {
	var levels []*inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("location_id ASC").
		Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// FindByLocation finds all stock rows at a location
func (r *GormStockLevelRepository) FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) (shared.Paginated[*inventory.StockLevel], error) {
	query := r.db.WithContext(ctx).
		Model(&inventory.StockLevel{}).
		Where("location_id = ?", locationID)
	return findPage[*inventory.StockLevel](query, filter, stockLevelSortFields, "product_id")
}

// FindAll finds all stock rows matching the filter
func (r *GormStockLevelRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*inventory.StockLevel], error) {
	query := r.db.WithContext(ctx).Model(&inventory.StockLevel{})
	if nonZero, ok := filter.Filters["non_zero"]; ok && nonZero == true {
		query = query.Where("quantity <> 0")
	}
	return findPage[*inventory.StockLevel](query, filter, stockLevelSortFields, "product_id")
}

// SaveWithLock persists the row only if its stored version is one
// behind the in-memory version. RowsAffected == 0 means another
// transaction moved the row first; the caller retries from a fresh
// read.
func (r *GormStockLevelRepository) SaveWithLock(ctx context.Context, level *inventory.StockLevel) error {
	result := r.db.WithContext(ctx).
		Model(level).
		Where("id = ? AND version = ?", level.ID, level.Version-1).
		Updates(map[string]interface{}{
			"quantity":   level.Quantity,
			"version":    level.Version,
			"updated_at": level.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

var _ inventory.StockLevelRepository = (*GormStockLevelRepository)(nil)

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barstock/backend/internal/domain/catalog"
	"github.com/barstock/backend/internal/domain/shared"
)

var productSortFields = map[string]bool{
	"name":       true,
	"sku":        true,
	"unit_price": true,
	"unit_type":  true,
}

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySKU finds a product by SKU within a supplier's catalog. SKUs
// are only unique per supplier, so a nil supplierID matches products
// with no supplier assigned.
func (r *GormProductRepository) FindBySKU(ctx context.Context, supplierID *uuid.UUID, sku string) (*catalog.Product, error) {
	query := r.db.WithContext(ctx).Where("sku = ?", sku)
	if supplierID != nil {
		query = query.Where("supplier_id = ?", *supplierID)
	} else {
		query = query.Where("supplier_id IS NULL")
	}

	var product catalog.Product
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	return r.findPage(ctx, filter, nil)
}

// FindByCategory finds all products in a category
func (r *GormProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	return r.findPage(ctx, filter, func(q *gorm.DB) *gorm.DB {
		return q.Where("category_id = ?", categoryID)
	})
}

// FindBySupplier finds all products sourced from a supplier
func (r *GormProductRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	return r.findPage(ctx, filter, func(q *gorm.DB) *gorm.DB {
		return q.Where("supplier_id = ?", supplierID)
	})
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) findPage(ctx context.Context, filter shared.Filter, scope func(*gorm.DB) *gorm.DB) (shared.Paginated[*catalog.Product], error) {
	query := r.db.WithContext(ctx).Model(&catalog.Product{})
	if scope != nil {
		query = scope(query)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ? OR barcode ILIKE ?", pattern, pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "unit_type":
			query = query.Where("unit_type = ?", value)
		}
	}
	return findPage[*catalog.Product](query, filter, productSortFields, "name")
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)

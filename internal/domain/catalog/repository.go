package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/barstock/backend/internal/domain/shared"
)

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	Save(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Category], error)
	CountProducts(ctx context.Context, categoryID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, supplierID *uuid.UUID, sku string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Product], error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) (shared.Paginated[*Product], error)
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (shared.Paginated[*Product], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/barstock/backend/internal/domain/shared"
)

// SupplierRepository defines persistence operations for suppliers
type SupplierRepository interface {
	Save(ctx context.Context, supplier *Supplier) error
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Supplier], error)
	CountReferences(ctx context.Context, supplierID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LocationRepository defines persistence operations for locations
type LocationRepository interface {
	Save(ctx context.Context, location *Location) error
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Location], error)
	// FindDefaultStorage returns the first active storage location
	// ordered by name, or shared.ErrNotFound when none exists.
	FindDefaultStorage(ctx context.Context) (*Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

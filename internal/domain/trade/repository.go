package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/barstock/backend/internal/domain/shared"
)

// OrderRepository defines persistence operations for purchase orders
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	// FindByID loads the order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Order], error)
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (shared.Paginated[*Order], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

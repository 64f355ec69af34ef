package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/barstock/backend/internal/domain/shared"
)

// StockLevelRepository defines persistence operations for stock levels
type StockLevelRepository interface {
	// GetOrCreate returns the row for (product, location), inserting a
	// zero-quantity row first when none exists.
	GetOrCreate(ctx context.Context, productID, locationID uuid.UUID) (*StockLevel, error)
	FindByProductAndLocation(ctx context.Context, productID, locationID uuid.UUID) (*StockLevel, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*StockLevel, error)
	FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) (shared.Paginated[*StockLevel], error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*StockLevel], error)
	// SaveWithLock persists the row only if its stored version is one
	// behind the in-memory version; returns
	// shared.ErrConcurrencyConflict otherwise.
	SaveWithLock(ctx context.Context, level *StockLevel) error
}

// TransactionRepository defines persistence operations for the ledger.
// The ledger is append-only: rows are created and read, never updated
// or deleted.
type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FindByTransactionID(ctx context.Context, transactionID uuid.UUID) (*Transaction, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Transaction], error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (shared.Paginated[*Transaction], error)
	FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) (shared.Paginated[*Transaction], error)
}

// CountRepository defines persistence operations for counting sessions
type CountRepository interface {
	Save(ctx context.Context, count *Count) error
	// FindByID loads the count with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*Count, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Count], error)
	FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) (shared.Paginated[*Count], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

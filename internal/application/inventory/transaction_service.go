package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/barstock/backend/internal/domain/inventory"
	"github.com/barstock/backend/internal/domain/shared"
)

// maxApplyRetries bounds how often a conflicted apply is re-run before
// the conflict surfaces as a consistency error.
const maxApplyRetries = 3

// ApplyTransactionInput carries everything needed to record one stock movement
type ApplyTransactionInput struct {
	Type                  inventory.TransactionType
	ProductID             uuid.UUID
	LocationID            uuid.UUID
	DestinationLocationID *uuid.UUID
	Quantity              decimal.Decimal
	UnitPrice             decimal.Decimal
	PerformedBy           string
	Reference             string
	Notes                 string
}

// TransactionService is the engine that applies stock movements: it
// appends the ledger row and mutates the derived stock level rows in
// one atomic unit, retrying the whole unit on write-write conflicts.
type TransactionService struct {
	scope           TransactionScope
	transactionRepo inventory.TransactionRepository
	cache           StockCache
}

// NewTransactionService creates a new TransactionService. cache may be
// nil when no read cache is configured.
func NewTransactionService(scope TransactionScope, transactionRepo inventory.TransactionRepository, cache StockCache) *TransactionService {
	return &TransactionService{
		scope:           scope,
		transactionRepo: transactionRepo,
		cache:           cache,
	}
}

// Apply validates and applies one stock movement. Validation failures
// reject before any write. Optimistic-lock conflicts re-run the whole
// atomic unit; a conflict that survives all retries surfaces as a
// consistency error.
func (s *TransactionService) Apply(ctx context.Context, input ApplyTransactionInput) (*inventory.Transaction, error) {
	tx, err := inventory.NewTransaction(
		input.Type,
		input.ProductID, input.LocationID, input.DestinationLocationID,
		input.Quantity, input.UnitPrice,
		input.PerformedBy, input.Reference, input.Notes,
	)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxApplyRetries; attempt++ {
		lastErr = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
			return ApplyWithRepos(ctx, repos, tx)
		})
		if lastErr == nil {
			s.invalidate(ctx, tx)
			return tx, nil
		}
		if !errors.Is(lastErr, shared.ErrConcurrencyConflict) {
			return nil, lastErr
		}
	}
	return nil, shared.NewConsistencyError("stock movement for product %s could not be applied after %d attempts: %v",
		tx.ProductID, maxApplyRetries, lastErr)
}

// ApplyWithRepos applies an already-validated movement using the given
// transactional repositories. Workflows that bundle several movements
// with other writes (order receipt, count reconciliation) call this
// inside their own scope so the whole bundle commits or rolls back
// together.
func ApplyWithRepos(ctx context.Context, repos TransactionalRepositories, tx *inventory.Transaction) error {
	source, err := repos.StockLevelRepo().GetOrCreate(ctx, tx.ProductID, tx.LocationID)
	if err != nil {
		return err
	}

	// a transfer may not move more than the source holds: clamping the
	// source while crediting the destination would mint stock and break
	// ledger replay
	if tx.IsTransfer() && source.Quantity.LessThan(tx.Quantity.Abs()) {
		return shared.NewValidationError("quantity", "insufficient stock at source location")
	}

	// the ledger row before the stock rows: it is the source of truth
	// they are derived from
	if err := repos.TransactionRepo().Create(ctx, tx); err != nil {
		return err
	}

	if tx.IsTransfer() {
		dest, err := repos.StockLevelRepo().GetOrCreate(ctx, tx.ProductID, *tx.DestinationLocationID)
		if err != nil {
			return err
		}
		source.Add(tx.Quantity, false)
		dest.Add(tx.Quantity.Abs(), false)
		if err := repos.StockLevelRepo().SaveWithLock(ctx, source); err != nil {
			return err
		}
		return repos.StockLevelRepo().SaveWithLock(ctx, dest)
	}

	source.Add(tx.Quantity, tx.AllowsNegativeStock())
	return repos.StockLevelRepo().SaveWithLock(ctx, source)
}

// GetByID returns one ledger row
func (s *TransactionService) GetByID(ctx context.Context, id uuid.UUID) (*inventory.Transaction, error) {
	return s.transactionRepo.FindByID(ctx, id)
}

// List returns ledger rows matching the filter
func (s *TransactionService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*inventory.Transaction], error) {
	return s.transactionRepo.FindAll(ctx, filter)
}

// ListByProduct returns a product's ledger rows
func (s *TransactionService) ListByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (shared.Paginated[*inventory.Transaction], error) {
	return s.transactionRepo.FindByProduct(ctx, productID, filter)
}

// ListByLocation returns a location's ledger rows
func (s *TransactionService) ListByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) (shared.Paginated[*inventory.Transaction], error) {
	return s.transactionRepo.FindByLocation(ctx, locationID, filter)
}

func (s *TransactionService) invalidate(ctx context.Context, tx *inventory.Transaction) {
	if s.cache == nil {
		return
	}
	locations := []uuid.UUID{tx.LocationID}
	if tx.DestinationLocationID != nil {
		locations = append(locations, *tx.DestinationLocationID)
	}
	s.cache.Invalidate(ctx, tx.ProductID, locations...)
}

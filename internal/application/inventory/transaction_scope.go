package inventory

import (
	"context"

	"github.com/barstock/backend/internal/domain/inventory"
	"github.com/barstock/backend/internal/domain/partner"
	"github.com/barstock/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories
// the stock workflows touch. A function executed within a scope sees
// all repository operations as part of one database transaction,
// committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs fn within a database transaction. An error from fn
	// rolls the transaction back; nil commits it.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped
// to the current transaction. Orders and locations are included
// because order receipt flips order state and moves stock in the same
// atomic unit.
type TransactionalRepositories interface {
	StockLevelRepo() inventory.StockLevelRepository
	TransactionRepo() inventory.TransactionRepository
	CountRepo() inventory.CountRepository
	OrderRepo() trade.OrderRepository
	LocationRepo() partner.LocationRepository
}

// NoOpTransactionScope runs functions without a real transaction.
// Useful in tests with mock repositories.
type NoOpTransactionScope struct {
	stockLevelRepo  inventory.StockLevelRepository
	transactionRepo inventory.TransactionRepository
	countRepo       inventory.CountRepository
	orderRepo       trade.OrderRepository
	locationRepo    partner.LocationRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	stockLevelRepo inventory.StockLevelRepository,
	transactionRepo inventory.TransactionRepository,
	countRepo inventory.CountRepository,
	orderRepo trade.OrderRepository,
	locationRepo partner.LocationRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockLevelRepo:  stockLevelRepo,
		transactionRepo: transactionRepo,
		countRepo:       countRepo,
		orderRepo:       orderRepo,
		locationRepo:    locationRepo,
	}
}

// Execute runs fn directly without transaction semantics
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// StockLevelRepo returns the stock level repository
func (s *NoOpTransactionScope) StockLevelRepo() inventory.StockLevelRepository {
	return s.stockLevelRepo
}

// TransactionRepo returns the ledger repository
func (s *NoOpTransactionScope) TransactionRepo() inventory.TransactionRepository {
	return s.transactionRepo
}

// CountRepo returns the counting session repository
func (s *NoOpTransactionScope) CountRepo() inventory.CountRepository {
	return s.countRepo
}

// OrderRepo returns the purchase order repository
func (s *NoOpTransactionScope) OrderRepo() trade.OrderRepository {
	return s.orderRepo
}

// LocationRepo returns the location repository
func (s *NoOpTransactionScope) LocationRepo() partner.LocationRepository {
	return s.locationRepo
}

package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/barstock/backend/internal/domain/inventory"
	"github.com/barstock/backend/internal/domain/partner"
	"github.com/barstock/backend/internal/domain/shared"
	"github.com/barstock/backend/internal/domain/trade"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) Save(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *mockOrderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*trade.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *mockOrderRepo) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*trade.Order], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*trade.Order]), args.Error(1)
}

func (m *mockOrderRepo) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (shared.Paginated[*trade.Order], error) {
	args := m.Called(ctx, supplierID, filter)
	return args.Get(0).(shared.Paginated[*trade.Order]), args.Error(1)
}

func (m *mockOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockLocationRepo struct {
	mock.Mock
}

func (m *mockLocationRepo) Save(ctx context.Context, location *partner.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *mockLocationRepo) FindByID(ctx context.Context, id uuid.UUID) (*partner.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Location), args.Error(1)
}

func (m *mockLocationRepo) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*partner.Location], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*partner.Location]), args.Error(1)
}

func (m *mockLocationRepo) FindDefaultStorage(ctx context.Context) (*partner.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Location), args.Error(1)
}

func (m *mockLocationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockStockLevelRepo struct {
	mock.Mock
}

func (m *mockStockLevelRepo) GetOrCreate(ctx context.Context, productID, locationID uuid.UUID) (*inventory.StockLevel, error) {
	args := m.Called(ctx, productID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockLevel), args.Error(1)
}

func (m *mockStockLevelRepo) FindByProductAndLocation(ctx context.Context, productID, locationID uuid.UUID) (*inventory.StockLevel, error) {
	args := m.Called(ctx, productID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockLevel), args.Error(1)
}

func (m *mockStockLevelRepo) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*inventory.StockLevel, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.StockLevel), args.Error(1)
}

func (m *mockStockLevelRepo) FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) (shared.Paginated[*inventory.StockLevel], error) {
	args := m.Called(ctx, locationID, filter)
	return args.Get(0).(shared.Paginated[*inventory.StockLevel]), args.Error(1)
}

func (m *mockStockLevelRepo) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*inventory.StockLevel], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*inventory.StockLevel]), args.Error(1)
}

func (m *mockStockLevelRepo) SaveWithLock(ctx context.Context, level *inventory.StockLevel) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

type mockTransactionRepo struct {
	mock.Mock
}

func (m *mockTransactionRepo) Create(ctx context.Context, tx *inventory.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) FindByTransactionID(ctx context.Context, transactionID uuid.UUID) (*inventory.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*inventory.Transaction], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*inventory.Transaction]), args.Error(1)
}

func (m *mockTransactionRepo) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (shared.Paginated[*inventory.Transaction], error) {
	args := m.Called(ctx, productID, filter)
	return args.Get(0).(shared.Paginated[*inventory.Transaction]), args.Error(1)
}

func (m *mockTransactionRepo) FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) (shared.Paginated[*inventory.Transaction], error) {
	args := m.Called(ctx, locationID, filter)
	return args.Get(0).(shared.Paginated[*inventory.Transaction]), args.Error(1)
}

package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/barstock/backend/internal/domain/catalog"
	"github.com/barstock/backend/internal/domain/inventory"
	"github.com/barstock/backend/internal/domain/shared"
)

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

type mockCountRepo struct {
	mock.Mock
}

func (m *mockCountRepo) Save(ctx context.Context, count *inventory.Count) error {
	args := m.Called(ctx, count)
	return args.Error(0)
}

func (m *mockCountRepo) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Count, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Count), args.Error(1)
}

func (m *mockCountRepo) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*inventory.Count], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*inventory.Count]), args.Error(1)
}

func (m *mockCountRepo) FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) (shared.Paginated[*inventory.Count], error) {
	args := m.Called(ctx, locationID, filter)
	return args.Get(0).(shared.Paginated[*inventory.Count]), args.Error(1)
}

func (m *mockCountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProductRepo) FindBySKU(ctx context.Context, supplierID *uuid.UUID, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, supplierID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProductRepo) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*catalog.Product]), args.Error(1)
}

func (m *mockProductRepo) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	args := m.Called(ctx, categoryID, filter)
	return args.Get(0).(shared.Paginated[*catalog.Product]), args.Error(1)
}

func (m *mockProductRepo) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	args := m.Called(ctx, supplierID, filter)
	return args.Get(0).(shared.Paginated[*catalog.Product]), args.Error(1)
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockStockCache struct {
	mock.Mock
}

func (m *mockStockCache) Get(ctx context.Context, productID, locationID uuid.UUID) (decimal.Decimal, bool) {
	args := m.Called(ctx, productID, locationID)
	return args.Get(0).(decimal.Decimal), args.Bool(1)
}

func (m *mockStockCache) Set(ctx context.Context, productID, locationID uuid.UUID, quantity decimal.Decimal) {
	m.Called(ctx, productID, locationID, quantity)
}

func (m *mockStockCache) Invalidate(ctx context.Context, productID uuid.UUID, locationIDs ...uuid.UUID) {
	m.Called(ctx, productID, locationIDs)
}

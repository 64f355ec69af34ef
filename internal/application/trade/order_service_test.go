package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appinventory "github.com/barstock/backend/internal/application/inventory"
	"github.com/barstock/backend/internal/domain/inventory"
	"github.com/barstock/backend/internal/domain/partner"
	"github.com/barstock/backend/internal/domain/shared"
	"github.com/barstock/backend/internal/domain/trade"
)

func newOrderService(orderRepo *mockOrderRepo, locationRepo *mockLocationRepo, stockRepo *mockStockLevelRepo, txRepo *mockTransactionRepo) *OrderService {
	scope := appinventory.NewNoOpTransactionScope(stockRepo, txRepo, nil, orderRepo, locationRepo)
	return NewOrderService(scope, orderRepo, nil)
}

func placedOrder(t *testing.T, productID uuid.UUID, receivedQty int64) *trade.Order {
	t.Helper()
	order, err := trade.NewOrder("PO-TEST0001", uuid.New(), "alice")
	require.NoError(t, err)
	item, err := order.AddItem(productID, decimal.NewFromInt(12), decimal.NewFromFloat(8.50), "")
	require.NoError(t, err)
	_, err = order.UpdateItem(item.ID, decimal.NewFromInt(12), decimal.NewFromFloat(8.50), decimal.NewFromInt(receivedQty), "")
	require.NoError(t, err)
	require.NoError(t, order.Place("alice"))
	return order
}

func TestOrderServiceCreate(t *testing.T) {
	orderRepo := new(mockOrderRepo)
	orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Order")).Return(nil)

	svc := newOrderService(orderRepo, new(mockLocationRepo), new(mockStockLevelRepo), new(mockTransactionRepo))
	order, err := svc.Create(context.Background(), CreateOrderInput{
		SupplierID: uuid.New(),
		CreatedBy:  "alice",
		Items: []OrderItemInput{
			{ProductID: uuid.New(), Quantity: decimal.NewFromInt(6), UnitPrice: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, trade.OrderDraft, order.Status)
	assert.Len(t, order.Items, 1)
	orderRepo.AssertExpectations(t)
}

func TestOrderServicePlace(t *testing.T) {
	order, err := trade.NewOrder("", uuid.New(), "alice")
	require.NoError(t, err)

	orderRepo := new(mockOrderRepo)
	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	orderRepo.On("Save", mock.Anything, order).Return(nil)

	svc := newOrderService(orderRepo, new(mockLocationRepo), new(mockStockLevelRepo), new(mockTransactionRepo))
	placed, err := svc.Place(context.Background(), order.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, trade.OrderPlaced, placed.Status)
	assert.NotNil(t, placed.OrderDate)
}

func TestOrderServiceReceive(t *testing.T) {
	productID := uuid.New()

	t.Run("books received movements at default storage", func(t *testing.T) {
		order := placedOrder(t, productID, 12)

		storage, err := partner.NewLocation("Walk-in Cooler", "", true, false)
		require.NoError(t, err)
		level := inventory.NewStockLevel(productID, storage.ID)

		orderRepo := new(mockOrderRepo)
		locationRepo := new(mockLocationRepo)
		stockRepo := new(mockStockLevelRepo)
		txRepo := new(mockTransactionRepo)

		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		locationRepo.On("FindDefaultStorage", mock.Anything).Return(storage, nil)
		txRepo.On("Create", mock.Anything, mock.MatchedBy(func(tx *inventory.Transaction) bool {
			return tx.Type == inventory.TransactionReceived &&
				tx.Quantity.Equal(decimal.NewFromInt(12)) &&
				tx.UnitPrice.Equal(decimal.NewFromFloat(8.50)) &&
				tx.Reference == "Order #PO-TEST0001" &&
				tx.PerformedBy == "bob"
		})).Return(nil)
		stockRepo.On("GetOrCreate", mock.Anything, productID, storage.ID).Return(level, nil)
		stockRepo.On("SaveWithLock", mock.Anything, level).Return(nil)
		orderRepo.On("Save", mock.Anything, order).Return(nil)

		svc := newOrderService(orderRepo, locationRepo, stockRepo, txRepo)
		received, err := svc.Receive(context.Background(), order.ID, "bob")
		require.NoError(t, err)

		assert.Equal(t, trade.OrderReceived, received.Status)
		assert.NotNil(t, received.ActualDeliveryDate)
		assert.True(t, level.Quantity.Equal(decimal.NewFromInt(12)))
		txRepo.AssertExpectations(t)
	})

	t.Run("zero-received lines are skipped", func(t *testing.T) {
		order := placedOrder(t, productID, 0)
		storage, err := partner.NewLocation("Walk-in Cooler", "", true, false)
		require.NoError(t, err)

		orderRepo := new(mockOrderRepo)
		locationRepo := new(mockLocationRepo)
		txRepo := new(mockTransactionRepo)

		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		locationRepo.On("FindDefaultStorage", mock.Anything).Return(storage, nil)
		orderRepo.On("Save", mock.Anything, order).Return(nil)

		svc := newOrderService(orderRepo, locationRepo, new(mockStockLevelRepo), txRepo)
		received, err := svc.Receive(context.Background(), order.ID, "bob")
		require.NoError(t, err)
		assert.Equal(t, trade.OrderReceived, received.Status)
		txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("designated delivery location wins over default", func(t *testing.T) {
		order := placedOrder(t, productID, 5)
		deliveryID := uuid.New()
		require.NoError(t, order.SetDeliveryLocation(&deliveryID))
		level := inventory.NewStockLevel(productID, deliveryID)

		orderRepo := new(mockOrderRepo)
		locationRepo := new(mockLocationRepo)
		stockRepo := new(mockStockLevelRepo)
		txRepo := new(mockTransactionRepo)

		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		stockRepo.On("GetOrCreate", mock.Anything, productID, deliveryID).Return(level, nil)
		stockRepo.On("SaveWithLock", mock.Anything, level).Return(nil)
		orderRepo.On("Save", mock.Anything, order).Return(nil)

		svc := newOrderService(orderRepo, locationRepo, stockRepo, txRepo)
		_, err := svc.Receive(context.Background(), order.ID, "bob")
		require.NoError(t, err)

		locationRepo.AssertNotCalled(t, "FindDefaultStorage", mock.Anything)
	})

	t.Run("rejects non-placed orders", func(t *testing.T) {
		order, err := trade.NewOrder("", uuid.New(), "alice")
		require.NoError(t, err)

		orderRepo := new(mockOrderRepo)
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		svc := newOrderService(orderRepo, new(mockLocationRepo), new(mockStockLevelRepo), new(mockTransactionRepo))
		_, err = svc.Receive(context.Background(), order.ID, "bob")
		var cerr *shared.ConflictError
		assert.ErrorAs(t, err, &cerr)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fails when no storage location exists", func(t *testing.T) {
		order := placedOrder(t, productID, 5)

		orderRepo := new(mockOrderRepo)
		locationRepo := new(mockLocationRepo)

		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		locationRepo.On("FindDefaultStorage", mock.Anything).Return(nil, shared.ErrNotFound)

		svc := newOrderService(orderRepo, locationRepo, new(mockStockLevelRepo), new(mockTransactionRepo))
		_, err := svc.Receive(context.Background(), order.ID, "bob")
		var verr *shared.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestOrderServiceDelete(t *testing.T) {
	t.Run("draft orders can be deleted", func(t *testing.T) {
		order, err := trade.NewOrder("", uuid.New(), "alice")
		require.NoError(t, err)

		orderRepo := new(mockOrderRepo)
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		orderRepo.On("Delete", mock.Anything, order.ID).Return(nil)

		svc := newOrderService(orderRepo, new(mockLocationRepo), new(mockStockLevelRepo), new(mockTransactionRepo))
		assert.NoError(t, svc.Delete(context.Background(), order.ID))
	})

	t.Run("placed orders are protected", func(t *testing.T) {
		order := placedOrder(t, uuid.New(), 0)

		orderRepo := new(mockOrderRepo)
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		svc := newOrderService(orderRepo, new(mockLocationRepo), new(mockStockLevelRepo), new(mockTransactionRepo))
		var cerr *shared.ConflictError
		assert.ErrorAs(t, svc.Delete(context.Background(), order.ID), &cerr)
		orderRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

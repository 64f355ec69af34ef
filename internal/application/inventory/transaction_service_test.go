package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/barstock/backend/internal/domain/inventory"
	"github.com/barstock/backend/internal/domain/shared"
)

func newEngine(stockRepo *mockStockLevelRepo, txRepo *mockTransactionRepo) *TransactionService {
	scope := NewNoOpTransactionScope(stockRepo, txRepo, nil, nil, nil)
	return NewTransactionService(scope, txRepo, nil)
}

func TestTransactionServiceApply(t *testing.T) {
	productID := uuid.New()
	locationID := uuid.New()

	t.Run("received adds to stock", func(t *testing.T) {
		stockRepo := new(mockStockLevelRepo)
		txRepo := new(mockTransactionRepo)

		level := inventory.NewStockLevel(productID, locationID)
		level.Add(decimal.NewFromInt(5), false)

		txRepo.On("Create", mock.Anything, mock.AnythingOfType("*inventory.Transaction")).Return(nil)
		stockRepo.On("GetOrCreate", mock.Anything, productID, locationID).Return(level, nil)
		stockRepo.On("SaveWithLock", mock.Anything, level).Return(nil)

		tx, err := newEngine(stockRepo, txRepo).Apply(context.Background(), ApplyTransactionInput{
			Type:        inventory.TransactionReceived,
			ProductID:   productID,
			LocationID:  locationID,
			Quantity:    decimal.NewFromInt(10),
			UnitPrice:   decimal.NewFromFloat(2.50),
			PerformedBy: "alice",
		})
		require.NoError(t, err)

		assert.True(t, level.Quantity.Equal(decimal.NewFromInt(15)))
		assert.Equal(t, inventory.TransactionReceived, tx.Type)
		txRepo.AssertExpectations(t)
		stockRepo.AssertExpectations(t)
	})

	t.Run("sold clamps stock at zero", func(t *testing.T) {
		stockRepo := new(mockStockLevelRepo)
		txRepo := new(mockTransactionRepo)

		level := inventory.NewStockLevel(productID, locationID)
		level.Add(decimal.NewFromInt(3), false)

		txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		stockRepo.On("GetOrCreate", mock.Anything, productID, locationID).Return(level, nil)
		stockRepo.On("SaveWithLock", mock.Anything, level).Return(nil)

		_, err := newEngine(stockRepo, txRepo).Apply(context.Background(), ApplyTransactionInput{
			Type:        inventory.TransactionSold,
			ProductID:   productID,
			LocationID:  locationID,
			Quantity:    decimal.NewFromInt(-8),
			UnitPrice:   decimal.NewFromInt(6),
			PerformedBy: "alice",
		})
		require.NoError(t, err)
		assert.True(t, level.Quantity.IsZero())
	})

	t.Run("adjustment may drive stock negative", func(t *testing.T) {
		stockRepo := new(mockStockLevelRepo)
		txRepo := new(mockTransactionRepo)

		level := inventory.NewStockLevel(productID, locationID)

		txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		stockRepo.On("GetOrCreate", mock.Anything, productID, locationID).Return(level, nil)
		stockRepo.On("SaveWithLock", mock.Anything, level).Return(nil)

		_, err := newEngine(stockRepo, txRepo).Apply(context.Background(), ApplyTransactionInput{
			Type:        inventory.TransactionAdjustment,
			ProductID:   productID,
			LocationID:  locationID,
			Quantity:    decimal.NewFromInt(-2),
			UnitPrice:   decimal.NewFromInt(1),
			PerformedBy: "alice",
		})
		require.NoError(t, err)
		assert.True(t, level.Quantity.Equal(decimal.NewFromInt(-2)))
	})

	t.Run("transfer moves stock between locations", func(t *testing.T) {
		stockRepo := new(mockStockLevelRepo)
		txRepo := new(mockTransactionRepo)
		destID := uuid.New()

		source := inventory.NewStockLevel(productID, locationID)
		source.Add(decimal.NewFromInt(10), false)
		dest := inventory.NewStockLevel(productID, destID)

		txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		stockRepo.On("GetOrCreate", mock.Anything, productID, locationID).Return(source, nil)
		stockRepo.On("GetOrCreate", mock.Anything, productID, destID).Return(dest, nil)
		stockRepo.On("SaveWithLock", mock.Anything, source).Return(nil)
		stockRepo.On("SaveWithLock", mock.Anything, dest).Return(nil)

		_, err := newEngine(stockRepo, txRepo).Apply(context.Background(), ApplyTransactionInput{
			Type:                  inventory.TransactionTransferred,
			ProductID:             productID,
			LocationID:            locationID,
			DestinationLocationID: &destID,
			Quantity:              decimal.NewFromInt(-4),
			UnitPrice:             decimal.NewFromInt(3),
			PerformedBy:           "alice",
		})
		require.NoError(t, err)

		assert.True(t, source.Quantity.Equal(decimal.NewFromInt(6)))
		assert.True(t, dest.Quantity.Equal(decimal.NewFromInt(4)))
		stockRepo.AssertExpectations(t)
	})

	t.Run("transfer cannot move more than the source holds", func(t *testing.T) {
		stockRepo := new(mockStockLevelRepo)
		txRepo := new(mockTransactionRepo)
		destID := uuid.New()

		source := inventory.NewStockLevel(productID, locationID)
		source.Add(decimal.NewFromInt(3), false)
		dest := inventory.NewStockLevel(productID, destID)
		sumBefore := source.Quantity.Add(dest.Quantity)

		stockRepo.On("GetOrCreate", mock.Anything, productID, locationID).Return(source, nil)

		_, err := newEngine(stockRepo, txRepo).Apply(context.Background(), ApplyTransactionInput{
			Type:                  inventory.TransactionTransferred,
			ProductID:             productID,
			LocationID:            locationID,
			DestinationLocationID: &destID,
			Quantity:              decimal.NewFromInt(-5),
			UnitPrice:             decimal.NewFromInt(3),
			PerformedBy:           "alice",
		})
		var verr *shared.ValidationError
		require.ErrorAs(t, err, &verr)

		// nothing moved, nothing minted
		assert.True(t, source.Quantity.Equal(decimal.NewFromInt(3)))
		assert.True(t, dest.Quantity.IsZero())
		assert.True(t, source.Quantity.Add(dest.Quantity).Equal(sumBefore))
		txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		stockRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("validation failure writes nothing", func(t *testing.T) {
		stockRepo := new(mockStockLevelRepo)
		txRepo := new(mockTransactionRepo)

		_, err := newEngine(stockRepo, txRepo).Apply(context.Background(), ApplyTransactionInput{
			Type:        inventory.TransactionSold,
			ProductID:   productID,
			LocationID:  locationID,
			Quantity:    decimal.NewFromInt(8), // wrong sign
			UnitPrice:   decimal.NewFromInt(6),
			PerformedBy: "alice",
		})
		var verr *shared.ValidationError
		require.ErrorAs(t, err, &verr)

		txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		stockRepo.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTransactionServiceRetries(t *testing.T) {
	productID := uuid.New()
	locationID := uuid.New()

	input := ApplyTransactionInput{
		Type:        inventory.TransactionReceived,
		ProductID:   productID,
		LocationID:  locationID,
		Quantity:    decimal.NewFromInt(5),
		UnitPrice:   decimal.NewFromInt(1),
		PerformedBy: "alice",
	}

	t.Run("conflict resolved on retry", func(t *testing.T) {
		stockRepo := new(mockStockLevelRepo)
		txRepo := new(mockTransactionRepo)

		first := inventory.NewStockLevel(productID, locationID)
		second := inventory.NewStockLevel(productID, locationID)

		txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		stockRepo.On("GetOrCreate", mock.Anything, productID, locationID).Return(first, nil).Once()
		stockRepo.On("SaveWithLock", mock.Anything, first).Return(shared.ErrConcurrencyConflict).Once()
		stockRepo.On("GetOrCreate", mock.Anything, productID, locationID).Return(second, nil).Once()
		stockRepo.On("SaveWithLock", mock.Anything, second).Return(nil).Once()

		_, err := newEngine(stockRepo, txRepo).Apply(context.Background(), input)
		require.NoError(t, err)
		assert.True(t, second.Quantity.Equal(decimal.NewFromInt(5)))
		stockRepo.AssertExpectations(t)
	})

	t.Run("persistent conflict surfaces as consistency error", func(t *testing.T) {
		stockRepo := new(mockStockLevelRepo)
		txRepo := new(mockTransactionRepo)

		txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		stockRepo.On("GetOrCreate", mock.Anything, productID, locationID).
			Return(inventory.NewStockLevel(productID, locationID), nil).Times(maxApplyRetries)
		stockRepo.On("SaveWithLock", mock.Anything, mock.Anything).
			Return(shared.ErrConcurrencyConflict).Times(maxApplyRetries)

		_, err := newEngine(stockRepo, txRepo).Apply(context.Background(), input)
		var cerr *shared.ConsistencyError
		require.ErrorAs(t, err, &cerr)
		stockRepo.AssertExpectations(t)
	})
}

func TestTransactionServiceCacheInvalidation(t *testing.T) {
	productID := uuid.New()
	locationID := uuid.New()
	destID := uuid.New()

	stockRepo := new(mockStockLevelRepo)
	txRepo := new(mockTransactionRepo)
	cache := new(mockStockCache)

	source := inventory.NewStockLevel(productID, locationID)
	source.Add(decimal.NewFromInt(10), false)
	dest := inventory.NewStockLevel(productID, destID)

	txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	stockRepo.On("GetOrCreate", mock.Anything, productID, locationID).Return(source, nil)
	stockRepo.On("GetOrCreate", mock.Anything, productID, destID).Return(dest, nil)
	stockRepo.On("SaveWithLock", mock.Anything, mock.Anything).Return(nil)
	cache.On("Invalidate", mock.Anything, productID, []uuid.UUID{locationID, destID}).Return()

	scope := NewNoOpTransactionScope(stockRepo, txRepo, nil, nil, nil)
	service := NewTransactionService(scope, txRepo, cache)

	_, err := service.Apply(context.Background(), ApplyTransactionInput{
		Type:                  inventory.TransactionTransferred,
		ProductID:             productID,
		LocationID:            locationID,
		DestinationLocationID: &destID,
		Quantity:              decimal.NewFromInt(-2),
		UnitPrice:             decimal.NewFromInt(1),
		PerformedBy:           "alice",
	})
	require.NoError(t, err)
	cache.AssertExpectations(t)
}

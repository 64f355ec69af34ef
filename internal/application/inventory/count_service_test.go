package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/barstock/backend/internal/domain/catalog"
	"github.com/barstock/backend/internal/domain/inventory"
	"github.com/barstock/backend/internal/domain/shared"
)

func newCountService(countRepo *mockCountRepo, stockRepo *mockStockLevelRepo, txRepo *mockTransactionRepo, productRepo *mockProductRepo) *CountService {
	scope := NewNoOpTransactionScope(stockRepo, txRepo, countRepo, nil, nil)
	return NewCountService(scope, countRepo, stockRepo, productRepo, nil)
}

func testProduct(t *testing.T, price float64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("House Gin", "GIN-001", decimal.NewFromFloat(price), decimal.NewFromInt(750), catalog.UnitTypeBottle)
	require.NoError(t, err)
	return p
}

func TestCountServiceCreate(t *testing.T) {
	locationID := uuid.New()
	productID := uuid.New()

	t.Run("seeds items with stock snapshots", func(t *testing.T) {
		countRepo := new(mockCountRepo)
		stockRepo := new(mockStockLevelRepo)

		level := inventory.NewStockLevel(productID, locationID)
		level.Add(decimal.NewFromInt(7), false)
		stockRepo.On("FindByProductAndLocation", mock.Anything, productID, locationID).Return(level, nil)
		countRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.Count")).Return(nil)

		svc := newCountService(countRepo, stockRepo, new(mockTransactionRepo), new(mockProductRepo))
		count, err := svc.Create(context.Background(), CreateCountInput{
			Name:       "Friday bar count",
			LocationID: locationID,
			CreatedBy:  "alice",
			ProductIDs: []uuid.UUID{productID},
		})
		require.NoError(t, err)
		require.Len(t, count.Items, 1)
		assert.True(t, count.Items[0].ExpectedQuantity.Equal(decimal.NewFromInt(7)))
	})

	t.Run("unknown stock rows snapshot as zero", func(t *testing.T) {
		countRepo := new(mockCountRepo)
		stockRepo := new(mockStockLevelRepo)

		stockRepo.On("FindByProductAndLocation", mock.Anything, productID, locationID).Return(nil, shared.ErrNotFound)
		countRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		svc := newCountService(countRepo, stockRepo, new(mockTransactionRepo), new(mockProductRepo))
		count, err := svc.Create(context.Background(), CreateCountInput{
			Name:       "Friday bar count",
			LocationID: locationID,
			CreatedBy:  "alice",
			ProductIDs: []uuid.UUID{productID},
		})
		require.NoError(t, err)
		assert.True(t, count.Items[0].ExpectedQuantity.IsZero())
	})
}

func TestCountServiceMarkItem(t *testing.T) {
	locationID := uuid.New()

	count, err := inventory.NewCount("Friday bar count", locationID, "alice", nil, "", "")
	require.NoError(t, err)
	item, err := count.AddItem(uuid.New(), decimal.NewFromInt(10))
	require.NoError(t, err)

	countRepo := new(mockCountRepo)
	countRepo.On("FindByID", mock.Anything, count.ID).Return(count, nil)
	countRepo.On("Save", mock.Anything, count).Return(nil)

	svc := newCountService(countRepo, new(mockStockLevelRepo), new(mockTransactionRepo), new(mockProductRepo))
	marked, err := svc.MarkItem(context.Background(), count.ID, item.ID, decimal.NewFromInt(8), "bob", "")
	require.NoError(t, err)
	assert.True(t, marked.IsCounted)
	countRepo.AssertExpectations(t)
}

func TestCountServiceComplete(t *testing.T) {
	locationID := uuid.New()
	productID := uuid.New()

	buildCount := func(t *testing.T) *inventory.Count {
		count, err := inventory.NewCount("Friday bar count", locationID, "alice", nil, "", "")
		require.NoError(t, err)
		item, err := count.AddItem(productID, decimal.NewFromInt(10))
		require.NoError(t, err)
		_, err = count.MarkItem(item.ID, decimal.NewFromInt(7), "bob", "")
		require.NoError(t, err)
		return count
	}

	t.Run("reconciles variances as adjustments", func(t *testing.T) {
		count := buildCount(t)
		countRepo := new(mockCountRepo)
		stockRepo := new(mockStockLevelRepo)
		txRepo := new(mockTransactionRepo)
		productRepo := new(mockProductRepo)

		product := testProduct(t, 25.00)
		level := inventory.NewStockLevel(productID, locationID)
		level.Add(decimal.NewFromInt(10), false)

		countRepo.On("FindByID", mock.Anything, count.ID).Return(count, nil)
		productRepo.On("FindByID", mock.Anything, productID).Return(product, nil)
		txRepo.On("Create", mock.Anything, mock.MatchedBy(func(tx *inventory.Transaction) bool {
			return tx.Type == inventory.TransactionAdjustment &&
				tx.Quantity.Equal(decimal.NewFromInt(-3)) &&
				tx.UnitPrice.Equal(decimal.NewFromFloat(25.00)) &&
				tx.Reference == "Count adjustment: Friday bar count" &&
				tx.PerformedBy == "carol"
		})).Return(nil)
		stockRepo.On("GetOrCreate", mock.Anything, productID, locationID).Return(level, nil)
		stockRepo.On("SaveWithLock", mock.Anything, level).Return(nil)
		countRepo.On("Save", mock.Anything, count).Return(nil)

		svc := newCountService(countRepo, stockRepo, txRepo, productRepo)
		completed, err := svc.Complete(context.Background(), count.ID, "carol")
		require.NoError(t, err)

		assert.Equal(t, inventory.CountCompleted, completed.Status)
		assert.NotNil(t, completed.CompletedDate)
		assert.True(t, level.Quantity.Equal(decimal.NewFromInt(7)))
		txRepo.AssertExpectations(t)
		countRepo.AssertExpectations(t)
	})

	t.Run("missing completed_by rejects without writes", func(t *testing.T) {
		count := buildCount(t)
		countRepo := new(mockCountRepo)
		txRepo := new(mockTransactionRepo)

		countRepo.On("FindByID", mock.Anything, count.ID).Return(count, nil)

		svc := newCountService(countRepo, new(mockStockLevelRepo), txRepo, new(mockProductRepo))
		_, err := svc.Complete(context.Background(), count.ID, "")
		var verr *shared.ValidationError
		require.ErrorAs(t, err, &verr)

		txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		countRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("completed count cannot be completed again", func(t *testing.T) {
		count := buildCount(t)
		require.NoError(t, count.Complete("bob"))

		countRepo := new(mockCountRepo)
		countRepo.On("FindByID", mock.Anything, count.ID).Return(count, nil)

		svc := newCountService(countRepo, new(mockStockLevelRepo), new(mockTransactionRepo), new(mockProductRepo))
		_, err := svc.Complete(context.Background(), count.ID, "carol")
		var cerr *shared.ConflictError
		assert.ErrorAs(t, err, &cerr)
	})

	t.Run("exact counts produce no adjustments", func(t *testing.T) {
		count, err := inventory.NewCount("Friday bar count", locationID, "alice", nil, "", "")
		require.NoError(t, err)
		item, err := count.AddItem(productID, decimal.NewFromInt(10))
		require.NoError(t, err)
		_, err = count.MarkItem(item.ID, decimal.NewFromInt(10), "bob", "")
		require.NoError(t, err)

		countRepo := new(mockCountRepo)
		txRepo := new(mockTransactionRepo)
		countRepo.On("FindByID", mock.Anything, count.ID).Return(count, nil)
		countRepo.On("Save", mock.Anything, count).Return(nil)

		svc := newCountService(countRepo, new(mockStockLevelRepo), txRepo, new(mockProductRepo))
		completed, err := svc.Complete(context.Background(), count.ID, "carol")
		require.NoError(t, err)
		assert.Equal(t, inventory.CountCompleted, completed.Status)
		txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCountServiceListUncountedItems(t *testing.T) {
	count, err := inventory.NewCount("Friday bar count", uuid.New(), "alice", nil, "", "")
	require.NoError(t, err)
	counted, err := count.AddItem(uuid.New(), decimal.NewFromInt(1))
	require.NoError(t, err)
	uncounted, err := count.AddItem(uuid.New(), decimal.NewFromInt(2))
	require.NoError(t, err)
	_, err = count.MarkItem(counted.ID, decimal.NewFromInt(1), "bob", "")
	require.NoError(t, err)

	countRepo := new(mockCountRepo)
	countRepo.On("FindByID", mock.Anything, count.ID).Return(count, nil)

	svc := newCountService(countRepo, new(mockStockLevelRepo), new(mockTransactionRepo), new(mockProductRepo))
	items, err := svc.ListUncountedItems(context.Background(), count.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uncounted.ProductID, items[0].ProductID)
}

package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appinventory "github.com/barstock/backend/internal/application/inventory"
	"github.com/barstock/backend/internal/domain/inventory"
	"github.com/barstock/backend/internal/domain/shared"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE inventory_transactions (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1,
			transaction_id TEXT NOT NULL UNIQUE,
			type TEXT NOT NULL,
			product_id TEXT NOT NULL,
			location_id TEXT NOT NULL,
			destination_location_id TEXT,
			quantity NUMERIC NOT NULL,
			unit_price NUMERIC NOT NULL,
			performed_by TEXT NOT NULL,
			reference TEXT,
			notes TEXT
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE stock_levels (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1,
			version INTEGER NOT NULL DEFAULT 1,
			product_id TEXT NOT NULL,
			location_id TEXT NOT NULL,
			quantity NUMERIC NOT NULL,
			UNIQUE(product_id, location_id)
		)
	`).Error
	require.NoError(t, err)

	return db
}

func newLedgerEngine(db *gorm.DB) *appinventory.TransactionService {
	scope := NewGormTransactionScope(db)
	return appinventory.NewTransactionService(scope, NewGormTransactionRepository(db), nil)
}

// Replaying a product's ledger rows from zero must land exactly on the
// live stock rows: the stock table is a derived cache of the ledger,
// never an independent source of truth.
func TestLedgerReplayMatchesStockLevels(t *testing.T) {
	db := setupLedgerTestDB(t)
	engine := newLedgerEngine(db)
	ctx := context.Background()

	productID := uuid.New()
	barID := uuid.New()
	cellarID := uuid.New()

	apply := func(input appinventory.ApplyTransactionInput) {
		t.Helper()
		input.ProductID = productID
		input.UnitPrice = decimal.NewFromInt(4)
		input.PerformedBy = "alice"
		_, err := engine.Apply(ctx, input)
		require.NoError(t, err)
	}

	apply(appinventory.ApplyTransactionInput{
		Type: inventory.TransactionReceived, LocationID: cellarID,
		Quantity: decimal.NewFromInt(10),
	})
	apply(appinventory.ApplyTransactionInput{
		Type: inventory.TransactionTransferred, LocationID: cellarID,
		DestinationLocationID: &barID, Quantity: decimal.NewFromInt(-4),
	})
	apply(appinventory.ApplyTransactionInput{
		Type: inventory.TransactionSold, LocationID: barID,
		Quantity: decimal.NewFromInt(-3),
	})
	apply(appinventory.ApplyTransactionInput{
		Type: inventory.TransactionAdjustment, LocationID: cellarID,
		Quantity: decimal.NewFromInt(-2),
	})
	apply(appinventory.ApplyTransactionInput{
		Type: inventory.TransactionReceived, LocationID: barID,
		Quantity: decimal.NewFromInt(5),
	})

	// an over-draw transfer must leave no trace in the ledger either
	_, err := engine.Apply(ctx, appinventory.ApplyTransactionInput{
		Type: inventory.TransactionTransferred, ProductID: productID,
		LocationID: barID, DestinationLocationID: &cellarID,
		Quantity: decimal.NewFromInt(-50), UnitPrice: decimal.NewFromInt(4),
		PerformedBy: "alice",
	})
	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)

	txRepo := NewGormTransactionRepository(db)
	page, err := txRepo.FindByProduct(ctx, productID, shared.Filter{
		Page: 1, PageSize: 100, OrderBy: "created_at", OrderDir: "asc",
	})
	require.NoError(t, err)
	require.Equal(t, int64(5), page.Total)

	// fold the ledger from zero with the engine's own movement rules
	replayed := make(map[uuid.UUID]*inventory.StockLevel)
	levelAt := func(locationID uuid.UUID) *inventory.StockLevel {
		if level, ok := replayed[locationID]; ok {
			return level
		}
		level := inventory.NewStockLevel(productID, locationID)
		replayed[locationID] = level
		return level
	}
	for _, tx := range page.Items {
		if tx.IsTransfer() {
			levelAt(tx.LocationID).Add(tx.Quantity, false)
			levelAt(*tx.DestinationLocationID).Add(tx.Quantity.Abs(), false)
			continue
		}
		levelAt(tx.LocationID).Add(tx.Quantity, tx.AllowsNegativeStock())
	}

	stockRepo := NewGormStockLevelRepository(db)
	live, err := stockRepo.FindByProduct(ctx, productID)
	require.NoError(t, err)
	require.Len(t, live, 2)

	var total decimal.Decimal
	for _, row := range live {
		level, ok := replayed[row.LocationID]
		require.True(t, ok, "live stock row without ledger history")
		assert.True(t, row.Quantity.Equal(level.Quantity),
			"replay drifted at location %s: live %s, replayed %s",
			row.LocationID, row.Quantity, level.Quantity)
		total = total.Add(row.Quantity)
	}
	// 10 received + 5 received − 3 sold − 2 adjusted; transfers move,
	// never mint
	assert.True(t, total.Equal(decimal.NewFromInt(10)))
}

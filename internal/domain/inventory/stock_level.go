package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/barstock/backend/internal/domain/shared"
)

// StockLevel is the on-hand quantity of one product at one location.
// There is at most one row per (product, location) pair. Rows are
// created lazily by the transaction engine and only ever mutated
// through it; the append-only transaction ledger is the source of
// truth, this row is a replayable cache of it.
type StockLevel struct {
	shared.BaseAggregateRoot
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_location,priority:1"`
	LocationID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_location,priority:2"`
	Quantity   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (StockLevel) TableName() string {
	return "stock_levels"
}

// NewStockLevel creates an empty stock level for a product at a location
func NewStockLevel(productID, locationID uuid.UUID) *StockLevel {
	return &StockLevel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		LocationID:        locationID,
		Quantity:          decimal.Zero,
	}
}

// Add applies a signed quantity delta. Unless allowNegative is set, a
// negative result is clamped to zero: physical stock cannot go below
// zero from normal movements, only an explicit adjustment may record a
// negative position.
func (s *StockLevel) Add(delta decimal.Decimal, allowNegative bool) {
	s.Quantity = s.Quantity.Add(delta)
	if s.Quantity.IsNegative() && !allowNegative {
		s.Quantity = decimal.Zero
	}
	s.Touch()
	s.IncrementVersion()
}

// Value returns the stock value at the given unit price
func (s *StockLevel) Value(unitPrice decimal.Decimal) decimal.Decimal {
	return s.Quantity.Mul(unitPrice)
}

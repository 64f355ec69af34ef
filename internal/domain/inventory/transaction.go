package inventory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/barstock/backend/internal/domain/shared"
)

// TransactionType classifies a stock movement
type TransactionType string

const (
	TransactionReceived    TransactionType = "received"
	TransactionSold        TransactionType = "sold"
	TransactionTransferred TransactionType = "transferred"
	TransactionAdjustment  TransactionType = "adjustment"
	TransactionCount       TransactionType = "count"
)

// IsValid returns true if the transaction type is one of the known values
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionReceived, TransactionSold, TransactionTransferred,
		TransactionAdjustment, TransactionCount:
		return true
	}
	return false
}

// Transaction is one immutable row of the inventory ledger. The signed
// quantity already encodes direction: outbound types store negative
// quantities, received stores positive, corrections store their delta.
// Rows are never updated or deleted once written.
type Transaction struct {
	shared.BaseEntity
	TransactionID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Type                  TransactionType `gorm:"type:varchar(20);not null;index"`
	ProductID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	DestinationLocationID *uuid.UUID      `gorm:"type:uuid"`
	Quantity              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UnitPrice             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PerformedBy           string          `gorm:"type:varchar(100);not null"`
	Reference             string          `gorm:"type:varchar(200)"`
	Notes                 string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "inventory_transactions"
}

// NewTransaction creates a validated ledger row. Sign rules are
// enforced here and never coerced: a positive quantity on a sold or
// transferred movement is a caller bug, not something to silently flip.
func NewTransaction(
	txType TransactionType,
	productID, locationID uuid.UUID,
	destinationLocationID *uuid.UUID,
	quantity, unitPrice decimal.Decimal,
	performedBy, reference, notes string,
) (*Transaction, error) {
	verr := &shared.ValidationError{}

	if !txType.IsValid() {
		verr.Add("transaction_type", "unknown transaction type")
	}
	if productID == uuid.Nil {
		verr.Add("product", "product is required")
	}
	if locationID == uuid.Nil {
		verr.Add("location", "location is required")
	}
	if strings.TrimSpace(performedBy) == "" {
		verr.Add("performed_by", "performed_by is required")
	}
	if unitPrice.IsNegative() {
		verr.Add("unit_price", "unit price cannot be negative")
	}

	switch txType {
	case TransactionSold, TransactionTransferred:
		if !quantity.IsNegative() {
			verr.Add("quantity", string(txType)+" quantity must be negative")
		}
	case TransactionReceived:
		if !quantity.IsPositive() {
			verr.Add("quantity", "received quantity must be positive")
		}
	case TransactionAdjustment, TransactionCount:
		if quantity.IsZero() {
			verr.Add("quantity", "quantity cannot be zero")
		}
	}

	if txType == TransactionTransferred {
		if destinationLocationID == nil || *destinationLocationID == uuid.Nil {
			verr.Add("destination_location", "destination location is required for transfers")
		} else if *destinationLocationID == locationID {
			verr.Add("destination_location", "destination location must differ from source location")
		}
	} else if destinationLocationID != nil {
		verr.Add("destination_location", "destination location is only valid for transfers")
	}

	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	return &Transaction{
		BaseEntity:            shared.NewBaseEntity(),
		TransactionID:         uuid.New(),
		Type:                  txType,
		ProductID:             productID,
		LocationID:            locationID,
		DestinationLocationID: destinationLocationID,
		Quantity:              quantity,
		UnitPrice:             unitPrice,
		PerformedBy:           strings.TrimSpace(performedBy),
		Reference:             reference,
		Notes:                 notes,
	}, nil
}

// IsTransfer reports whether this movement touches two stock rows
func (t *Transaction) IsTransfer() bool {
	return t.Type == TransactionTransferred
}

// AllowsNegativeStock reports whether applying this movement may leave
// a stock level below zero instead of clamping it.
func (t *Transaction) AllowsNegativeStock() bool {
	return t.Type == TransactionAdjustment
}

// TotalValue returns abs(quantity) × unit price
func (t *Transaction) TotalValue() decimal.Decimal {
	return t.Quantity.Abs().Mul(t.UnitPrice)
}

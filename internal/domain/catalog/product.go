package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/barstock/backend/internal/domain/shared"
)

// UnitType describes how a product is counted and sold
type UnitType string

const (
	UnitTypeBottle UnitType = "bottle"
	UnitTypeCan    UnitType = "can"
	UnitTypeKeg    UnitType = "keg"
	UnitTypeCase   UnitType = "case"
	UnitTypeBox    UnitType = "box"
	UnitTypeEach   UnitType = "each"
	UnitTypeWeight UnitType = "weight"
	UnitTypeVolume UnitType = "volume"
)

// IsValid returns true if the unit type is one of the known values
func (t UnitType) IsValid() bool {
	switch t {
	case UnitTypeBottle, UnitTypeCan, UnitTypeKeg, UnitTypeCase,
		UnitTypeBox, UnitTypeEach, UnitTypeWeight, UnitTypeVolume:
		return true
	}
	return false
}

// Product is a purchasable catalog item. Stock is tracked separately
// per location; the product carries pricing and replenishment policy.
type Product struct {
	shared.BaseAggregateRoot
	Name            string          `gorm:"type:varchar(200);not null;index"`
	SKU             string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_products_supplier_sku,priority:2"`
	Barcode         string          `gorm:"type:varchar(50);index"`
	Description     string          `gorm:"type:text"`
	Notes           string          `gorm:"type:text"`
	CategoryID      *uuid.UUID      `gorm:"type:uuid;index"`
	SupplierID      *uuid.UUID      `gorm:"type:uuid;index;uniqueIndex:idx_products_supplier_sku,priority:1"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UnitSize        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UnitType        UnitType        `gorm:"type:varchar(20);not null;default:'each'"`
	ParLevel        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ReorderPoint    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ReorderQuantity decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, sku string, unitPrice, unitSize decimal.Decimal, unitType UnitType) (*Product, error) {
	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		SKU:               strings.TrimSpace(sku),
		UnitPrice:         unitPrice,
		UnitSize:          unitSize,
		UnitType:          unitType,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the product's descriptive and pricing fields
func (p *Product) Update(name, sku, barcode, description, notes string, unitPrice, unitSize decimal.Decimal, unitType UnitType) error {
	p.Name = strings.TrimSpace(name)
	p.SKU = strings.TrimSpace(sku)
	p.Barcode = strings.TrimSpace(barcode)
	p.Description = description
	p.Notes = notes
	p.UnitPrice = unitPrice
	p.UnitSize = unitSize
	p.UnitType = unitType
	if err := p.validate(); err != nil {
		return err
	}
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetReplenishment sets the par level and reorder policy
func (p *Product) SetReplenishment(parLevel, reorderPoint, reorderQuantity decimal.Decimal) error {
	verr := &shared.ValidationError{}
	if parLevel.IsNegative() {
		verr.Add("par_level", "par level cannot be negative")
	}
	if reorderPoint.IsNegative() {
		verr.Add("reorder_point", "reorder point cannot be negative")
	}
	if reorderQuantity.IsNegative() {
		verr.Add("reorder_quantity", "reorder quantity cannot be negative")
	}
	if err := verr.ErrOrNil(); err != nil {
		return err
	}

	p.ParLevel = parLevel
	p.ReorderPoint = reorderPoint
	p.ReorderQuantity = reorderQuantity
	p.Touch()
	p.IncrementVersion()
	return nil
}

// AssignCategory links the product to a category, nil clears it
func (p *Product) AssignCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.Touch()
	p.IncrementVersion()
}

// AssignSupplier links the product to a supplier, nil clears it
func (p *Product) AssignSupplier(supplierID *uuid.UUID) {
	p.SupplierID = supplierID
	p.Touch()
	p.IncrementVersion()
}

// Deactivate hides the product from active listings
func (p *Product) Deactivate() {
	p.IsActive = false
	p.Touch()
	p.IncrementVersion()
}

// Activate restores the product to active listings
func (p *Product) Activate() {
	p.IsActive = true
	p.Touch()
	p.IncrementVersion()
}

// BelowParLevel reports whether the given on-hand total is under par.
// A zero par level never triggers.
func (p *Product) BelowParLevel(totalQuantity decimal.Decimal) bool {
	return p.ParLevel.IsPositive() && totalQuantity.LessThan(p.ParLevel)
}

// NeedsReorder reports whether the given on-hand total has reached the
// reorder point. A zero reorder point never triggers.
func (p *Product) NeedsReorder(totalQuantity decimal.Decimal) bool {
	return p.ReorderPoint.IsPositive() && totalQuantity.LessThanOrEqual(p.ReorderPoint)
}

// TotalValue returns the value of the given on-hand total at the
// product's current unit price.
func (p *Product) TotalValue(totalQuantity decimal.Decimal) decimal.Decimal {
	return totalQuantity.Mul(p.UnitPrice)
}

func (p *Product) validate() error {
	verr := &shared.ValidationError{}
	if p.Name == "" {
		verr.Add("name", "product name cannot be empty")
	}
	if len(p.Name) > 200 {
		verr.Add("name", "product name cannot exceed 200 characters")
	}
	if p.SKU == "" {
		verr.Add("sku", "SKU cannot be empty")
	}
	if len(p.SKU) > 50 {
		verr.Add("sku", "SKU cannot exceed 50 characters")
	}
	if p.UnitPrice.IsNegative() {
		verr.Add("unit_price", "unit price cannot be negative")
	}
	if p.UnitSize.IsNegative() {
		verr.Add("unit_size", "unit size cannot be negative")
	}
	if !p.UnitType.IsValid() {
		verr.Add("unit_type", "unknown unit type")
	}
	return verr.ErrOrNil()
}

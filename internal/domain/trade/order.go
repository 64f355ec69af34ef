package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/barstock/backend/internal/domain/shared"
	"github.com/barstock/backend/internal/domain/shared/validate"
)

// OrderStatus represents the lifecycle state of a purchase order
type OrderStatus string

const (
	OrderDraft     OrderStatus = "draft"
	OrderPending   OrderStatus = "pending"
	OrderPlaced    OrderStatus = "placed"
	OrderReceived  OrderStatus = "received"
	OrderCancelled OrderStatus = "cancelled"
)

// IsValid returns true if the status is one of the known values
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderDraft, OrderPending, OrderPlaced, OrderReceived, OrderCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderReceived || s == OrderCancelled
}

// ReceivingStatus describes how much of an order line has arrived
type ReceivingStatus string

const (
	ReceivingNotReceived       ReceivingStatus = "not-received"
	ReceivingPartiallyReceived ReceivingStatus = "partially-received"
	ReceivingFullyReceived     ReceivingStatus = "fully-received"
)

// Order is a purchase order to a supplier. It owns its item lines;
// receiving is driven through the inventory engine, the order itself
// only tracks the paperwork and the state machine.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber          string      `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID           uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status               OrderStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	OrderDate            *time.Time
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time
	DeliveryLocationID   *uuid.UUID      `gorm:"type:uuid"`
	ShippingCost         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Tax                  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Discount             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Notes                string          `gorm:"type:text"`
	CreatedBy            string          `gorm:"type:varchar(100);not null"`
	UpdatedBy            string          `gorm:"type:varchar(100)"`
	Items                []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one product line on a purchase order
type OrderItem struct {
	shared.BaseEntity
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_item_product,priority:1"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_item_product,priority:2"`
	Quantity         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Notes            string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// TotalPrice returns quantity × unit price
func (i *OrderItem) TotalPrice() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// IsFullyReceived reports whether the full ordered quantity arrived
func (i *OrderItem) IsFullyReceived() bool {
	return i.ReceivedQuantity.GreaterThanOrEqual(i.Quantity)
}

// ReceivingStatus classifies the line's receiving progress
func (i *OrderItem) ReceivingStatus() ReceivingStatus {
	switch {
	case i.ReceivedQuantity.IsZero():
		return ReceivingNotReceived
	case i.IsFullyReceived():
		return ReceivingFullyReceived
	default:
		return ReceivingPartiallyReceived
	}
}

// NewOrder creates a new draft order. An empty order number gets a
// generated one.
func NewOrder(orderNumber string, supplierID uuid.UUID, createdBy string) (*Order, error) {
	verr := &shared.ValidationError{}
	if supplierID == uuid.Nil {
		verr.Add("supplier", "supplier is required")
	}
	if strings.TrimSpace(createdBy) == "" {
		verr.Add("created_by", "created_by is required")
	}
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		orderNumber = generateOrderNumber()
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		SupplierID:        supplierID,
		Status:            OrderDraft,
		ShippingCost:      decimal.Zero,
		Tax:               decimal.Zero,
		Discount:          decimal.Zero,
		CreatedBy:         strings.TrimSpace(createdBy),
	}, nil
}

// generateOrderNumber produces a PO-prefixed random token
func generateOrderNumber() string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "PO-" + strings.ToUpper(token[:8])
}

// AddItem adds a product line. Each product appears at most once.
func (o *Order) AddItem(productID uuid.UUID, quantity, unitPrice decimal.Decimal, notes string) (*OrderItem, error) {
	if o.Status.IsTerminal() {
		return nil, shared.NewConflictError("cannot modify a %s order", o.Status)
	}
	verr := &shared.ValidationError{}
	if productID == uuid.Nil {
		verr.Add("product", "product is required")
	}
	if quantity.IsNegative() {
		verr.Add("quantity", "quantity cannot be negative")
	}
	if unitPrice.IsNegative() {
		verr.Add("unit_price", "unit price cannot be negative")
	}
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return nil, shared.NewConflictError("product is already on this order")
		}
	}

	item := OrderItem{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Notes:      notes,
	}
	o.Items = append(o.Items, item)
	o.Touch()
	o.IncrementVersion()
	return &o.Items[len(o.Items)-1], nil
}

// UpdateItem replaces a line's quantities and price
func (o *Order) UpdateItem(itemID uuid.UUID, quantity, unitPrice, receivedQuantity decimal.Decimal, notes string) (*OrderItem, error) {
	if o.Status.IsTerminal() {
		return nil, shared.NewConflictError("cannot modify a %s order", o.Status)
	}
	verr := &shared.ValidationError{}
	if quantity.IsNegative() {
		verr.Add("quantity", "quantity cannot be negative")
	}
	if unitPrice.IsNegative() {
		verr.Add("unit_price", "unit price cannot be negative")
	}
	if receivedQuantity.IsNegative() {
		verr.Add("received_quantity", "received quantity cannot be negative")
	}
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	for i := range o.Items {
		if o.Items[i].ID != itemID {
			continue
		}
		item := &o.Items[i]
		item.Quantity = quantity
		item.UnitPrice = unitPrice
		item.ReceivedQuantity = receivedQuantity
		item.Notes = notes
		item.Touch()
		o.Touch()
		o.IncrementVersion()
		return item, nil
	}
	return nil, shared.ErrNotFound
}

// RemoveItem drops a line from the order
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if o.Status.IsTerminal() {
		return shared.NewConflictError("cannot modify a %s order", o.Status)
	}
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			o.Touch()
			o.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// SetCharges sets shipping, tax and discount
func (o *Order) SetCharges(shippingCost, tax, discount decimal.Decimal) error {
	if o.Status.IsTerminal() {
		return shared.NewConflictError("cannot modify a %s order", o.Status)
	}
	verr := &shared.ValidationError{}
	if shippingCost.IsNegative() {
		verr.Add("shipping_cost", "shipping cost cannot be negative")
	}
	if tax.IsNegative() {
		verr.Add("tax", "tax cannot be negative")
	}
	if discount.IsNegative() {
		verr.Add("discount", "discount cannot be negative")
	}
	if err := verr.ErrOrNil(); err != nil {
		return err
	}

	o.ShippingCost = shippingCost
	o.Tax = tax
	o.Discount = discount
	o.Touch()
	o.IncrementVersion()
	return nil
}

// SetDeliveryLocation designates where received stock should land,
// nil falls back to the default storage location at receive time.
func (o *Order) SetDeliveryLocation(locationID *uuid.UUID) error {
	if o.Status.IsTerminal() {
		return shared.NewConflictError("cannot modify a %s order", o.Status)
	}
	o.DeliveryLocationID = locationID
	o.Touch()
	o.IncrementVersion()
	return nil
}

// SetExpectedDeliveryDate sets when the supplier promised delivery
func (o *Order) SetExpectedDeliveryDate(date *time.Time) error {
	if o.Status.IsTerminal() {
		return shared.NewConflictError("cannot modify a %s order", o.Status)
	}
	o.ExpectedDeliveryDate = date
	if err := o.validateDates(); err != nil {
		return err
	}
	o.Touch()
	o.IncrementVersion()
	return nil
}

// Submit moves a draft to pending review
func (o *Order) Submit(actor string) error {
	if o.Status != OrderDraft {
		return shared.NewConflictError("cannot submit a %s order", o.Status)
	}
	o.Status = OrderPending
	o.UpdatedBy = strings.TrimSpace(actor)
	o.Touch()
	o.IncrementVersion()
	return nil
}

// Place marks the order as sent to the supplier. Allowed from draft or
// pending; stamps the order date if not already set.
func (o *Order) Place(actor string) error {
	if o.Status != OrderDraft && o.Status != OrderPending {
		return shared.NewConflictError("cannot place a %s order", o.Status)
	}
	if o.OrderDate == nil {
		today := time.Now()
		o.OrderDate = &today
	}
	o.Status = OrderPlaced
	o.UpdatedBy = strings.TrimSpace(actor)
	o.Touch()
	o.IncrementVersion()
	return o.validateDates()
}

// MarkReceived flips the order to received and stamps the actual
// delivery date. Allowed from placed only; the caller drives the
// per-item stock movements in the same atomic unit.
func (o *Order) MarkReceived(actor string) error {
	if o.Status != OrderPlaced {
		return shared.NewConflictError("cannot receive a %s order", o.Status)
	}
	if o.ActualDeliveryDate == nil {
		today := time.Now()
		o.ActualDeliveryDate = &today
	}
	o.Status = OrderReceived
	o.UpdatedBy = strings.TrimSpace(actor)
	o.Touch()
	o.IncrementVersion()
	return o.validateDates()
}

// Cancel aborts the order from any non-terminal state
func (o *Order) Cancel(actor string) error {
	if o.Status.IsTerminal() {
		return shared.NewConflictError("cannot cancel a %s order", o.Status)
	}
	o.Status = OrderCancelled
	o.UpdatedBy = strings.TrimSpace(actor)
	o.Touch()
	o.IncrementVersion()
	return nil
}

// Actor returns who order side effects should be attributed to: the
// last updater when known, otherwise the creator.
func (o *Order) Actor() string {
	if o.UpdatedBy != "" {
		return o.UpdatedBy
	}
	return o.CreatedBy
}

// Subtotal returns the sum of all line totals
func (o *Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for i := range o.Items {
		sum = sum.Add(o.Items[i].TotalPrice())
	}
	return sum
}

// Total returns subtotal + shipping + tax − discount
func (o *Order) Total() decimal.Decimal {
	return o.Subtotal().Add(o.ShippingCost).Add(o.Tax).Sub(o.Discount)
}

func (o *Order) validateDates() error {
	verr := &shared.ValidationError{}
	if o.Status == OrderPlaced || o.Status == OrderReceived {
		if o.OrderDate == nil {
			verr.Add("order_date", "order date is required once placed")
		} else if err := validate.NoFutureDate(*o.OrderDate); err != nil {
			verr.Add("order_date", err.Error())
		}
	}
	if o.Status == OrderReceived && o.ActualDeliveryDate == nil {
		verr.Add("actual_delivery_date", "actual delivery date is required once received")
	}
	if o.OrderDate != nil {
		if o.ExpectedDeliveryDate != nil {
			if err := validate.DateNotBefore(*o.ExpectedDeliveryDate, *o.OrderDate); err != nil {
				verr.Add("expected_delivery_date", "expected delivery date cannot precede order date")
			}
		}
		if o.ActualDeliveryDate != nil {
			if err := validate.DateNotBefore(*o.ActualDeliveryDate, *o.OrderDate); err != nil {
				verr.Add("actual_delivery_date", "actual delivery date cannot precede order date")
			}
		}
	}
	if o.ActualDeliveryDate != nil {
		if err := validate.NoFutureDate(*o.ActualDeliveryDate); err != nil {
			verr.Add("actual_delivery_date", err.Error())
		}
	}
	return verr.ErrOrNil()
}

package trade

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinventory "github.com/barstock/backend/internal/application/inventory"
	"github.com/barstock/backend/internal/domain/inventory"
	"github.com/barstock/backend/internal/domain/partner"
	"github.com/barstock/backend/internal/domain/shared"
	"github.com/barstock/backend/internal/domain/trade"
)

const maxReceiveRetries = 3

// OrderItemInput is one product line on an order request
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Notes     string
}

// CreateOrderInput carries the fields for opening a purchase order
type CreateOrderInput struct {
	OrderNumber          string
	SupplierID           uuid.UUID
	ExpectedDeliveryDate *time.Time
	DeliveryLocationID   *uuid.UUID
	ShippingCost         decimal.Decimal
	Tax                  decimal.Decimal
	Discount             decimal.Decimal
	Notes                string
	CreatedBy            string
	Items                []OrderItemInput
}

// OrderService drives the purchase order lifecycle. Receipt is the
// interesting part: flipping the order to received and booking one
// received movement per delivered line happens in a single atomic
// unit.
type OrderService struct {
	scope     appinventory.TransactionScope
	orderRepo trade.OrderRepository
	cache     appinventory.StockCache
}

// NewOrderService creates a new OrderService. cache may be nil.
func NewOrderService(scope appinventory.TransactionScope, orderRepo trade.OrderRepository, cache appinventory.StockCache) *OrderService {
	return &OrderService{
		scope:     scope,
		orderRepo: orderRepo,
		cache:     cache,
	}
}

// Create opens a new draft order
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*trade.Order, error) {
	order, err := trade.NewOrder(input.OrderNumber, input.SupplierID, input.CreatedBy)
	if err != nil {
		return nil, err
	}

	if err := order.SetCharges(input.ShippingCost, input.Tax, input.Discount); err != nil {
		return nil, err
	}
	if err := order.SetDeliveryLocation(input.DeliveryLocationID); err != nil {
		return nil, err
	}
	if input.ExpectedDeliveryDate != nil {
		if err := order.SetExpectedDeliveryDate(input.ExpectedDeliveryDate); err != nil {
			return nil, err
		}
	}
	order.Notes = input.Notes

	for _, item := range input.Items {
		if _, err := order.AddItem(item.ProductID, item.Quantity, item.UnitPrice, item.Notes); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// AddItem adds a product line to an order
func (s *OrderService) AddItem(ctx context.Context, orderID uuid.UUID, input OrderItemInput) (*trade.OrderItem, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	item, err := order.AddItem(input.ProductID, input.Quantity, input.UnitPrice, input.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem replaces a line's quantities, price and received quantity
func (s *OrderService) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, quantity, unitPrice, receivedQuantity decimal.Decimal, notes string) (*trade.OrderItem, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	item, err := order.UpdateItem(itemID, quantity, unitPrice, receivedQuantity, notes)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem drops a line from an order
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := order.RemoveItem(itemID); err != nil {
		return err
	}
	return s.orderRepo.Save(ctx, order)
}

// Submit moves a draft order to pending review
func (s *OrderService) Submit(ctx context.Context, orderID uuid.UUID, actor string) (*trade.Order, error) {
	return s.transition(ctx, orderID, func(o *trade.Order) error { return o.Submit(actor) })
}

// Place marks the order as sent to the supplier
func (s *OrderService) Place(ctx context.Context, orderID uuid.UUID, actor string) (*trade.Order, error) {
	return s.transition(ctx, orderID, func(o *trade.Order) error { return o.Place(actor) })
}

// Cancel aborts a non-terminal order
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID, actor string) (*trade.Order, error) {
	return s.transition(ctx, orderID, func(o *trade.Order) error { return o.Cancel(actor) })
}

func (s *OrderService) transition(ctx context.Context, orderID uuid.UUID, fn func(*trade.Order) error) (*trade.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := fn(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Receive books a placed order into stock: one received movement per
// line with a delivered quantity, landing at the order's delivery
// location or the default storage location. The movements and the
// status flip commit or roll back together.
func (s *OrderService) Receive(ctx context.Context, orderID uuid.UUID, actor string) (*trade.Order, error) {
	var received *trade.Order
	var lastErr error

	for attempt := 0; attempt < maxReceiveRetries; attempt++ {
		received = nil
		lastErr = s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
			order, err := repos.OrderRepo().FindByID(ctx, orderID)
			if err != nil {
				return err
			}
			if err := order.MarkReceived(actor); err != nil {
				return err
			}

			locationID, err := s.deliveryLocation(ctx, repos.LocationRepo(), order)
			if err != nil {
				return err
			}

			for i := range order.Items {
				item := &order.Items[i]
				if !item.ReceivedQuantity.IsPositive() {
					continue
				}
				tx, err := inventory.NewTransaction(
					inventory.TransactionReceived,
					item.ProductID, locationID, nil,
					item.ReceivedQuantity, item.UnitPrice,
					order.Actor(),
					"Order #"+order.OrderNumber,
					item.Notes,
				)
				if err != nil {
					return err
				}
				if err := appinventory.ApplyWithRepos(ctx, repos, tx); err != nil {
					return err
				}
			}

			if err := repos.OrderRepo().Save(ctx, order); err != nil {
				return err
			}
			received = order
			return nil
		})
		if lastErr == nil {
			s.invalidateOrder(ctx, received)
			return received, nil
		}
		if !errors.Is(lastErr, shared.ErrConcurrencyConflict) {
			return nil, lastErr
		}
	}
	return nil, shared.NewConsistencyError("order %s could not be received after %d attempts: %v",
		orderID, maxReceiveRetries, lastErr)
}

// Get returns one order with its items
func (s *OrderService) Get(ctx context.Context, orderID uuid.UUID) (*trade.Order, error) {
	return s.orderRepo.FindByID(ctx, orderID)
}

// List returns orders matching the filter
func (s *OrderService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*trade.Order], error) {
	return s.orderRepo.FindAll(ctx, filter)
}

// ListBySupplier returns a supplier's orders
func (s *OrderService) ListBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (shared.Paginated[*trade.Order], error) {
	return s.orderRepo.FindBySupplier(ctx, supplierID, filter)
}

// Delete removes an order. Only draft orders may be deleted; anything
// further along stays for the paper trail (cancel instead).
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != trade.OrderDraft {
		return shared.NewConflictError("only draft orders can be deleted")
	}
	return s.orderRepo.Delete(ctx, orderID)
}

func (s *OrderService) deliveryLocation(ctx context.Context, locations partner.LocationRepository, order *trade.Order) (uuid.UUID, error) {
	if order.DeliveryLocationID != nil {
		return *order.DeliveryLocationID, nil
	}
	loc, err := locations.FindDefaultStorage(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return uuid.Nil, shared.NewValidationError("delivery_location", "no active storage location available to receive into")
		}
		return uuid.Nil, err
	}
	return loc.ID, nil
}

func (s *OrderService) invalidateOrder(ctx context.Context, order *trade.Order) {
	if s.cache == nil || order == nil {
		return
	}
	locationID := uuid.Nil
	if order.DeliveryLocationID != nil {
		locationID = *order.DeliveryLocationID
	}
	for i := range order.Items {
		if order.Items[i].ReceivedQuantity.IsPositive() {
			if locationID != uuid.Nil {
				s.cache.Invalidate(ctx, order.Items[i].ProductID, locationID)
			} else {
				s.cache.Invalidate(ctx, order.Items[i].ProductID)
			}
		}
	}
}

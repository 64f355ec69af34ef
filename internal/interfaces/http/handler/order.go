package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	tradeapp "github.com/barstock/backend/internal/application/trade"
	"github.com/barstock/backend/internal/domain/trade"
	"github.com/barstock/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles purchase order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// OrderItemRequest is one product line in an order request
type OrderItemRequest struct {
	ProductID string  `json:"product_id" binding:"required,uuid"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Notes     string  `json:"notes" binding:"max=2000"`
}

// CreateOrderRequest is the request body for opening a purchase order
type CreateOrderRequest struct {
	OrderNumber          string             `json:"order_number" binding:"max=50"`
	SupplierID           string             `json:"supplier_id" binding:"required,uuid"`
	ExpectedDeliveryDate *time.Time         `json:"expected_delivery_date"`
	DeliveryLocationID   *string            `json:"delivery_location_id"`
	ShippingCost         float64            `json:"shipping_cost"`
	Tax                  float64            `json:"tax"`
	Discount             float64            `json:"discount"`
	Notes                string             `json:"notes" binding:"max=2000"`
	Items                []OrderItemRequest `json:"items"`
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	deliveryLocationID, err := parseOptionalUUID(req.DeliveryLocationID)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items := make([]tradeapp.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, tradeapp.OrderItemInput{
			ProductID: uuid.MustParse(item.ProductID),
			Quantity:  decimal.NewFromFloat(item.Quantity),
			UnitPrice: decimal.NewFromFloat(item.UnitPrice),
			Notes:     item.Notes,
		})
	}

	order, err := h.orderService.Create(c.Request.Context(), tradeapp.CreateOrderInput{
		OrderNumber:          req.OrderNumber,
		SupplierID:           uuid.MustParse(req.SupplierID),
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		DeliveryLocationID:   deliveryLocationID,
		ShippingCost:         decimal.NewFromFloat(req.ShippingCost),
		Tax:                  decimal.NewFromFloat(req.Tax),
		Discount:             decimal.NewFromFloat(req.Discount),
		Notes:                req.Notes,
		CreatedBy:            middleware.GetUsername(c),
		Items:                items,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// AddItem handles POST /orders/:id/items
func (h *OrderHandler) AddItem(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req OrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.orderService.AddItem(c.Request.Context(), orderID, tradeapp.OrderItemInput{
		ProductID: uuid.MustParse(req.ProductID),
		Quantity:  decimal.NewFromFloat(req.Quantity),
		UnitPrice: decimal.NewFromFloat(req.UnitPrice),
		Notes:     req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// UpdateItemRequest is the request body for updating an order line
type UpdateItemRequest struct {
	Quantity         float64 `json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
	ReceivedQuantity float64 `json:"received_quantity"`
	Notes            string  `json:"notes" binding:"max=2000"`
}

// UpdateItem handles PUT /orders/:id/items/:itemId
func (h *OrderHandler) UpdateItem(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.orderService.UpdateItem(c.Request.Context(), orderID, itemID,
		decimal.NewFromFloat(req.Quantity),
		decimal.NewFromFloat(req.UnitPrice),
		decimal.NewFromFloat(req.ReceivedQuantity),
		req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// RemoveItem handles DELETE /orders/:id/items/:itemId
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		return
	}

	if err := h.orderService.RemoveItem(c.Request.Context(), orderID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Submit handles POST /orders/:id/submit
func (h *OrderHandler) Submit(c *gin.Context) {
	h.transition(c, h.orderService.Submit)
}

// Place handles POST /orders/:id/place
func (h *OrderHandler) Place(c *gin.Context) {
	h.transition(c, h.orderService.Place)
}

// Cancel handles POST /orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.orderService.Cancel)
}

// Receive handles POST /orders/:id/receive. Receipt flips the order to
// received and books the received quantities into stock in one unit.
func (h *OrderHandler) Receive(c *gin.Context) {
	h.transition(c, h.orderService.Receive)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List handles GET /orders, optionally scoped to one supplier
func (h *OrderHandler) List(c *gin.Context) {
	req, ok := bindList(c)
	if !ok {
		return
	}
	filter := req.ToFilter()
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	if supplierParam := c.Query("supplier_id"); supplierParam != "" {
		supplierID, err := uuid.Parse(supplierParam)
		if err != nil {
			h.BadRequest(c, "Invalid supplier_id parameter")
			return
		}
		page, err := h.orderService.ListBySupplier(c.Request.Context(), supplierID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		Page(c, page)
		return
	}

	page, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// Delete handles DELETE /orders/:id; only drafts may be deleted
func (h *OrderHandler) Delete(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), orderID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *OrderHandler) transition(c *gin.Context, fn func(ctx context.Context, orderID uuid.UUID, actor string) (*trade.Order, error)) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := fn(c.Request.Context(), orderID, middleware.GetUsername(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

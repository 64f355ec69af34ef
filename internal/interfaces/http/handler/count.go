package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	inventoryapp "github.com/barstock/backend/internal/application/inventory"
	"github.com/barstock/backend/internal/interfaces/http/middleware"
)

// CountHandler handles inventory count API endpoints
type CountHandler struct {
	BaseHandler
	countService *inventoryapp.CountService
}

// NewCountHandler creates a new CountHandler
func NewCountHandler(countService *inventoryapp.CountService) *CountHandler {
	return &CountHandler{countService: countService}
}

// CreateCountRequest is the request body for opening a counting session
type CreateCountRequest struct {
	Name          string     `json:"name" binding:"required,min=1,max=200"`
	Description   string     `json:"description" binding:"max=2000"`
	LocationID    string     `json:"location_id" binding:"required,uuid"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Notes         string     `json:"notes" binding:"max=2000"`
	ProductIDs    []string   `json:"product_ids"`
}

// Create handles POST /counts
func (h *CountHandler) Create(c *gin.Context) {
	var req CreateCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	productIDs := make([]uuid.UUID, 0, len(req.ProductIDs))
	for _, raw := range req.ProductIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid product ID "+raw)
			return
		}
		productIDs = append(productIDs, id)
	}

	count, err := h.countService.Create(c.Request.Context(), inventoryapp.CreateCountInput{
		Name:          req.Name,
		Description:   req.Description,
		LocationID:    uuid.MustParse(req.LocationID),
		ScheduledDate: req.ScheduledDate,
		CreatedBy:     middleware.GetUsername(c),
		Notes:         req.Notes,
		ProductIDs:    productIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, count)
}

// AddItemRequest is the request body for adding a product to a count
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

// AddItem handles POST /counts/:id/items
func (h *CountHandler) AddItem(c *gin.Context) {
	countID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.countService.AddItem(c.Request.Context(), countID, uuid.MustParse(req.ProductID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// MarkItemRequest is the request body for recording a counted quantity.
// The quantity is a pointer so an absent field is rejected instead of
// binding to zero and marking the item counted at 0.
type MarkItemRequest struct {
	CountedQuantity *float64 `json:"counted_quantity" binding:"required"`
	Notes           string   `json:"notes" binding:"max=2000"`
}

// MarkItem handles PUT /counts/:id/items/:itemId
func (h *CountHandler) MarkItem(c *gin.Context) {
	countID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		return
	}

	var req MarkItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.countService.MarkItem(c.Request.Context(), countID, itemID,
		decimal.NewFromFloat(*req.CountedQuantity), middleware.GetUsername(c), req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Complete handles POST /counts/:id/complete. Completing a count
// reconciles every variance into an adjustment movement.
func (h *CountHandler) Complete(c *gin.Context) {
	countID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	count, err := h.countService.Complete(c.Request.Context(), countID, middleware.GetUsername(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, count)
}

// Cancel handles POST /counts/:id/cancel
func (h *CountHandler) Cancel(c *gin.Context) {
	countID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	count, err := h.countService.Cancel(c.Request.Context(), countID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, count)
}

// Get handles GET /counts/:id
func (h *CountHandler) Get(c *gin.Context) {
	countID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	count, err := h.countService.Get(c.Request.Context(), countID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, count)
}

// List handles GET /counts, optionally scoped to one location
func (h *CountHandler) List(c *gin.Context) {
	req, ok := bindList(c)
	if !ok {
		return
	}
	filter := req.ToFilter()
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	if locationParam := c.Query("location_id"); locationParam != "" {
		locationID, err := uuid.Parse(locationParam)
		if err != nil {
			h.BadRequest(c, "Invalid location_id parameter")
			return
		}
		page, err := h.countService.ListByLocation(c.Request.Context(), locationID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		Page(c, page)
		return
	}

	page, err := h.countService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// ListUncountedItems handles GET /counts/:id/uncounted
func (h *CountHandler) ListUncountedItems(c *gin.Context) {
	countID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.countService.ListUncountedItems(c.Request.Context(), countID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/barstock/backend/internal/application/inventory"
)

// StockHandler handles stock level read endpoints. All mutation goes
// through the transaction engine; these are projections.
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// List handles GET /stock, optionally scoped to one location
func (h *StockHandler) List(c *gin.Context) {
	req, ok := bindList(c)
	if !ok {
		return
	}
	filter := req.ToFilter()

	if locationParam := c.Query("location_id"); locationParam != "" {
		locationID, err := uuid.Parse(locationParam)
		if err != nil {
			h.BadRequest(c, "Invalid location_id parameter")
			return
		}
		page, err := h.stockService.ListByLocation(c.Request.Context(), locationID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		Page(c, page)
		return
	}

	page, err := h.stockService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// GetProductStock handles GET /stock/products/:id, the per-location
// breakdown and totals for one product.
func (h *StockHandler) GetProductStock(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.stockService.GetProductSummary(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// GetStockAt handles GET /stock/products/:id/locations/:locationId
func (h *StockHandler) GetStockAt(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	locationID, ok := parseUUIDParam(c, "locationId")
	if !ok {
		return
	}

	quantity, err := h.stockService.GetStock(c.Request.Context(), productID, locationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"product_id":  productID,
		"location_id": locationID,
		"quantity":    quantity,
	})
}

// ListBelowPar handles GET /stock/below-par
func (h *StockHandler) ListBelowPar(c *gin.Context) {
	req, ok := bindList(c)
	if !ok {
		return
	}

	summaries, err := h.stockService.ListBelowPar(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summaries)
}

// ListNeedsReorder handles GET /stock/reorder
func (h *StockHandler) ListNeedsReorder(c *gin.Context) {
	req, ok := bindList(c)
	if !ok {
		return
	}

	summaries, err := h.stockService.ListNeedsReorder(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summaries)
}

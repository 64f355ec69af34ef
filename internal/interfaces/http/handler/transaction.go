package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	inventoryapp "github.com/barstock/backend/internal/application/inventory"
	"github.com/barstock/backend/internal/domain/inventory"
	"github.com/barstock/backend/internal/interfaces/http/middleware"
)

// TransactionHandler handles inventory transaction API endpoints
type TransactionHandler struct {
	BaseHandler
	transactionService *inventoryapp.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *inventoryapp.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest is the request body for recording a stock movement.
// Quantity is signed: sales and transfers are negative, receipts
// positive, adjustments and count corrections either way.
type TransactionRequest struct {
	Type                  string  `json:"type" binding:"required"`
	ProductID             string  `json:"product_id" binding:"required,uuid"`
	LocationID            string  `json:"location_id" binding:"required,uuid"`
	DestinationLocationID *string `json:"destination_location_id"`
	Quantity              float64 `json:"quantity"`
	UnitPrice             float64 `json:"unit_price"`
	Reference             string  `json:"reference" binding:"max=200"`
	Notes                 string  `json:"notes" binding:"max=2000"`
}

// Create handles POST /transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	destinationID, err := parseOptionalUUID(req.DestinationLocationID)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := inventoryapp.ApplyTransactionInput{
		Type:                  inventory.TransactionType(req.Type),
		ProductID:             uuid.MustParse(req.ProductID),
		LocationID:            uuid.MustParse(req.LocationID),
		DestinationLocationID: destinationID,
		Quantity:              decimal.NewFromFloat(req.Quantity),
		UnitPrice:             decimal.NewFromFloat(req.UnitPrice),
		PerformedBy:           middleware.GetUsername(c),
		Reference:             req.Reference,
		Notes:                 req.Notes,
	}

	tx, err := h.transactionService.Apply(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// Get handles GET /transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	tx, err := h.transactionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

// List handles GET /transactions, optionally scoped by product or
// location query parameters.
func (h *TransactionHandler) List(c *gin.Context) {
	req, ok := bindList(c)
	if !ok {
		return
	}
	filter := req.ToFilter()
	if txType := c.Query("type"); txType != "" {
		filter.Filters["type"] = txType
	}
	ctx := c.Request.Context()

	if productParam := c.Query("product_id"); productParam != "" {
		productID, err := uuid.Parse(productParam)
		if err != nil {
			h.BadRequest(c, "Invalid product_id parameter")
			return
		}
		page, err := h.transactionService.ListByProduct(ctx, productID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		Page(c, page)
		return
	}

	if locationParam := c.Query("location_id"); locationParam != "" {
		locationID, err := uuid.Parse(locationParam)
		if err != nil {
			h.BadRequest(c, "Invalid location_id parameter")
			return
		}
		page, err := h.transactionService.ListByLocation(ctx, locationID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		Page(c, page)
		return
	}

	page, err := h.transactionService.List(ctx, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

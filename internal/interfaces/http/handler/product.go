package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogapp "github.com/barstock/backend/internal/application/catalog"
	"github.com/barstock/backend/internal/domain/catalog"
)

// ProductHandler handles product API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ProductRequest is the request body for creating or updating a product
type ProductRequest struct {
	Name            string  `json:"name" binding:"required,min=1,max=200"`
	SKU             string  `json:"sku" binding:"required,min=1,max=50"`
	Barcode         string  `json:"barcode" binding:"max=50"`
	Description     string  `json:"description" binding:"max=2000"`
	Notes           string  `json:"notes" binding:"max=2000"`
	CategoryID      *string `json:"category_id"`
	SupplierID      *string `json:"supplier_id"`
	UnitPrice       float64 `json:"unit_price"`
	UnitSize        float64 `json:"unit_size"`
	UnitType        string  `json:"unit_type" binding:"required,unittype"`
	ParLevel        float64 `json:"par_level"`
	ReorderPoint    float64 `json:"reorder_point"`
	ReorderQuantity float64 `json:"reorder_quantity"`
}

func (r ProductRequest) toCreateInput() (catalogapp.CreateProductInput, error) {
	categoryID, err := parseOptionalUUID(r.CategoryID)
	if err != nil {
		return catalogapp.CreateProductInput{}, err
	}
	supplierID, err := parseOptionalUUID(r.SupplierID)
	if err != nil {
		return catalogapp.CreateProductInput{}, err
	}
	return catalogapp.CreateProductInput{
		Name:            r.Name,
		SKU:             r.SKU,
		Barcode:         r.Barcode,
		Description:     r.Description,
		Notes:           r.Notes,
		CategoryID:      categoryID,
		SupplierID:      supplierID,
		UnitPrice:       decimal.NewFromFloat(r.UnitPrice),
		UnitSize:        decimal.NewFromFloat(r.UnitSize),
		UnitType:        catalog.UnitType(r.UnitType),
		ParLevel:        decimal.NewFromFloat(r.ParLevel),
		ReorderPoint:    decimal.NewFromFloat(r.ReorderPoint),
		ReorderQuantity: decimal.NewFromFloat(r.ReorderQuantity),
	}, nil
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	input, err := req.toCreateInput()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	createInput, err := req.toCreateInput()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, catalogapp.UpdateProductInput(createInput))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List handles GET /products, optionally scoped by category or
// supplier query parameters.
func (h *ProductHandler) List(c *gin.Context) {
	req, ok := bindList(c)
	if !ok {
		return
	}
	filter := req.ToFilter()
	ctx := c.Request.Context()

	if categoryParam := c.Query("category_id"); categoryParam != "" {
		categoryID, err := uuid.Parse(categoryParam)
		if err != nil {
			h.BadRequest(c, "Invalid category_id parameter")
			return
		}
		page, err := h.productService.ListByCategory(ctx, categoryID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		Page(c, page)
		return
	}

	if supplierParam := c.Query("supplier_id"); supplierParam != "" {
		supplierID, err := uuid.Parse(supplierParam)
		if err != nil {
			h.BadRequest(c, "Invalid supplier_id parameter")
			return
		}
		page, err := h.productService.ListBySupplier(ctx, supplierID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		Page(c, page)
		return
	}

	page, err := h.productService.List(ctx, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// Deactivate handles POST /products/:id/deactivate
func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

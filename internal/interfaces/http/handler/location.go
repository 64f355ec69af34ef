package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/barstock/backend/internal/application/partner"
)

// LocationHandler handles location API endpoints
type LocationHandler struct {
	BaseHandler
	locationService *partnerapp.LocationService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(locationService *partnerapp.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// LocationRequest is the request body for creating or updating a location
type LocationRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
	IsStorage   *bool  `json:"is_storage"`
	IsService   *bool  `json:"is_service"`
}

func (r LocationRequest) toInput() partnerapp.LocationInput {
	input := partnerapp.LocationInput{
		Name:        r.Name,
		Description: r.Description,
		IsStorage:   true,
	}
	if r.IsStorage != nil {
		input.IsStorage = *r.IsStorage
	}
	if r.IsService != nil {
		input.IsService = *r.IsService
	}
	return input
}

// Create handles POST /locations
func (h *LocationHandler) Create(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	location, err := h.locationService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, location)
}

// Update handles PUT /locations/:id
func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	location, err := h.locationService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, location)
}

// Get handles GET /locations/:id
func (h *LocationHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	location, err := h.locationService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, location)
}

// List handles GET /locations
func (h *LocationHandler) List(c *gin.Context) {
	req, ok := bindList(c)
	if !ok {
		return
	}

	page, err := h.locationService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// GetDefaultStorage handles GET /locations/default-storage
func (h *LocationHandler) GetDefaultStorage(c *gin.Context) {
	location, err := h.locationService.GetDefaultStorage(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, location)
}

// Deactivate handles POST /locations/:id/deactivate
func (h *LocationHandler) Deactivate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	location, err := h.locationService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, location)
}

// Delete handles DELETE /locations/:id
func (h *LocationHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.locationService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

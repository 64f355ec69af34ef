package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/barstock/backend/internal/domain/shared"
	"github.com/barstock/backend/internal/interfaces/http/dto"
	"github.com/barstock/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Page sends a 200 response with pagination meta
func Page[T any](c *gin.Context, page shared.Paginated[T]) {
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response for malformed input
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message))
}

// BindError sends a 400 response with a field breakdown for request
// body binding failures.
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	verr := middleware.FormatBindingError(err)
	c.JSON(http.StatusBadRequest, dto.Response{
		Success: false,
		Error: &dto.ErrorInfo{
			Code:    dto.ErrCodeBadRequest,
			Message: "Request validation failed",
			Fields:  verr.Fields,
		},
	})
}

// HandleError maps application errors onto the response envelope.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var verr *shared.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(verr))
		return
	}

	var cerr *shared.ConflictError
	if errors.As(err, &cerr) {
		c.JSON(http.StatusConflict, dto.NewErrorResponse(dto.ErrCodeConflict, cerr.Message))
		return
	}

	var conserr *shared.ConsistencyError
	if errors.As(err, &conserr) {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrCodeConsistency, conserr.Message))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := "ERR_" + domainErr.Code
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, domainErr.Message))
		return
	}

	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrCodeInternal, "An unexpected error occurred"))
}

// parseUUIDParam parses a UUID path parameter, responding 400 itself
// on failure.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeBadRequest, "Invalid "+name+" parameter"))
		return uuid.Nil, false
	}
	return id, true
}

// bindList binds common list query parameters, responding 400 itself
// on failure.
func bindList(c *gin.Context) (dto.ListRequest, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeBadRequest, "Invalid list parameters: "+err.Error()))
		return req, false
	}
	return req, true
}

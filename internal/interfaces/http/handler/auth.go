package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barstock/backend/internal/infrastructure/auth"
	"github.com/barstock/backend/internal/interfaces/http/dto"
	"github.com/barstock/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication API endpoints
type AuthHandler struct {
	BaseHandler
	credentials *auth.CredentialStore
	jwtService  *auth.JWTService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(credentials *auth.CredentialStore, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{credentials: credentials, jwtService: jwtService}
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=200"`
}

// LoginResponse carries the issued token plus the caller's identity
type LoginResponse struct {
	*auth.Token
	Username string    `json:"username"`
	Role     auth.Role `json:"role"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	role, err := h.credentials.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Invalid username or password"))
			return
		}
		h.HandleError(c, err)
		return
	}

	token, err := h.jwtService.Generate(req.Username, role)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LoginResponse{Token: token, Username: req.Username, Role: role})
}

// Me handles GET /auth/me, returning the authenticated caller's claims
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
		return
	}
	h.Success(c, gin.H{
		"username": claims.Username,
		"role":     claims.Role,
	})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valenn0101/koywe-challenge/internal/dto"
	"github.com/valenn0101/koywe-challenge/internal/service"
	"github.com/valenn0101/koywe-challenge/pkg/response"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles user registration
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if missing := req.ValidateRequiredFields(); len(missing) > 0 {
		response.ValidationError(c, "Missing required fields", missing)
		return
	}

	if valid, msg := req.ValidateEmail(); !valid {
		response.BadRequest(c, msg)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIncompleteInput):
			response.BadRequest(c, "Name, email and password are required")
		case errors.Is(err, service.ErrWeakPassword):
			response.BadRequest(c, "Password must be at least 8 characters and contain a special character")
		case errors.Is(err, service.ErrUserAlreadyExists):
			response.Conflict(c, "User with this email already exists")
		default:
			response.InternalError(c)
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Login handles user login
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			response.Unauthorized(c, "Invalid email or password")
			return
		}
		response.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RefreshToken handles refresh token rotation
// POST /auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.RefreshTokens(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			response.Unauthorized(c, "Invalid or expired refresh token")
		case errors.Is(err, service.ErrUnauthorized):
			response.Unauthorized(c, "Unauthorized")
		default:
			response.InternalError(c)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

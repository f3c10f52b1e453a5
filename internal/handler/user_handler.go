package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valenn0101/koywe-challenge/internal/dto"
	"github.com/valenn0101/koywe-challenge/internal/service"
	"github.com/valenn0101/koywe-challenge/pkg/response"
)

// UserHandler handles user read HTTP requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers returns all users
// GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	result := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, dto.ToUserResponse(u))
	}

	c.JSON(http.StatusOK, result)
}

// GetUser returns a user by ID
// GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// GetUserByEmail returns a user by email
// GET /users/email/:email
func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	user, err := h.userService.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

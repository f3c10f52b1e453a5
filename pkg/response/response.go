package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the envelope for every non-2xx reply
type ErrorResponse struct {
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Errors    []string  `json:"errors,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Error writes an error envelope with the given status and message
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{
		Status:    status,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// ErrorWithDetails writes an error envelope including a details string
func ErrorWithDetails(c *gin.Context, status int, message, details string) {
	c.JSON(status, ErrorResponse{
		Status:    status,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

// ValidationError writes a 400 envelope carrying per-field messages
func ValidationError(c *gin.Context, message string, errors []string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Status:    http.StatusBadRequest,
		Message:   message,
		Errors:    errors,
		Timestamp: time.Now().UTC(),
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// InternalError never echoes the underlying error to the client
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func ServiceUnavailable(c *gin.Context, message string) {
	Error(c, http.StatusServiceUnavailable, message)
}

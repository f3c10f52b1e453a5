package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valenn0101/koywe-challenge/internal/dto"
	"github.com/valenn0101/koywe-challenge/internal/middleware"
	"github.com/valenn0101/koywe-challenge/internal/service"
	"github.com/valenn0101/koywe-challenge/pkg/response"
)

// QuoteHandler handles currency quote HTTP requests
type QuoteHandler struct {
	quoteService service.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// CreateQuote handles quote creation
// POST /quote
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Amount must be positive and from/to currencies are required")
		return
	}

	userID := middleware.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	result, err := h.quoteService.CreateQuote(c.Request.Context(), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCurrency):
			response.BadRequest(c, "Currency is not supported")
		case errors.Is(err, service.ErrSameCurrency):
			response.BadRequest(c, "Source and target currencies must differ")
		case errors.Is(err, service.ErrExchangeRateUnavailable):
			response.ServiceUnavailable(c, "Exchange rate source is unavailable")
		default:
			response.InternalError(c)
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetQuote handles quote retrieval by ID. Expired quotes are reported as
// not found.
// GET /quote/:id
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id := c.Param("id")

	result, err := h.quoteService.GetQuoteByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			response.NotFound(c, "Quote not found")
			return
		}
		response.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCurrencies returns the supported currency codes
// GET /quote/currencies/all
func (h *QuoteHandler) GetCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, h.quoteService.GetAllCurrencies())
}

// GetUserQuotes returns all quotes owned by the authenticated user
// GET /quote/user/all
func (h *QuoteHandler) GetUserQuotes(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	quotes, err := h.quoteService.GetUserQuotes(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, quotes)
}

// DeleteQuote handles quote deletion
// DELETE /quote/:id
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	id := c.Param("id")

	if err := h.quoteService.DeleteQuote(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			response.NotFound(c, "Quote not found")
			return
		}
		response.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quote deleted successfully"})
}

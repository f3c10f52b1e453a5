package dto

import (
	"time"

	"github.com/valenn0101/koywe-challenge/internal/domain"
)

// CreateQuoteRequest represents a quote creation request
type CreateQuoteRequest struct {
	Amount float64         `json:"amount" binding:"required,gt=0"`
	From   domain.Currency `json:"from" binding:"required"`
	To     domain.Currency `json:"to" binding:"required"`
}

// QuoteResponse is the trimmed view of a quote returned to clients. It
// omits the owner and the record timestamps.
type QuoteResponse struct {
	ID              string          `json:"id"`
	From            domain.Currency `json:"from"`
	To              domain.Currency `json:"to"`
	Amount          float64         `json:"amount"`
	Rate            float64         `json:"rate"`
	ConvertedAmount float64         `json:"convertedAmount"`
	Timestamp       time.Time       `json:"timestamp"`
	ExpiresAt       time.Time       `json:"expiresAt"`
}

// ToQuoteResponse converts a Quote to its trimmed view
func ToQuoteResponse(q *domain.Quote) *QuoteResponse {
	return &QuoteResponse{
		ID:              q.ID,
		From:            q.From,
		To:              q.To,
		Amount:          q.Amount,
		Rate:            q.Rate,
		ConvertedAmount: q.ConvertedAmount,
		Timestamp:       q.Timestamp,
		ExpiresAt:       q.ExpiresAt,
	}
}

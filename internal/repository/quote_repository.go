package repository

import (
	"context"

	"github.com/valenn0101/koywe-challenge/internal/domain"
)

// QuoteRepository defines the interface for quote persistence
type QuoteRepository interface {
	// Create persists a new quote
	Create(ctx context.Context, quote *domain.Quote) error
	// GetByID retrieves a quote by ID, nil if not found or soft-deleted.
	// Expiry is a service concern: expired quotes are still returned here.
	GetByID(ctx context.Context, id string) (*domain.Quote, error)
	// GetByUserID retrieves all non-deleted quotes owned by a user
	GetByUserID(ctx context.Context, userID string) ([]*domain.Quote, error)
	// SoftDelete marks a quote deleted without removing the record
	SoftDelete(ctx context.Context, id string) error
}

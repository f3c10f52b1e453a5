package gateway

import (
	"context"

	"github.com/valenn0101/koywe-challenge/internal/domain"
)

// RateGateway defines the interface for exchange-rate lookups against an
// external price source. Lookups are attempted exactly once per request:
// callers apply no retry and the gateway applies no timeout of its own.
type RateGateway interface {
	// GetExchangeRate returns the current rate for converting one unit of
	// from into to.
	GetExchangeRate(ctx context.Context, from, to domain.Currency) (float64, error)

	// Name returns the gateway name
	Name() string
}

// RateGatewayConfig holds common gateway configuration
type RateGatewayConfig struct {
	BaseURL string
}

package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/valenn0101/koywe-challenge/internal/domain"
)

// MockRateGateway is a configurable in-memory RateGateway for tests and
// local development. It records every lookup it receives.
type MockRateGateway struct {
	mu sync.Mutex

	// Rates maps "FROM_TO" pairs to fixed rates
	Rates map[string]float64
	// Err, when set, is returned by every lookup
	Err error

	calls []RateCall
}

// RateCall records a single lookup
type RateCall struct {
	From domain.Currency
	To   domain.Currency
}

// NewMockRateGateway creates a new MockRateGateway
func NewMockRateGateway() *MockRateGateway {
	return &MockRateGateway{Rates: make(map[string]float64)}
}

// SetRate configures the rate returned for a currency pair
func (g *MockRateGateway) SetRate(from, to domain.Currency, rate float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Rates[rateKey(from, to)] = rate
}

// GetExchangeRate returns the configured rate for the pair
func (g *MockRateGateway) GetExchangeRate(ctx context.Context, from, to domain.Currency) (float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, RateCall{From: from, To: to})

	if g.Err != nil {
		return 0, g.Err
	}
	rate, ok := g.Rates[rateKey(from, to)]
	if !ok {
		return 0, fmt.Errorf("no rate configured for %s to %s", from, to)
	}
	return rate, nil
}

// Calls returns the lookups recorded so far
func (g *MockRateGateway) Calls() []RateCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]RateCall, len(g.calls))
	copy(out, g.calls)
	return out
}

// Name returns the gateway name
func (g *MockRateGateway) Name() string {
	return "mock"
}

func rateKey(from, to domain.Currency) string {
	return fmt.Sprintf("%s_%s", from, to)
}

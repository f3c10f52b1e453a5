package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/valenn0101/koywe-challenge/internal/domain"
)

// CryptoMarketGateway implements RateGateway against the crypto-market
// price API. The API answers GET {base}?from=F&to=T with a document keyed
// by currency code:
//
//	{"ARS": {"currency": "ETH", "price": "0.0000023", "timestamp": "..."}}
type CryptoMarketGateway struct {
	baseURL string
	client  *http.Client
}

type priceData struct {
	Currency  string `json:"currency"`
	Price     string `json:"price"`
	Timestamp string `json:"timestamp"`
}

// NewCryptoMarketGateway creates a new CryptoMarketGateway
func NewCryptoMarketGateway(config *RateGatewayConfig) (*CryptoMarketGateway, error) {
	if config == nil || config.BaseURL == "" {
		return nil, fmt.Errorf("rate API base URL is required")
	}
	return &CryptoMarketGateway{
		baseURL: config.BaseURL,
		// No client timeout: a hang in the price source stalls the calling
		// request until the caller's context is done.
		client: http.DefaultClient,
	}, nil
}

// GetExchangeRate fetches the current rate for the given currency pair
func (g *CryptoMarketGateway) GetExchangeRate(ctx context.Context, from, to domain.Currency) (float64, error) {
	reqURL := fmt.Sprintf("%s?from=%s&to=%s", g.baseURL, url.QueryEscape(from.String()), url.QueryEscape(to.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var body map[string]priceData
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode rate response: %w", err)
	}

	data, ok := body[from.String()]
	if !ok || data.Price == "" {
		return 0, fmt.Errorf("rate response missing price for %s", from)
	}

	rate, err := strconv.ParseFloat(data.Price, 64)
	if err != nil || math.IsNaN(rate) {
		return 0, fmt.Errorf("rate response has non-numeric price %q", data.Price)
	}

	return rate, nil
}

// Name returns the gateway name
func (g *CryptoMarketGateway) Name() string {
	return "crypto-market"
}

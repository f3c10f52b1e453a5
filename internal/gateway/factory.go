package gateway

import (
	"fmt"
	"strings"
)

// GatewayType represents the type of rate gateway
type GatewayType string

const (
	GatewayTypeCryptoMarket GatewayType = "crypto-market"
	GatewayTypeMock         GatewayType = "mock"
)

// NewRateGateway creates a rate gateway based on the type
func NewRateGateway(gatewayType string, config *RateGatewayConfig) (RateGateway, error) {
	switch GatewayType(strings.ToLower(gatewayType)) {
	case GatewayTypeCryptoMarket, "":
		return NewCryptoMarketGateway(config)

	case GatewayTypeMock:
		return NewMockRateGateway(), nil

	default:
		return nil, fmt.Errorf("unsupported rate gateway type: %s", gatewayType)
	}
}

package domain

// Currency is a supported currency code
type Currency string

// Supported currencies. Order matters: GET /quote/currencies/all returns
// them exactly as declared here.
const (
	CurrencyARS  Currency = "ARS"
	CurrencyETH  Currency = "ETH"
	CurrencyBTC  Currency = "BTC"
	CurrencyUSDT Currency = "USDT"
	CurrencyXEM  Currency = "XEM"
	CurrencyCLP  Currency = "CLP"
	CurrencySHIB Currency = "SHIB"
	CurrencyDOGE Currency = "DOGE"
)

var currencies = []Currency{
	CurrencyARS,
	CurrencyETH,
	CurrencyBTC,
	CurrencyUSDT,
	CurrencyXEM,
	CurrencyCLP,
	CurrencySHIB,
	CurrencyDOGE,
}

// Currencies returns the supported currency codes in declaration order.
// The returned slice is a copy and safe to mutate.
func Currencies() []Currency {
	out := make([]Currency, len(currencies))
	copy(out, currencies)
	return out
}

// IsValid reports whether c is one of the supported currencies
func (c Currency) IsValid() bool {
	for _, cur := range currencies {
		if c == cur {
			return true
		}
	}
	return false
}

func (c Currency) String() string {
	return string(c)
}

package exchange

import "strings"

// Supported exchange names
const (
	MEXC   = "mexc"
	CoinEx = "coinex"
)

// Exchanges stores a list of supported exchanges
var Exchanges = []string{
	MEXC,
	CoinEx,
}

// IsSupported returns whether or not a specific exchange is supported
func IsSupported(exchangeName string) bool {
	for x := range Exchanges {
		if strings.EqualFold(exchangeName, Exchanges[x]) {
			return true
		}
	}
	return false
}

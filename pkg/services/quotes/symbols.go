package quotes

import (
	"errors"
	"strings"
)

var errNoData = errors.New("quotes: no data for symbol")

// knownNames maps watchlist symbols to display names. The feed's own name
// lookups cost an extra request per symbol, so the common ones are baked in
// and everything else falls back to the bare symbol.
var knownNames = map[string]string{
	"AAPL":          "Apple Inc",
	"GOOGL":         "Alphabet Inc",
	"MSFT":          "Microsoft Corporation",
	"AMZN":          "Amazon.com Inc",
	"TSLA":          "Tesla Inc",
	"NVDA":          "NVIDIA Corporation",
	"RELIANCE.NSE":  "Reliance Industries",
	"TCS.NSE":       "Tata Consultancy Services",
	"HDFCBANK.NSE":  "HDFC Bank",
	"ICICIBANK.NSE": "ICICI Bank",
	"INFY.NSE":      "Infosys",
	"SBIN.NSE":      "State Bank of India",
	"KOTAKBANK.NSE": "Kotak Mahindra Bank",
	"AXISBANK.NSE":  "Axis Bank",
	"BANKBARODA.NSE": "Bank of Baroda",
	"PNB.NSE":        "Punjab National Bank",
	"CANBK.NSE":      "Canara Bank",
	"UNIONBANK.NSE":  "Union Bank of India",
	"IDBI.NSE":       "IDBI Bank",
}

// DisplayName resolves a human-readable name for symbol.
func DisplayName(symbol string) string {
	if name, ok := knownNames[strings.ToUpper(symbol)]; ok {
		return name
	}
	return symbol
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateTable maps a currency to the number of settlement-currency units one unit of it buys.
type RateTable map[CurrencyCode]decimal.Decimal

// Clone returns an independent copy of the table.
func (t RateTable) Clone() RateTable {
	out := make(RateTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Rate returns the rate for code and whether it was present.
func (t RateTable) Rate(code CurrencyCode) (decimal.Decimal, bool) {
	r, ok := t[code]
	return r, ok
}

// fallbackRates are used whenever live rates are unavailable.
// Values are EGP per one unit of the currency.
var fallbackRates = map[CurrencyCode]string{
	"EGP": "1",
	"USD": "49.5",
	"EUR": "53.5",
	"GBP": "62.5",
	"SAR": "13.2",
	"AED": "13.48",
	"KWD": "161.0",
	"QAR": "13.6",
	"BHD": "131.3",
	"OMR": "128.6",
	"JOD": "69.8",
	"CHF": "56.0",
	"CAD": "36.0",
	"AUD": "32.5",
	"CNY": "6.85",
	"MAD": "5.0",
}

// FallbackRates returns a fresh copy of the static rate table.
func FallbackRates() RateTable {
	out := make(RateTable, len(fallbackRates))
	for code, v := range fallbackRates {
		out[code] = decimal.RequireFromString(v)
	}
	return out
}

// RateSnapshot is a rate table together with where it came from.
type RateSnapshot struct {
	Rates     RateTable `json:"rates"`
	IsLive    bool      `json:"isLive"`
	FetchedAt time.Time `json:"fetchedAt"`
}

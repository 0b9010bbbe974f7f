package domain

import "github.com/shopspring/decimal"

// SettlementConversion describes how a cart total was turned into the amount the gateway charges.
// ExchangeRate is nil when the original currency already is the settlement currency.
type SettlementConversion struct {
	OriginalAmount   decimal.Decimal  `json:"originalAmount"`
	OriginalCurrency CurrencyCode     `json:"originalCurrency"`
	KashierAmount    decimal.Decimal  `json:"kashierAmount"`
	KashierCurrency  CurrencyCode     `json:"kashierCurrency"`
	ExchangeRate     *decimal.Decimal `json:"exchangeRate,omitempty"`
	IsLiveRate       bool             `json:"isLiveRate"`
}

// IsIdentity reports whether no conversion took place.
func (s SettlementConversion) IsIdentity() bool {
	return s.OriginalCurrency == s.KashierCurrency
}

// DisplayPrice is an amount rendered in the site display currency.
type DisplayPrice struct {
	Amount     decimal.Decimal `json:"amount"`
	Currency   CurrencyCode    `json:"currency"`
	Formatted  string          `json:"formatted"`
	IsLiveRate bool            `json:"isLiveRate"`
}

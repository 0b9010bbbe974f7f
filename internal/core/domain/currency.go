package domain

import (
	"strings"
	"time"
)

// CurrencyCode is an ISO 4217 code such as "USD".
type CurrencyCode string

// SettlementCurrency is the only currency the payment gateway charges in.
const SettlementCurrency CurrencyCode = "EGP"

// CurrencyPosition controls where the symbol is rendered relative to the amount.
type CurrencyPosition string

const (
	CurrencyPositionBefore CurrencyPosition = "before"
	CurrencyPositionAfter  CurrencyPosition = "after"
)

// supportedCurrencies lists every currency the storefront can display prices in.
var supportedCurrencies = []CurrencyCode{
	"EGP", "USD", "EUR", "GBP", "SAR", "AED", "KWD", "QAR",
	"BHD", "OMR", "JOD", "CHF", "CAD", "AUD", "CNY", "MAD",
}

// SupportedCurrencies returns a copy of the statically known currency codes.
func SupportedCurrencies() []CurrencyCode {
	out := make([]CurrencyCode, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// IsSupported reports whether the code is one of the statically known currencies.
func (c CurrencyCode) IsSupported() bool {
	for _, s := range supportedCurrencies {
		if s == c {
			return true
		}
	}
	return false
}

// Normalize upper-cases and trims the code.
func (c CurrencyCode) Normalize() CurrencyCode {
	return CurrencyCode(strings.ToUpper(strings.TrimSpace(string(c))))
}

func (c CurrencyCode) String() string { return string(c) }

// IsValid reports whether the position is one of the two known values.
func (p CurrencyPosition) IsValid() bool {
	return p == CurrencyPositionBefore || p == CurrencyPositionAfter
}

// CurrencySettings is the site-wide display currency configuration (single row).
type CurrencySettings struct {
	DefaultCurrency  CurrencyCode     `json:"defaultCurrency"`
	CurrencySymbol   string           `json:"currencySymbol"`
	CurrencyPosition CurrencyPosition `json:"currencyPosition"`
	DecimalPlaces    int              `json:"decimalPlaces"`
	AuditFields
}

// DefaultCurrencySettings is used whenever no settings row has been persisted yet.
func DefaultCurrencySettings() CurrencySettings {
	return CurrencySettings{
		DefaultCurrency:  "SAR",
		CurrencySymbol:   "ر.س",
		CurrencyPosition: CurrencyPositionAfter,
		DecimalPlaces:    2,
	}
}

// CurrencySettingsChange is one entry of the settings audit trail.
type CurrencySettingsChange struct {
	ID               int64
	DefaultCurrency  CurrencyCode
	CurrencySymbol   string
	CurrencyPosition CurrencyPosition
	DecimalPlaces    int
	ChangedAt        time.Time
	ChangedBy        string
}

// HistoryCursor marks the last change seen by a caller; the next page starts strictly after it.
type HistoryCursor struct {
	ChangedAt time.Time
	ID        int64
}

package utils

import (
	"github.com/shopspring/decimal"
)

// FormatWithPrecision formats an amount with exactly precision decimal places,
// rounding half away from zero.
// Example: 12.3456 with precision 2 returns "12.35"
// Example: 12.3456 with precision 0 returns "12"
// Example: 12.3 with precision 3 returns "12.300"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return amount.StringFixed(int32(precision))
}

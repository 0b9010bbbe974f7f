package services

import (
	"context"
	"log/slog"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/middleware"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/utils"
	"github.com/shopspring/decimal"
)

// ToSettlement converts amount from the given currency into the settlement currency.
// A missing or non-positive rate is logged and the amount is returned unchanged.
func ToSettlement(ctx context.Context, amount decimal.Decimal, from domain.CurrencyCode, rates domain.RateTable) decimal.Decimal {
	if from == domain.SettlementCurrency {
		return amount
	}
	rate, ok := usableRate(ctx, from, rates)
	if !ok {
		return amount
	}
	return Round2(amount.Mul(rate))
}

// FromSettlement converts a settlement-currency amount into the given currency.
// Same missing-rate policy as ToSettlement.
func FromSettlement(ctx context.Context, amount decimal.Decimal, to domain.CurrencyCode, rates domain.RateTable) decimal.Decimal {
	if to == domain.SettlementCurrency {
		return amount
	}
	rate, ok := usableRate(ctx, to, rates)
	if !ok {
		return amount
	}
	return Round2(amount.Div(rate))
}

// Round2 rounds to cents, half away from zero.
func Round2(x decimal.Decimal) decimal.Decimal {
	return x.Round(2)
}

// FormatForDisplay renders amount with the configured precision and symbol placement.
func FormatForDisplay(amount decimal.Decimal, settings domain.CurrencySettings) string {
	formatted := utils.FormatWithPrecision(amount, settings.DecimalPlaces)
	if settings.CurrencySymbol == "" {
		return formatted
	}
	if settings.CurrencyPosition == domain.CurrencyPositionBefore {
		return settings.CurrencySymbol + " " + formatted
	}
	return formatted + " " + settings.CurrencySymbol
}

func usableRate(ctx context.Context, code domain.CurrencyCode, rates domain.RateTable) (decimal.Decimal, bool) {
	rate, ok := rates.Rate(code)
	if !ok || !rate.IsPositive() {
		middleware.GetLoggerFromCtx(ctx).Warn("Exchange rate missing, amount left unconverted",
			slog.String("currency", code.String()),
			slog.Bool("present", ok))
		return decimal.Zero, false
	}
	return rate, true
}

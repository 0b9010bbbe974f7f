package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/apperrors"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	portssvc "github.com/AhmedRagabRG/exabytex-sub001/internal/core/ports/services"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/utils"
	"github.com/shopspring/decimal"
)

type settlementService struct {
	BaseService
	settings portssvc.CurrencySettingsReaderSvc
	rates    portssvc.ExchangeRateReaderSvc
	fallback domain.RateTable
}

// SettlementOption configures the settlement service.
type SettlementOption func(*settlementService)

// WithSettlementFallbackRates replaces the static table used for currencies missing from a live table.
func WithSettlementFallbackRates(rates domain.RateTable) SettlementOption {
	return func(s *settlementService) {
		s.fallback = rates.Clone()
	}
}

// WithSettlementEventTracker reports per-currency fallbacks to analytics.
func WithSettlementEventTracker(tracker utils.EventTracker) SettlementOption {
	return func(s *settlementService) {
		s.Tracker = tracker
	}
}

// NewSettlementService creates the resolver that decides what the gateway charges.
func NewSettlementService(settings portssvc.CurrencySettingsReaderSvc, rates portssvc.ExchangeRateReaderSvc, opts ...SettlementOption) portssvc.SettlementSvc {
	s := &settlementService{
		settings: settings,
		rates:    rates,
		fallback: domain.FallbackRates(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.SettlementSvc = (*settlementService)(nil)

// ResolveForGateway converts amount from the site display currency into the settlement currency.
// The settlement currency itself short-circuits without touching the rate cache.
func (s *settlementService) ResolveForGateway(ctx context.Context, amount decimal.Decimal) (*domain.SettlementConversion, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve display currency: %w", err)
	}
	from := settings.DefaultCurrency

	if from == domain.SettlementCurrency {
		return &domain.SettlementConversion{
			OriginalAmount:   amount,
			OriginalCurrency: from,
			KashierAmount:    amount,
			KashierCurrency:  domain.SettlementCurrency,
			IsLiveRate:       false,
		}, nil
	}

	rates, isLive := s.ratesFor(ctx, from)
	conversion := &domain.SettlementConversion{
		OriginalAmount:   amount,
		OriginalCurrency: from,
		KashierAmount:    ToSettlement(ctx, amount, from, rates),
		KashierCurrency:  domain.SettlementCurrency,
		IsLiveRate:       isLive,
	}
	if rate, ok := rates.Rate(from); ok && rate.IsPositive() {
		conversion.ExchangeRate = &rate
	} else {
		conversion.IsLiveRate = false
	}

	s.LogDebug(ctx, "Resolved settlement amount",
		slog.String("from", from.String()),
		slog.String("amount", amount.String()),
		slog.String("settlement_amount", conversion.KashierAmount.String()),
		slog.Bool("live_rate", conversion.IsLiveRate))
	return conversion, nil
}

// DisplayPrice converts amount from the given currency into the display currency.
func (s *settlementService) DisplayPrice(ctx context.Context, amount decimal.Decimal, from domain.CurrencyCode) (*domain.DisplayPrice, error) {
	if from == "" {
		from = domain.SettlementCurrency
	}
	from = from.Normalize()
	if !from.IsSupported() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("currency %q is not supported", from))
	}
	if amount.IsNegative() {
		return nil, apperrors.NewValidationError("amount must not be negative")
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve display currency: %w", err)
	}
	to := settings.DefaultCurrency

	converted := amount
	isLive := false
	if from != to {
		var rates domain.RateTable
		rates, isLive = s.ratesFor(ctx, from, to)
		settlementAmount := ToSettlement(ctx, amount, from, rates)
		converted = FromSettlement(ctx, settlementAmount, to, rates)
	}

	return &domain.DisplayPrice{
		Amount:     converted,
		Currency:   to,
		Formatted:  FormatForDisplay(converted, settings),
		IsLiveRate: isLive,
	}, nil
}

// ratesFor returns the cached table, filling any of codes missing from a live
// table with the static rate. Liveness is reported false when a fill happened.
func (s *settlementService) ratesFor(ctx context.Context, codes ...domain.CurrencyCode) (domain.RateTable, bool) {
	snapshot := s.rates.GetRates(ctx)
	rates := snapshot.Rates
	isLive := snapshot.IsLive
	cloned := false

	for _, code := range codes {
		if code == domain.SettlementCurrency {
			continue
		}
		if rate, ok := rates.Rate(code); ok && rate.IsPositive() {
			continue
		}
		fallbackRate, ok := s.fallback.Rate(code)
		if !ok {
			continue
		}
		if !cloned {
			rates = rates.Clone()
			cloned = true
		}
		rates[code] = fallbackRate
		isLive = false

		s.LogWarn(ctx, "Currency missing from live rates, using fallback rate",
			slog.String("currency", code.String()),
			slog.String("rate", fallbackRate.String()))
		s.Track(ctx, EventExchangeRateDegraded, map[string]any{
			"reason":   "currency_missing",
			"currency": code.String(),
		})
	}
	return rates, isLive
}

package services

import (
	"context"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
)

// ExchangeRateReaderSvc serves the current rate table. It never fails: on any
// upstream problem the static fallback table is returned with IsLive=false.
type ExchangeRateReaderSvc interface {
	GetRates(ctx context.Context) domain.RateSnapshot
}

// ExchangeRateRefresherSvc bypasses cache freshness.
type ExchangeRateRefresherSvc interface {
	ForceRefresh(ctx context.Context) domain.RateSnapshot
}

// ExchangeRateSvc combines all exchange rate service interfaces
type ExchangeRateSvc interface {
	ExchangeRateReaderSvc
	ExchangeRateRefresherSvc
}

package dto

import (
	"sort"
	"time"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRatesResponse lists settlement units per one unit of each currency.
type ExchangeRatesResponse struct {
	Base       string                     `json:"base"`
	Rates      map[string]decimal.Decimal `json:"rates"`
	Currencies []string                   `json:"currencies"`
	IsLive     bool                       `json:"isLive"`
	FetchedAt  *time.Time                 `json:"fetchedAt,omitempty"`
}

// ToExchangeRatesResponse converts a domain.RateSnapshot to ExchangeRatesResponse DTO
func ToExchangeRatesResponse(snapshot domain.RateSnapshot) ExchangeRatesResponse {
	rates := make(map[string]decimal.Decimal, len(snapshot.Rates))
	currencies := make([]string, 0, len(snapshot.Rates))
	for code, rate := range snapshot.Rates {
		rates[code.String()] = rate
		currencies = append(currencies, code.String())
	}
	sort.Strings(currencies)

	resp := ExchangeRatesResponse{
		Base:       domain.SettlementCurrency.String(),
		Rates:      rates,
		Currencies: currencies,
		IsLive:     snapshot.IsLive,
	}
	if !snapshot.FetchedAt.IsZero() {
		fetchedAt := snapshot.FetchedAt
		resp.FetchedAt = &fetchedAt
	}
	return resp
}

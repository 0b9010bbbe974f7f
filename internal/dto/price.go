package dto

import (
	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PriceDisplayParams are the query parameters of the price display endpoint.
// From defaults to the settlement currency.
type PriceDisplayParams struct {
	Amount string `form:"amount" binding:"required"`
	From   string `form:"from" binding:"omitempty,currency_code"`
}

// PriceDisplayResponse is an amount rendered in the site display currency.
type PriceDisplayResponse struct {
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Formatted  string          `json:"formatted"`
	IsLiveRate bool            `json:"isLiveRate"`
}

// ToPriceDisplayResponse converts a domain.DisplayPrice to PriceDisplayResponse DTO
func ToPriceDisplayResponse(p *domain.DisplayPrice) PriceDisplayResponse {
	return PriceDisplayResponse{
		Amount:     p.Amount,
		Currency:   p.Currency.String(),
		Formatted:  p.Formatted,
		IsLiveRate: p.IsLiveRate,
	}
}

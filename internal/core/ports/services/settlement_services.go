package services

import (
	"context"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettlementResolverSvc turns a cart total in the display currency into the gateway charge.
type SettlementResolverSvc interface {
	ResolveForGateway(ctx context.Context, amount decimal.Decimal) (*domain.SettlementConversion, error)
}

// PriceDisplaySvc renders amounts in the site display currency.
type PriceDisplaySvc interface {
	// DisplayPrice converts amount (expressed in from) into the display currency and formats it.
	DisplayPrice(ctx context.Context, amount decimal.Decimal, from domain.CurrencyCode) (*domain.DisplayPrice, error)
}

// SettlementSvc combines all settlement service interfaces
type SettlementSvc interface {
	SettlementResolverSvc
	PriceDisplaySvc
}

package services

import (
	"context"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
)

// CheckoutSvc builds signed gateway requests for the three payment flows.
type CheckoutSvc interface {
	// Checkout always returns a result. On failure the result carries a fresh
	// order id, the placeholder payment URL and a message, and err is non-nil
	// so callers can pick a status code with errors.Is.
	Checkout(ctx context.Context, flow domain.PaymentFlow, order domain.Order) (*domain.CheckoutResult, error)
}

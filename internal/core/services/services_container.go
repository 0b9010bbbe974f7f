package services

import (
	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	portsrepo "github.com/AhmedRagabRG/exabytex-sub001/internal/core/ports/repositories"
	portssvc "github.com/AhmedRagabRG/exabytex-sub001/internal/core/ports/services"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/platform/config"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/utils"
)

// ExternalDeps are the outbound adapters the services call.
type ExternalDeps struct {
	RateSource RateSource
	Gateway    PaymentSessionCreator
	Tracker    utils.EventTracker
	// FallbackRates replaces domain.FallbackRates for both the cache and the resolver.
	FallbackRates domain.RateTable
}

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The rate cache is created here exactly once and shared by every service that needs rates.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, deps ExternalDeps) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.CurrencySettings = NewCurrencySettingsService(repos.CurrencySettingsRepo)

	fallback := deps.FallbackRates
	if len(fallback) == 0 {
		fallback = domain.FallbackRates()
	}

	rateCache := NewRateCache(deps.RateSource, cfg.Rates.CacheTTL,
		WithFallbackRates(fallback),
		WithRateEventTracker(deps.Tracker),
	)
	container.ExchangeRates = rateCache

	container.Settlement = NewSettlementService(
		container.CurrencySettings,
		rateCache,
		WithSettlementFallbackRates(fallback),
		WithSettlementEventTracker(deps.Tracker),
	)

	container.Checkout = NewCheckoutService(
		cfg,
		container.Settlement,
		deps.Gateway,
		WithCheckoutEventTracker(deps.Tracker),
	)

	return container
}

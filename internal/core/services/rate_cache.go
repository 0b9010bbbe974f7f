package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	portssvc "github.com/AhmedRagabRG/exabytex-sub001/internal/core/ports/services"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// EventExchangeRateDegraded is raised whenever fallback rates are served.
const EventExchangeRateDegraded = "exchange_rate_degraded"

// DefaultRateCacheTTL is how long a successful fetch stays fresh.
const DefaultRateCacheTTL = time.Hour

var errEmptyRateTable = errors.New("rate source returned no usable rates")

// RateSource fetches a live rate table in settlement units per foreign unit.
type RateSource interface {
	FetchRates(ctx context.Context) (domain.RateTable, error)
}

type rateEntry struct {
	rates     domain.RateTable
	fetchedAt time.Time
}

// RateCache serves live exchange rates for up to ttl after a successful fetch
// and the static fallback table whenever a fetch fails. Failures are never cached.
type RateCache struct {
	BaseService
	source   RateSource
	ttl      time.Duration
	now      func() time.Time
	fallback domain.RateTable

	mu    sync.RWMutex
	entry *rateEntry
	group singleflight.Group
}

var _ portssvc.ExchangeRateSvc = (*RateCache)(nil)

// RateCacheOption configures a RateCache.
type RateCacheOption func(*RateCache)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) RateCacheOption {
	return func(c *RateCache) {
		c.now = now
	}
}

// WithFallbackRates replaces the static fallback table.
func WithFallbackRates(rates domain.RateTable) RateCacheOption {
	return func(c *RateCache) {
		c.fallback = rates.Clone()
	}
}

// WithRateEventTracker reports degraded lookups to analytics.
func WithRateEventTracker(tracker utils.EventTracker) RateCacheOption {
	return func(c *RateCache) {
		c.Tracker = tracker
	}
}

// NewRateCache creates a cache in front of source. A non-positive ttl means DefaultRateCacheTTL.
func NewRateCache(source RateSource, ttl time.Duration, opts ...RateCacheOption) *RateCache {
	if ttl <= 0 {
		ttl = DefaultRateCacheTTL
	}
	c := &RateCache{
		source:   source,
		ttl:      ttl,
		now:      time.Now,
		fallback: domain.FallbackRates(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetRates returns the cached table while it is fresh. Otherwise it fetches once;
// concurrent misses share the same fetch. The shared fetch is detached from the
// caller's cancellation, so a caller that goes away only abandons its own wait.
func (c *RateCache) GetRates(ctx context.Context) domain.RateSnapshot {
	if snapshot, ok := c.cached(); ok {
		return snapshot
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan("rates", func() (any, error) {
		if snapshot, ok := c.cached(); ok {
			return snapshot, nil
		}
		return c.fetch(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return c.degrade(ctx, "get", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return c.degrade(ctx, "get", res.Err)
		}
		snapshot := res.Val.(domain.RateSnapshot)
		snapshot.Rates = snapshot.Rates.Clone()
		return snapshot
	}
}

// ForceRefresh fetches regardless of freshness. The result reports whether live data was obtained.
func (c *RateCache) ForceRefresh(ctx context.Context) domain.RateSnapshot {
	snapshot, err := c.fetch(ctx)
	if err != nil {
		return c.degrade(ctx, "force_refresh", err)
	}
	c.LogInfo(ctx, "Exchange rates refreshed", slog.Int("currencies", len(snapshot.Rates)))
	return snapshot
}

// FetchedAt returns the timestamp of the cached entry, zero when nothing is cached.
func (c *RateCache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return time.Time{}
	}
	return c.entry.fetchedAt
}

func (c *RateCache) cached() (domain.RateSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil || c.now().Sub(c.entry.fetchedAt) >= c.ttl {
		return domain.RateSnapshot{}, false
	}
	return domain.RateSnapshot{
		Rates:     c.entry.rates.Clone(),
		IsLive:    true,
		FetchedAt: c.entry.fetchedAt,
	}, true
}

// fetch calls the source without holding the lock and stores the result on success.
func (c *RateCache) fetch(ctx context.Context) (domain.RateSnapshot, error) {
	rates, err := c.source.FetchRates(ctx)
	if err != nil {
		return domain.RateSnapshot{}, err
	}
	if len(rates) == 0 {
		return domain.RateSnapshot{}, errEmptyRateTable
	}

	rates = rates.Clone()
	rates[domain.SettlementCurrency] = decimal.NewFromInt(1)
	fetchedAt := c.now()

	c.mu.Lock()
	c.entry = &rateEntry{rates: rates, fetchedAt: fetchedAt}
	c.mu.Unlock()

	return domain.RateSnapshot{Rates: rates.Clone(), IsLive: true, FetchedAt: fetchedAt}, nil
}

func (c *RateCache) degrade(ctx context.Context, op string, err error) domain.RateSnapshot {
	c.LogWarn(ctx, "Live exchange rates unavailable, serving fallback rates",
		slog.String("operation", op),
		slog.String("error", err.Error()))
	c.Track(ctx, EventExchangeRateDegraded, map[string]any{
		"operation": op,
		"reason":    "fetch_failed",
		"error":     err.Error(),
	})
	return domain.RateSnapshot{Rates: c.fallback.Clone(), IsLive: false}
}

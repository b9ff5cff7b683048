// Package cache provides the two-tier best-effort readings cache.
//
// The cache is an optimization, never a correctness requirement:
// lookups fall through tiers in order, hits in later tiers are
// promoted forward, and write failures past the first tier are
// swallowed. Readings for a given date never change, so there is no
// TTL or eviction; the realistic key space is ~366 dates per year.
package cache

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/verbumdei/lectio/internal/liturgy"
	"github.com/verbumdei/lectio/internal/metrics"
)

// Tier is one cache layer keyed by the upstream date key.
type Tier interface {
	// Name identifies the tier in logs and metrics.
	Name() string
	// Get returns the cached record and whether it was present.
	Get(ctx context.Context, key string) (liturgy.DailyReadings, bool, error)
	// Put stores a copy of the record.
	Put(ctx context.Context, key string, value liturgy.DailyReadings) error
}

// Tiered composes tiers in lookup order.
type Tiered struct {
	tiers  []Tier
	logger *zap.Logger
}

// NewTiered builds a tiered cache. Tiers are consulted in the order
// given; the first is expected to be the cheapest.
func NewTiered(logger *zap.Logger, tiers ...Tier) *Tiered {
	return &Tiered{tiers: tiers, logger: logger}
}

// Get walks the tiers in order. A hit in a later tier is promoted
// into every earlier tier before returning.
func (c *Tiered) Get(ctx context.Context, key string) (liturgy.DailyReadings, bool) {
	for i, tier := range c.tiers {
		value, ok, err := tier.Get(ctx, key)
		if err != nil {
			c.logger.Debug("cache tier lookup failed",
				zap.String("tier", tier.Name()),
				zap.String("key", key),
				zap.Error(err),
			)
			continue
		}
		metrics.ObserveCacheLookup(tier.Name(), ok)
		if !ok {
			continue
		}
		for _, earlier := range c.tiers[:i] {
			if perr := earlier.Put(ctx, key, value); perr != nil {
				c.logger.Debug("cache promotion failed",
					zap.String("tier", earlier.Name()),
					zap.Error(perr),
				)
			}
		}
		return value, true
	}
	return liturgy.DailyReadings{}, false
}

// Put writes to every tier. A failure in the first tier is returned;
// failures in later tiers are best-effort and only logged.
func (c *Tiered) Put(ctx context.Context, key string, value liturgy.DailyReadings) error {
	for i, tier := range c.tiers {
		err := tier.Put(ctx, key, value)
		if err == nil {
			continue
		}
		if i == 0 {
			return fmt.Errorf("cache put (%s): %w", tier.Name(), err)
		}
		c.logger.Debug("durable cache write failed",
			zap.String("tier", tier.Name()),
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return nil
}

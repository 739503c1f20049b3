package multi

import (
	"time"

	"go.uber.org/zap"

	"go-screenshot-cache/internal/interfaces"
	"go-screenshot-cache/internal/models"
)

// Ensure MultiIndex implements interfaces.ExistenceIndex
var _ interfaces.ExistenceIndex = (*MultiIndex)(nil)

// Tier is one level of a MultiIndex
type Tier struct {
	Level models.IndexLevel
	Index interfaces.ExistenceIndex
	TTL   time.Duration // overrides the TTL passed to Mark when non-zero
}

// MultiIndex consults existence indexes in order, fastest first
type MultiIndex struct {
	tiers             []Tier
	enablePropagation bool
	logger            *zap.Logger
}

// NewMultiIndex creates a new MultiIndex. With propagation enabled a hit in a
// lower tier is copied into the tiers above it.
func NewMultiIndex(tiers []Tier, enablePropagation bool, logger *zap.Logger) *MultiIndex {
	return &MultiIndex{
		tiers:             tiers,
		enablePropagation: enablePropagation,
		logger:            logger,
	}
}

// Lookup returns the level that knows the key, or IndexLevelMiss
func (mi *MultiIndex) Lookup(key string) models.IndexLevel {
	for i, tier := range mi.tiers {
		if !tier.Index.Has(key) {
			continue
		}

		if mi.enablePropagation && i > 0 {
			for _, upper := range mi.tiers[:i] {
				upper.Index.Mark(key, upper.TTL)
			}
			mi.logger.Debug("Propagated index entry",
				zap.String("key", key),
				zap.String("from", string(tier.Level)))
		}
		return tier.Level
	}
	return models.IndexLevelMiss
}

// Has reports whether any tier knows the key
func (mi *MultiIndex) Has(key string) bool {
	return mi.Lookup(key) != models.IndexLevelMiss
}

// Mark records the key in every tier
func (mi *MultiIndex) Mark(key string, ttl time.Duration) {
	if len(mi.tiers) == 0 {
		return
	}

	for _, tier := range mi.tiers {
		tierTTL := ttl
		if tier.TTL > 0 {
			tierTTL = tier.TTL
		}
		tier.Index.Mark(key, tierTTL)
	}
}

// TierCount returns the number of tiers in the index
func (mi *MultiIndex) TierCount() int {
	return len(mi.tiers)
}

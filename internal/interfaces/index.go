package interfaces

import (
	"time"

	"go-screenshot-cache/internal/models"
)

//go:generate mockgen -package=mock -source=index.go -destination=mock/index.go

// ExistenceIndex memoises keys known to exist in object storage.
// Only positive results are recorded; stored objects are immutable.
type ExistenceIndex interface {
	Has(key string) bool
	Mark(key string, ttl time.Duration)
}

// LevelAwareIndex reports which tier answered a lookup
type LevelAwareIndex interface {
	ExistenceIndex
	Lookup(key string) models.IndexLevel
}

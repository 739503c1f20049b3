package noop

import (
	"time"

	"go-screenshot-cache/internal/interfaces"
)

// Ensure NoOpIndex implements interfaces.ExistenceIndex
var _ interfaces.ExistenceIndex = (*NoOpIndex)(nil)

// NoOpIndex is a no-operation index for disabled tiers
type NoOpIndex struct{}

// NewNoOpIndex creates a new no-operation index instance
func NewNoOpIndex() interfaces.ExistenceIndex {
	return &NoOpIndex{}
}

// Has always reports a miss
func (n *NoOpIndex) Has(key string) bool {
	return false
}

// Mark does nothing
func (n *NoOpIndex) Mark(key string, ttl time.Duration) {
	// No-op
}

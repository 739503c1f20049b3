package l2

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-screenshot-cache/internal/config"
	"go-screenshot-cache/internal/interfaces"
	"go-screenshot-cache/internal/metrics"
)

// Ensure KeyDBIndex implements interfaces.ExistenceIndex
var _ interfaces.ExistenceIndex = (*KeyDBIndex)(nil)

// KeyDBIndex implements the shared existence index using Redis/KeyDB.
// Entries expire server-side with the TTL given to Mark.
type KeyDBIndex struct {
	client interfaces.KeyDbClient
	config *config.Config
	logger *zap.Logger
}

// NewKeyDBIndex creates a new KeyDBIndex instance with provided client
func NewKeyDBIndex(cfg *config.Config, client interfaces.KeyDbClient, logger *zap.Logger) interfaces.ExistenceIndex {
	return &KeyDBIndex{
		client: client,
		config: cfg,
		logger: logger,
	}
}

// Has reports whether the key is present. Errors count as absent.
func (kc *KeyDBIndex) Has(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), kc.config.GetReadTimeout())
	defer cancel()

	n, err := kc.client.Exists(ctx, kc.indexKey(key)).Result()
	if err != nil {
		kc.logger.Error("L2 index lookup error", zap.String("key", key), zap.Error(err))
		metrics.RecordIndexError("l2", "upstream")
		return false
	}

	return n > 0
}

// Mark records the key as existing for ttl
func (kc *KeyDBIndex) Mark(key string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), kc.config.GetSendTimeout())
	defer cancel()

	if err := kc.client.Set(ctx, kc.indexKey(key), "1", ttl).Err(); err != nil {
		kc.logger.Error("Failed to set L2 index entry", zap.String("key", key), zap.Error(err))
		metrics.RecordIndexError("l2", "upstream")
	}
}

// Close closes the KeyDB connection
func (kc *KeyDBIndex) Close() error {
	return kc.client.Close()
}

func (kc *KeyDBIndex) indexKey(key string) string {
	return kc.config.L2.KeyPrefix + key
}

package l1

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/allegro/bigcache/v3"
	"go.uber.org/zap"

	"go-screenshot-cache/internal/config"
	"go-screenshot-cache/internal/interfaces"
	"go-screenshot-cache/internal/metrics"
)

// Ensure BigCacheIndex implements interfaces.ExistenceIndex
var _ interfaces.ExistenceIndex = (*BigCacheIndex)(nil)

const metricsInterval = 30 * time.Second

// BigCacheIndex implements the in-process existence index using BigCache.
// Each entry holds its own expiry so callers can pass a per-key TTL.
type BigCacheIndex struct {
	cache  *bigcache.BigCache
	logger *zap.Logger
	now    func() time.Time
	stop   chan struct{}
}

// NewBigCacheIndex creates a new BigCacheIndex instance
func NewBigCacheIndex(cfg *config.L1Config, logger *zap.Logger) (interfaces.ExistenceIndex, error) {
	lifeWindow := time.Duration(cfg.TTL) * time.Second
	if lifeWindow <= 0 {
		lifeWindow = 10 * time.Minute
	}

	bcConfig := bigcache.DefaultConfig(lifeWindow)
	bcConfig.HardMaxCacheSize = cfg.Size // Size in MB
	bcConfig.Verbose = false
	bcConfig.MaxEntrySize = 64 // keys are short, values are 8 bytes

	cache, err := bigcache.New(context.Background(), bcConfig)
	if err != nil {
		return nil, err
	}

	bc := &BigCacheIndex{
		cache:  cache,
		logger: logger,
		now:    time.Now,
		stop:   make(chan struct{}),
	}

	go bc.collectMetrics()

	return bc, nil
}

// Has reports whether key was marked and has not expired
func (bc *BigCacheIndex) Has(key string) bool {
	data, err := bc.cache.Get(key)
	if err != nil {
		return false
	}

	if len(data) != 8 {
		bc.logger.Warn("Corrupted L1 index entry", zap.String("key", key))
		metrics.RecordIndexError("l1", "decode")
		_ = bc.cache.Delete(key)
		return false
	}

	expiresAt := int64(binary.BigEndian.Uint64(data))
	if bc.now().UnixNano() >= expiresAt {
		_ = bc.cache.Delete(key)
		return false
	}

	return true
}

// Mark records key as existing for ttl
func (bc *BigCacheIndex) Mark(key string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, uint64(bc.now().Add(ttl).UnixNano()))

	if err := bc.cache.Set(key, data); err != nil {
		bc.logger.Error("Failed to set L1 index entry", zap.String("key", key), zap.Error(err))
		metrics.RecordIndexError("l1", "upstream")
	}
}

// Len returns the number of entries, including expired ones not yet evicted
func (bc *BigCacheIndex) Len() int {
	return bc.cache.Len()
}

// Close stops metrics collection and releases the cache
func (bc *BigCacheIndex) Close() error {
	close(bc.stop)
	return bc.cache.Close()
}

// collectMetrics periodically publishes entry count and capacity
func (bc *BigCacheIndex) collectMetrics() {
	ticker := time.NewTicker(metricsInterval)
	defer ticker.Stop()

	bc.updateMetrics()
	for {
		select {
		case <-ticker.C:
			bc.updateMetrics()
		case <-bc.stop:
			return
		}
	}
}

func (bc *BigCacheIndex) updateMetrics() {
	metrics.UpdateIndexEntries("l1", int64(bc.cache.Len()))
	metrics.UpdateL1IndexCapacity(int64(bc.cache.Capacity()))
}

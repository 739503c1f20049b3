package l1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-screenshot-cache/internal/config"
)

func newTestIndex(t *testing.T) *BigCacheIndex {
	t.Helper()

	idx, err := NewBigCacheIndex(&config.L1Config{Enabled: true, Size: 1, TTL: 60}, zap.NewNop())
	require.NoError(t, err)

	bc := idx.(*BigCacheIndex)
	t.Cleanup(func() { _ = bc.Close() })
	return bc
}

func TestNewBigCacheIndex(t *testing.T) {
	logger := zap.NewNop()

	idx, err := NewBigCacheIndex(&config.L1Config{Size: 1, TTL: 60}, logger)

	assert.NoError(t, err)
	assert.NotNil(t, idx)

	bc, ok := idx.(*BigCacheIndex)
	assert.True(t, ok)
	assert.NotNil(t, bc.cache)
	assert.Equal(t, logger, bc.logger)
	assert.NoError(t, bc.Close())
}

func TestBigCacheIndex_Mark_And_Has(t *testing.T) {
	idx := newTestIndex(t)

	assert.False(t, idx.Has("screenshots/example.com/index.jpg"))

	idx.Mark("screenshots/example.com/index.jpg", time.Minute)

	assert.True(t, idx.Has("screenshots/example.com/index.jpg"))
	assert.False(t, idx.Has("screenshots/example.com/other.jpg"))
	assert.Equal(t, 1, idx.Len())
}

func TestBigCacheIndex_Expired(t *testing.T) {
	idx := newTestIndex(t)

	now := time.Now()
	idx.now = func() time.Time { return now }
	idx.Mark("test-key", 10*time.Second)
	assert.True(t, idx.Has("test-key"))

	// Move past the entry's own expiry
	idx.now = func() time.Time { return now.Add(11 * time.Second) }
	assert.False(t, idx.Has("test-key"))

	// Expired entry was removed
	idx.now = func() time.Time { return now }
	assert.False(t, idx.Has("test-key"))
}

func TestBigCacheIndex_Mark_NonPositiveTTL(t *testing.T) {
	idx := newTestIndex(t)

	idx.Mark("test-key", 0)

	assert.False(t, idx.Has("test-key"))
	assert.Equal(t, 0, idx.Len())
}

func TestBigCacheIndex_CorruptedEntry(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.cache.Set("test-key", []byte("bad")))

	assert.False(t, idx.Has("test-key"))
	assert.Equal(t, 0, idx.Len())
}

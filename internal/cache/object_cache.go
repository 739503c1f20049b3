package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-screenshot-cache/internal/config"
	"go-screenshot-cache/internal/interfaces"
	"go-screenshot-cache/internal/metrics"
	"go-screenshot-cache/internal/models"
)

// Ensure ObjectCacheImpl implements interfaces.ObjectCache
var _ interfaces.ObjectCache = (*ObjectCacheImpl)(nil)

// ObjectCacheImpl stores captures in object storage and answers existence
// checks from the index before falling back to a HEAD request.
type ObjectCacheImpl struct {
	store    interfaces.ObjectStore
	index    interfaces.LevelAwareIndex
	cfg      *config.StorageConfig
	indexTTL time.Duration
	timeout  time.Duration
	logger   *zap.Logger
}

// NewObjectCache creates an ObjectCache. indexTTL is used for index tiers
// that do not carry their own TTL.
func NewObjectCache(store interfaces.ObjectStore, index interfaces.LevelAwareIndex, cfg *config.StorageConfig, indexTTL time.Duration, logger *zap.Logger) *ObjectCacheImpl {
	return &ObjectCacheImpl{
		store:    store,
		index:    index,
		cfg:      cfg,
		indexTTL: indexTTL,
		timeout:  time.Duration(cfg.RequestTimeout) * time.Millisecond,
		logger:   logger,
	}
}

// Exists returns the tier that knows key, IndexLevelStorage when only a HEAD
// found it, or IndexLevelMiss. Not found is never an error.
func (c *ObjectCacheImpl) Exists(ctx context.Context, key string) (models.IndexLevel, error) {
	if level := c.index.Lookup(key); level != models.IndexLevelMiss {
		metrics.RecordIndexHit(string(level))
		return level, nil
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	timer := metrics.TimeStorageOperation("exists")
	exists, err := c.store.HeadExists(ctx, key)
	timer()
	if err != nil {
		metrics.RecordStorageError("exists")
		return models.IndexLevelMiss, &models.StorageError{Op: "exists", Key: key, Err: err}
	}

	if !exists {
		return models.IndexLevelMiss, nil
	}

	metrics.RecordIndexHit(string(models.IndexLevelStorage))
	c.index.Mark(key, c.indexTTL)
	return models.IndexLevelStorage, nil
}

// Store writes the capture under its key
func (c *ObjectCacheImpl) Store(ctx context.Context, image *models.CapturedImage) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	timer := metrics.TimeStorageOperation("store")
	err := c.store.PutObject(ctx, image.Key, image.Data, image.MediaType.ContentType(), c.visibility())
	timer()

	switch {
	case errors.Is(err, models.ErrAlreadyExists):
		// A concurrent request stored the same key first
		c.logger.Debug("Object already stored", zap.String("key", image.Key))
	case err != nil:
		metrics.RecordStorageError("store")
		return &models.StorageError{Op: "store", Key: image.Key, Err: err}
	}

	c.index.Mark(image.Key, c.indexTTL)
	return nil
}

// AccessReference returns the public URL or a signed URL valid for ttl
func (c *ObjectCacheImpl) AccessReference(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if c.cfg.Access == config.AccessPublic {
		return c.publicURL(key), nil
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	ref, err := c.store.SignedURL(ctx, key, ttl)
	if err != nil {
		metrics.RecordStorageError("reference")
		return "", &models.StorageError{Op: "reference", Key: key, Err: err}
	}
	return ref, nil
}

func (c *ObjectCacheImpl) visibility() interfaces.Visibility {
	if c.cfg.Access == config.AccessPublic {
		return interfaces.VisibilityPublic
	}
	return interfaces.VisibilityPrivate
}

func (c *ObjectCacheImpl) publicURL(key string) string {
	return strings.NewReplacer(
		"{bucket}", c.cfg.Bucket,
		"{region}", c.cfg.Region,
		"{key}", key,
	).Replace(c.cfg.PublicURLTemplate)
}

func (c *ObjectCacheImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

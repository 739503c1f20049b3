package interfaces

import (
	"context"
	"time"

	"go-screenshot-cache/internal/models"
)

//go:generate mockgen -package=mock -source=object_cache.go -destination=mock/object_cache.go

// ObjectCache owns the durable mapping from cache key to captured image
type ObjectCache interface {
	// Exists returns where the key was found, or IndexLevelMiss
	Exists(ctx context.Context, key string) (models.IndexLevel, error)
	Store(ctx context.Context, image *models.CapturedImage) error
	AccessReference(ctx context.Context, key string, ttl time.Duration) (string, error)
}

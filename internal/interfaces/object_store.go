package interfaces

import (
	"context"
	"time"
)

//go:generate mockgen -package=mock -source=object_store.go -destination=mock/object_store.go

// Visibility is the access level applied to a stored object
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public-read"
)

// ObjectStore is the durable object storage capability
type ObjectStore interface {
	// HeadExists checks object metadata only. Not found is (false, nil).
	HeadExists(ctx context.Context, key string) (bool, error)
	// PutObject writes the object. Conditional stores return models.ErrAlreadyExists
	// when the key is already present.
	PutObject(ctx context.Context, key string, data []byte, contentType string, visibility Visibility) error
	// SignedURL returns a time-limited read URL for the object
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

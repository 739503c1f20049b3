package interfaces

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

//go:generate mockgen -source=keydb_client.go -destination=mock/keydb_client.go -package=mock

// KeyDbClient defines the interface for KeyDB/Redis client operations
type KeyDbClient interface {
	// Exists counts how many of the keys are present
	Exists(ctx context.Context, keys ...string) *redis.IntCmd

	// Set stores a value with expiration
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd

	// Ping tests connectivity
	Ping(ctx context.Context) *redis.StatusCmd

	// Close closes the client connection
	Close() error
}

package l2

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"go-screenshot-cache/internal/config"
	"go-screenshot-cache/internal/interfaces"
)

// Ensure RedisKeyDbClient implements interfaces.KeyDbClient
var _ interfaces.KeyDbClient = (*RedisKeyDbClient)(nil)

// RedisKeyDbClient wraps redis.Client to implement KeyDbClient interface
type RedisKeyDbClient struct {
	client *redis.Client
}

// NewRedisKeyDbClient connects to keydbURL (redis://[:password@]host[:port][/db])
// and verifies the connection with a ping.
func NewRedisKeyDbClient(cfg *config.Config, keydbURL string, logger *zap.Logger) (interfaces.KeyDbClient, error) {
	opts, err := redis.ParseURL(keydbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse KeyDB URL: %w", err)
	}

	opts.DialTimeout = cfg.GetConnectTimeout()
	opts.ReadTimeout = cfg.GetReadTimeout()
	opts.WriteTimeout = cfg.GetSendTimeout()
	opts.PoolSize = cfg.L2.Keepalive.PoolSize
	opts.IdleTimeout = cfg.GetMaxIdleTimeout()

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.GetConnectTimeout())
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to KeyDB at %s: %w", opts.Addr, err)
	}

	logger.Info("Connected to KeyDB",
		zap.String("address", opts.Addr),
		zap.Int("db", opts.DB),
		zap.Int("pool_size", opts.PoolSize))

	return &RedisKeyDbClient{client: client}, nil
}

// Exists counts how many of the keys are present
func (r *RedisKeyDbClient) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	return r.client.Exists(ctx, keys...)
}

// Set stores a value with expiration
func (r *RedisKeyDbClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	return r.client.Set(ctx, key, value, expiration)
}

// Ping tests connectivity
func (r *RedisKeyDbClient) Ping(ctx context.Context) *redis.StatusCmd {
	return r.client.Ping(ctx)
}

// Close closes the client connection
func (r *RedisKeyDbClient) Close() error {
	return r.client.Close()
}

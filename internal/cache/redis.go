package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clearlens/camwatch/pkg/api"
	"github.com/go-redis/redis/v8"
)

// Config holds the Redis connection settings for the session cache.
type Config struct {
	// URL is a redis:// connection string.
	URL string

	// TTL bounds how long a snapshot may live. Zero means no expiry; salt
	// rotation remains the authoritative revocation mechanism either way.
	TTL time.Duration

	// MaxRetries and PoolSize tune the client; zero keeps the driver default.
	MaxRetries int
	PoolSize   int
}

// RedisCache is the production Cache backed by Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(cfg Config) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	if cfg.MaxRetries > 0 {
		opts.MaxRetries = cfg.MaxRetries
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}

	// Set connection timeouts
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolTimeout = 4 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

// accountKey builds the cache key for a user's snapshot.
func accountKey(userID string) string {
	return "user:" + userID
}

func (c *RedisCache) GetAccount(ctx context.Context, userID string) (api.Account, error) {
	data, err := c.client.Get(ctx, accountKey(userID)).Result()
	if err == redis.Nil {
		return api.Account{}, ErrMiss
	} else if err != nil {
		return api.Account{}, fmt.Errorf("redis get failed: %w", err)
	}

	var acct api.Account
	if err := json.Unmarshal([]byte(data), &acct); err != nil {
		// Corrupt entry; drop it and report a miss so the caller repopulates.
		c.client.Del(ctx, accountKey(userID))
		return api.Account{}, ErrMiss
	}

	return acct, nil
}

func (c *RedisCache) SetAccount(ctx context.Context, acct api.Account) error {
	data, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}

	return c.client.Set(ctx, accountKey(acct.ID), data, c.ttl).Err()
}

func (c *RedisCache) DeleteAccount(ctx context.Context, userID string) error {
	return c.client.Del(ctx, accountKey(userID)).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flight-deals/flight-deal-radar/internal/domain"
)

// redisPingTimeout bounds the startup connectivity check.
const redisPingTimeout = 5 * time.Second

// RedisConfig holds connection settings for the Redis-backed store.
type RedisConfig struct {
	// Addr is the host:port of the Redis server.
	Addr string

	// Password is the optional server password.
	Password string

	// DB is the Redis logical database index.
	DB int

	// Key is the Redis key holding the serialized mapping.
	Key string
}

// RedisStore persists the price history as a single JSON blob under one
// Redis key. The mapping is small (one bounded window per route/date), so
// a whole-blob SET keeps the save atomic without scripting.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to Redis and verifies connectivity.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if cfg.Key == "" {
		cfg.Key = "fare-radar:price-history"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{client: client, key: cfg.Key}, nil
}

// Load reads the mapping blob. A missing key yields an empty mapping.
func (s *RedisStore) Load(ctx context.Context) (PriceHistory, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return PriceHistory{}, nil
		}
		return nil, fmt.Errorf("%w: redis get: %v", domain.ErrCacheUnavailable, err)
	}

	var h PriceHistory
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("%w: decode redis blob: %v", domain.ErrCacheUnavailable, err)
	}
	if h == nil {
		h = PriceHistory{}
	}
	return h, nil
}

// Save replaces the mapping blob. No expiration: history is kept until
// overwritten.
func (s *RedisStore) Save(ctx context.Context, h PriceHistory) error {
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)

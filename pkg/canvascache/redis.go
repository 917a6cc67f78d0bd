package canvascache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a [RedisStore].
type RedisConfig struct {
	// Addr is the redis server address (host:port).
	Addr string

	// Password is optional.
	Password string

	// DB selects the redis database number.
	DB int

	// TTL bounds entry lifetime; non-positive falls back to [DefaultTTL].
	TTL time.Duration

	// Prefix namespaces keys, e.g. per environment. Defaults to "canvas:".
	Prefix string
}

// RedisStore is a redis-backed implementation of [Store] for deployments
// where several engine instances should share one canvas metadata cache.
// Expiration is delegated to redis key TTLs, so there is nothing to purge
// on read.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore connects to redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "canvas:"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}

	return &RedisStore{client: client, ttl: cfg.TTL, prefix: cfg.Prefix}, nil
}

// Get retrieves the entry for documentID. A missing key is a plain miss
// (nil, nil); malformed payloads are treated as a miss and deleted.
func (s *RedisStore) Get(ctx context.Context, documentID string) (*Entry, error) {
	data, err := s.client.Get(ctx, s.key(documentID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", documentID, err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = s.client.Del(ctx, s.key(documentID)).Err()
		return nil, nil
	}
	return &entry, nil
}

// Set stores entry under documentID with the configured TTL.
func (s *RedisStore) Set(ctx context.Context, documentID string, entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal canvas entry: %w", err)
	}
	if err := s.client.Set(ctx, s.key(documentID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", documentID, err)
	}
	return nil
}

// Invalidate removes the entry for documentID.
func (s *RedisStore) Invalidate(ctx context.Context, documentID string) error {
	if err := s.client.Del(ctx, s.key(documentID)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", documentID, err)
	}
	return nil
}

// Close closes the underlying redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(documentID string) string {
	return s.prefix + documentID
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)

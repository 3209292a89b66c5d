package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces asset keys.
const DefaultRedisPrefix = "greeting:asset:"

// RedisStore keeps assets as Redis string values.
type RedisStore struct {
	client *redis.Client
	prefix string

	expiringPrefix string
	ttl            time.Duration
}

// NewRedisStore wraps an existing client. An empty prefix uses DefaultRedisPrefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// NewRedisStoreFromURL parses a redis:// URL and checks the connection.
func NewRedisStoreFromURL(ctx context.Context, redisURL, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewRedisStore(client, prefix), nil
}

// WithExpiry makes assets whose name starts with namePrefix expire after ttl.
// A zero ttl keeps every asset forever.
func (s *RedisStore) WithExpiry(namePrefix string, ttl time.Duration) *RedisStore {
	s.expiringPrefix = namePrefix
	s.ttl = ttl
	return s
}

func (s *RedisStore) expiry(name string) time.Duration {
	if s.ttl > 0 && strings.HasPrefix(name, s.expiringPrefix) {
		return s.ttl
	}
	return 0
}

func (s *RedisStore) key(name string) (string, error) {
	cleaned, err := CleanName(name)
	if err != nil {
		return "", err
	}
	return s.prefix + cleaned, nil
}

// Read returns the bytes of the named asset.
func (s *RedisStore) Read(ctx context.Context, name string) ([]byte, error) {
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read asset %s: %w", name, err)
	}
	return data, nil
}

// Write stores data under name, expiring it if WithExpiry matches the name.
func (s *RedisStore) Write(ctx context.Context, name string, data []byte) error {
	key, err := s.key(name)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key, data, s.expiry(strings.TrimPrefix(key, s.prefix))).Err(); err != nil {
		return fmt.Errorf("failed to write asset %s: %w", name, err)
	}
	return nil
}

// Exists reports whether the named asset is present.
func (s *RedisStore) Exists(ctx context.Context, name string) (bool, error) {
	key, err := s.key(name)
	if err != nil {
		return false, err
	}
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check asset %s: %w", name, err)
	}
	return n > 0, nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

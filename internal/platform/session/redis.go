package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of *redis.Client the store needs.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps the token in Redis so several client processes (CLI and
// gateway) share one session. The key expires with the token.
type RedisStore struct {
	client RedisClient
	key    string
	now    func() time.Time
}

var _ TokenStore = (*RedisStore)(nil)

func NewRedisStore(client RedisClient, keyPrefix, sessionName string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "hms:session:"
	}
	if sessionName == "" {
		sessionName = "default"
	}
	return &RedisStore{client: client, key: keyPrefix + sessionName, now: time.Now}
}

// NewRedisClient opens a client from a redis:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

func (s *RedisStore) Token(ctx context.Context) (string, error) {
	tok, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return tok, nil
}

func (s *RedisStore) SetToken(ctx context.Context, token string) error {
	var ttl time.Duration
	if claims, err := ParseClaims(token); err == nil && !claims.ExpiresAt.IsZero() {
		ttl = claims.ExpiresAt.Sub(s.now())
		if ttl <= 0 {
			return fmt.Errorf("token already expired")
		}
	}
	if err := s.client.Set(ctx, s.key, token, ttl).Err(); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

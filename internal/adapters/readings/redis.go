package readings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/randomtoy/temple-go/internal/domain"
)

const keyPrefix = "temple:reading:"

// RedisStore keeps readings in Redis with a per-key TTL, so several gateway
// instances can hand readings to each other.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects and pings Redis.
func NewRedisStore(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisStore{rdb: rdb, ttl: ttl}, nil
}

func (s *RedisStore) Put(ctx context.Context, r domain.Reading) error {
	if r.ID == "" {
		return fmt.Errorf("reading id is required")
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal reading: %w", err)
	}
	if err := s.rdb.Set(ctx, keyPrefix+r.ID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store reading: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (domain.Reading, error) {
	payload, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Reading{}, domain.ErrReadingNotFound
	}
	if err != nil {
		return domain.Reading{}, fmt.Errorf("load reading: %w", err)
	}

	var r domain.Reading
	if err := json.Unmarshal(payload, &r); err != nil {
		return domain.Reading{}, fmt.Errorf("decode reading: %w", err)
	}
	return r, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps client state in Redis, namespaced per profile so several
// storefront instances can share one server without colliding.
type RedisStore struct {
	rdb       *redis.Client
	namespace string
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(addr, password string, db int, namespace string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	if namespace == "" {
		namespace = "storefront"
	}
	return &RedisStore{rdb: rdb, namespace: namespace}, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func (s *RedisStore) key(k string) string {
	return fmt.Sprintf("%s:state:%s", s.namespace, k)
}

func (s *RedisStore) Get(key string) ([]byte, error) {
	v, err := s.rdb.Get(context.Background(), s.key(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return v, nil
}

func (s *RedisStore) Set(key string, value []byte) error {
	if err := s.rdb.Set(context.Background(), s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(key string) error {
	if err := s.rdb.Del(context.Background(), s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

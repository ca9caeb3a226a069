package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisKVStore struct {
	client *redis.Client
}

func NewRedisKVStore(client *redis.Client) KVStore {
	return &redisKVStore{client: client}
}

func (s *redisKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return val, err
}

func (s *redisKVStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisKVStore) ExtendTTL(ctx context.Context, key string, min, target time.Duration) error {
	remaining, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return err
	}
	// -2: key gone, -1: no TTL set; neither gets extended.
	if remaining < 0 || remaining >= min {
		return nil
	}
	return s.client.Expire(ctx, key, target).Err()
}

func (s *redisKVStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	return n > 0, err
}

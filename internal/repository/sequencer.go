package repository

import (
	"context"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

const keySequence = "wishhub:sequence"

// RedisSequencer hands out monotonically increasing sequence markers
// backed by a shared Redis counter, so markers keep increasing across
// restarts and instances.
type RedisSequencer struct {
	client *redis.Client
}

func NewRedisSequencer(client *redis.Client) *RedisSequencer {
	return &RedisSequencer{client: client}
}

func (s *RedisSequencer) Next(ctx context.Context) (uint64, error) {
	n, err := s.client.Incr(ctx, keySequence).Result()
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// MemorySequencer is a process-local sequencer for memory mode and tests.
type MemorySequencer struct {
	n atomic.Uint64
}

func NewMemorySequencer() *MemorySequencer {
	return &MemorySequencer{}
}

func (s *MemorySequencer) Next(_ context.Context) (uint64, error) {
	return s.n.Add(1), nil
}

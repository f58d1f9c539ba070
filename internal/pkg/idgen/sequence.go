package idgen

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	goredis "github.com/redis/go-redis/v9"
	"waste-service/pkg/logger"
)

const keyPrefix = "idgen:"

// RedisSequence hands out per-prefix counters with INCR, shared by every replica.
type RedisSequence struct {
	client goredis.Cmdable
}

func NewRedisSequence(client goredis.Cmdable) *RedisSequence {
	return &RedisSequence{client: client}
}

func (s *RedisSequence) Next(ctx context.Context, prefix string) (int64, error) {
	n, err := s.client.Incr(ctx, keyPrefix+prefix).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", prefix, err)
	}
	return n, nil
}

// AtomicSequence keeps counters in process memory.
type AtomicSequence struct {
	counters sync.Map
}

func NewAtomicSequence() *AtomicSequence {
	return &AtomicSequence{}
}

func (s *AtomicSequence) Next(_ context.Context, prefix string) (int64, error) {
	v, _ := s.counters.LoadOrStore(prefix, new(atomic.Int64))
	return v.(*atomic.Int64).Add(1), nil
}

// FallbackSequence uses primary and switches to fallback for a call when primary fails.
type FallbackSequence struct {
	primary  Sequence
	fallback Sequence
	log      generatorLogger
}

func NewFallbackSequence(primary, fallback Sequence, log generatorLogger) *FallbackSequence {
	return &FallbackSequence{
		primary:  primary,
		fallback: fallback,
		log:      log,
	}
}

func (s *FallbackSequence) Next(ctx context.Context, prefix string) (int64, error) {
	n, err := s.primary.Next(ctx, prefix)
	if err == nil {
		return n, nil
	}

	s.log.With(
		logger.NewField("prefix", prefix),
		logger.NewField("error", err),
	).Warn("primary id sequence unavailable, using in-process counter")

	return s.fallback.Next(ctx, prefix)
}

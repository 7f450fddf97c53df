package rediscache

import (
	"context"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/google/uuid"

	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

// RateStore counts hits per key inside a sliding window. Hit records the
// current request and returns how many requests the key has made within the
// window, including this one.
type RateStore interface {
	Hit(ctx context.Context, key string, window time.Duration) (int, error)
}

// NewRateStore shares the cache's Redis connection when available, otherwise
// counts in process memory.
func NewRateStore(cache Cache, log *logger.Logger) RateStore {
	if rc, ok := cache.(*redisCache); ok {
		return &redisRateStore{log: log.With("service", "RateStore"), rdb: rc.Client(), prefix: rc.prefix}
	}
	return NewMemoryRateStore()
}

type redisRateStore struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

// Hit keeps a sorted set of request timestamps per key, trimming entries that
// fell out of the window before counting.
func (s *redisRateStore) Hit(ctx context.Context, key string, window time.Duration) (int, error) {
	now := time.Now()
	redisKey := fmt.Sprintf("%s:rate:%s", s.prefix, key)
	cutoff := now.Add(-window).UnixNano()

	pipe := s.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", cutoff))
	pipe.ZAdd(ctx, redisKey, goredis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	count := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate store pipeline: %w", err)
	}
	return int(count.Val()), nil
}

// MemoryRateStore keeps per-key timestamp slices. Suitable for a single
// instance; the Redis store covers anything horizontal.
type MemoryRateStore struct {
	mu   sync.Mutex
	hits map[string][]time.Time
}

func NewMemoryRateStore() *MemoryRateStore {
	return &MemoryRateStore{hits: map[string][]time.Time{}}
}

func (s *MemoryRateStore) Hit(_ context.Context, key string, window time.Duration) (int, error) {
	now := time.Now()
	cutoff := now.Add(-window)

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.hits[key][:0]
	for _, ts := range s.hits[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	kept = append(kept, now)
	s.hits[key] = kept
	return len(kept), nil
}

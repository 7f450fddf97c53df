package rediscache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/clintwin/clintwin-backend/internal/platform/envutil"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

// Cache is a small byte cache with per-entry TTL. Backed by Redis when
// REDIS_ADDR is set, otherwise by an in-process map, so a single instance
// runs with zero external services.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Close() error
}

// New picks the backend from the environment. A Redis that fails its ping is
// an error rather than a silent fallback so misconfiguration surfaces early.
func New(log *logger.Logger) (Cache, error) {
	addr := envutil.String("REDIS_ADDR", "")
	if addr == "" {
		log.Info("REDIS_ADDR not set, using in-memory cache")
		return NewMemoryCache(), nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    envutil.String("REDIS_PASSWORD", ""),
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info("Redis cache connected", "addr", addr)
	return &redisCache{
		log:    log.With("service", "RedisCache"),
		rdb:    rdb,
		prefix: strings.TrimSpace(envutil.String("REDIS_KEY_PREFIX", "clintwin")),
	}, nil
}

type redisCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

func (c *redisCache) key(k string) string { return c.prefix + ":" + k }

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return raw, true
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.rdb.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		c.log.Warn("Cache set failed", "key", key, "error", err)
	}
}

func (c *redisCache) Close() error { return c.rdb.Close() }

// Client exposes the underlying Redis handle for callers that need more than
// the cache surface, such as the rate limiter. Nil for the memory backend.
func (c *redisCache) Client() *goredis.Client { return c.rdb }

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is the map-backed Cache. Expired entries are dropped lazily on
// read and wholesale when the map grows past a soft bound.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

const memoryCacheSoftLimit = 4096

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]memoryEntry{}}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= memoryCacheSoftLimit {
		now := time.Now()
		for k, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, k)
			}
		}
	}
	c.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
}

func (c *MemoryCache) Close() error { return nil }

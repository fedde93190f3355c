package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionTTL = 24 * time.Hour

// TokenCache maps access tokens to sessions. Get returns (nil, nil) for
// unknown tokens.
type TokenCache interface {
	Get(ctx context.Context, token string) (*Session, error)
	Put(ctx context.Context, token string, sess *Session) error
	Delete(ctx context.Context, token string) error
}

// RedisCache stores sessions in redis with a TTL.
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(addr string) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisCache{rdb: rdb}, nil
}

func sessionKey(token string) string {
	return "session:" + token
}

func (c *RedisCache) Get(ctx context.Context, token string) (*Session, error) {
	data, err := c.rdb.Get(ctx, sessionKey(token)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode cached session: %w", err)
	}
	return &sess, nil
}

func (c *RedisCache) Put(ctx context.Context, token string, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, sessionKey(token), data, sessionTTL).Err()
}

func (c *RedisCache) Delete(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, sessionKey(token)).Err()
}

// MemoryCache is the in-process fallback used when no redis is configured.
// Entries carry the same TTL as the redis cache and are evicted lazily on
// lookup, so stale tokens do not accumulate forever.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	sess      *Session
	expiresAt time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(_ context.Context, token string) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[token]
	if !ok {
		return nil, nil
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, token)
		return nil, nil
	}
	return e.sess, nil
}

func (c *MemoryCache) Put(_ context.Context, token string, sess *Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[token] = memoryEntry{sess: sess, expiresAt: time.Now().Add(sessionTTL)}
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, token)
	return nil
}

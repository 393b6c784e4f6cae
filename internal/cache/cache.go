// Package cache keeps rarely changing backend reads, such as the location
// hierarchy, close at hand.
//
// Lookups go to an in-process ccache first and then to redis when a remote
// address is configured. Values are stored as JSON so both tiers hold the
// same bytes.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/karlseguin/ccache/v3"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL applies when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// keyPrefix namespaces keys in a shared redis.
const keyPrefix = "leasetx:"

// Remote is the second cache tier.
type Remote interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// ErrMiss is returned by a Remote when the key is absent.
var ErrMiss = errors.New("cache miss")

// Options configures a Cache.
type Options struct {
	TTL     time.Duration
	MaxSize int64
	Remote  Remote
}

// Cache is a two-tier JSON cache.
type Cache struct {
	local  *ccache.Cache[[]byte]
	remote Remote
	ttl    time.Duration
}

// New returns a cache. A nil Remote keeps everything in process.
func New(opts Options) *Cache {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = 1000
	}
	return &Cache{
		local:  ccache.New(ccache.Configure[[]byte]().MaxSize(opts.MaxSize)),
		remote: opts.Remote,
		ttl:    opts.TTL,
	}
}

// Fetch decodes the cached value for key into out. On a miss it calls load,
// stores the result in both tiers and decodes it into out.
func (c *Cache) Fetch(ctx context.Context, key string, out any, load func(context.Context) (any, error)) error {
	if data, ok := c.get(ctx, key); ok {
		if err := json.Unmarshal(data, out); err == nil {
			return nil
		}
		slog.Warn("Discarding undecodable cache entry", "key", key)
		c.Delete(ctx, key)
	}

	v, err := load(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache value for %s: %w", key, err)
	}
	c.set(ctx, key, data)

	return json.Unmarshal(data, out)
}

// Delete drops key from both tiers.
func (c *Cache) Delete(ctx context.Context, key string) {
	c.local.Delete(key)
	if c.remote == nil {
		return
	}
	if err := c.remote.Del(ctx, keyPrefix+key); err != nil {
		slog.Warn("Remote cache delete failed", "key", key, "error", err)
	}
}

// Close stops the local cache's background worker.
func (c *Cache) Close() {
	c.local.Stop()
}

func (c *Cache) get(ctx context.Context, key string) ([]byte, bool) {
	if item := c.local.Get(key); item != nil && !item.Expired() {
		slog.Debug("Cache hit", "tier", "local", "key", key)
		return item.Value(), true
	}

	if c.remote == nil {
		return nil, false
	}

	data, err := c.remote.Get(ctx, keyPrefix+key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			slog.Warn("Remote cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	slog.Debug("Cache hit", "tier", "remote", "key", key)
	c.local.Set(key, data, c.ttl)
	return data, true
}

func (c *Cache) set(ctx context.Context, key string, data []byte) {
	c.local.Set(key, data, c.ttl)
	if c.remote == nil {
		return
	}
	if err := c.remote.Set(ctx, keyPrefix+key, data, c.ttl); err != nil {
		slog.Warn("Remote cache write failed", "key", key, "error", err)
	}
}

// RedisRemote adapts a go-redis client to Remote.
type RedisRemote struct {
	rdb *redis.Client
}

// NewRedis connects to redis at addr.
func NewRedis(addr, password string, db int) *RedisRemote {
	return &RedisRemote{rdb: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})}
}

// Ping checks connectivity.
func (r *RedisRemote) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Get implements Remote.
func (r *RedisRemote) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return data, err
}

// Set implements Remote.
func (r *RedisRemote) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, val, ttl).Err()
}

// Del implements Remote.
func (r *RedisRemote) Del(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}

// Close releases the connection pool.
func (r *RedisRemote) Close() error {
	return r.rdb.Close()
}

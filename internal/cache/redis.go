// Package cache provides Redis caching for assembled views. Every helper
// degrades to a no-op when Redis is absent, so the API stays serviceable
// without a cache.
package cache

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"photostream/internal/observability"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// errorCountingHook feeds Redis command failures into the error counter.
type errorCountingHook struct{}

func (errorCountingHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (errorCountingHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			observability.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (errorCountingHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			observability.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// InitRedis connects to Redis at addr, which may be a bare host:port or a
// redis:// URL. A failed connection leaves the cache disabled rather than
// failing startup.
func InitRedis(addr string) {
	opts, err := redisOptions(addr)
	if err != nil {
		log.Printf("Redis connection warning: invalid REDIS_URL %q: %v (continuing without cache)", addr, err)
		client = nil
		return
	}

	c := redis.NewClient(opts)
	c.AddHook(errorCountingHook{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without cache)", err)
		client = nil
		return
	}

	log.Println("Redis connected successfully")
	client = c
}

func redisOptions(addr string) (*redis.Options, error) {
	if strings.Contains(addr, "://") {
		return redis.ParseURL(addr)
	}
	return &redis.Options{Addr: addr}, nil
}

// SetClient replaces the Redis client. Used by tests.
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the current Redis client instance.
func GetClient() *redis.Client {
	return client
}

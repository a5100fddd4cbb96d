package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"nibash_backend/internal/config"
	"nibash_backend/internal/logger"
	"nibash_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter keyed by client IP and route. Redis
// holds the counters so the window survives restarts and is shared between
// replicas; when redis is unconfigured or unreachable the limiter degrades
// to a per-process in-memory window instead of failing open.
type RateLimiter struct {
	client   *redis.Client
	requests int
	window   time.Duration

	mu       sync.Mutex
	counters map[string]*memoryWindow
}

type memoryWindow struct {
	count   int
	resetAt time.Time
}

// maxMemoryCounters caps the fallback map: once it grows past this, expired
// windows are swept before a new key is admitted.
const maxMemoryCounters = 4096

func NewRateLimiter(cfg *config.Config, client *redis.Client) *RateLimiter {
	return &RateLimiter{
		client:   client,
		requests: cfg.RateLimit.Requests,
		window:   time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
		counters: make(map[string]*memoryWindow),
	}
}

// Middleware rejects requests over the window budget with a 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), c.ClientIP())

		if !rl.allow(c.Request.Context(), key) {
			c.Abort()
			apperrors.HandleError(c, apperrors.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(ctx context.Context, key string) bool {
	if rl.client != nil {
		count, err := rl.allowRedis(ctx, key)
		if err == nil {
			return count <= int64(rl.requests)
		}
		logger.Warn("rate limiter falling back to memory", "error", err)
	}
	return rl.allowMemory(key)
}

func (rl *RateLimiter) allowRedis(ctx context.Context, key string) (int64, error) {
	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (rl *RateLimiter) allowMemory(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.counters[key]
	if !ok || now.After(w.resetAt) {
		if len(rl.counters) >= maxMemoryCounters {
			rl.evictExpired(now)
		}
		rl.counters[key] = &memoryWindow{count: 1, resetAt: now.Add(rl.window)}
		return true
	}

	w.count++
	return w.count <= rl.requests
}

// evictExpired drops windows whose reset time has passed. Called with the
// mutex held.
func (rl *RateLimiter) evictExpired(now time.Time) {
	for k, w := range rl.counters {
		if now.After(w.resetAt) {
			delete(rl.counters, k)
		}
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
)

// limiterStore keeps one token bucket per caller key. Buckets idle for
// longer than idle are dropped on a later get; a bucket that has refilled
// completely behaves like a fresh one.
type limiterStore struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	every     time.Duration
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLimiterStore(perMinute int) *limiterStore {
	every := time.Minute / time.Duration(perMinute)
	return &limiterStore{
		limiters: make(map[string]*limiterEntry),
		every:    every,
		burst:    perMinute,
		idle:     every * time.Duration(perMinute),
		now:      time.Now,
	}
}

func (s *limiterStore) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.idle {
		s.sweep(now)
	}

	e, ok := s.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Every(s.every), s.burst)}
		s.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

// sweep must be called with mu held.
func (s *limiterStore) sweep(now time.Time) {
	for k, e := range s.limiters {
		if now.Sub(e.lastSeen) >= s.idle {
			delete(s.limiters, k)
		}
	}
	s.lastSweep = now
}

func (s *limiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// RateLimit allows perMinute requests per caller with an equal burst.
// Callers are keyed by user id once AuthMiddleware ran, by client IP
// otherwise. perMinute <= 0 disables limiting.
func RateLimit(perMinute int, log *zap.Logger) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	store := newLimiterStore(perMinute)

	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if s := ScopeFrom(c); s.UserID != 0 {
			key = fmt.Sprintf("user:%d", s.UserID)
		}

		if !store.get(key).Allow() {
			log.Warn("rate limit exceeded",
				zap.String("key", key),
				zap.String("path", c.FullPath()),
			)
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}

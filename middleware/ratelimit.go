package middleware

import (
	"context"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/pcease-api/utils"
)

// CounterStore counts hits per key inside a fixed window.
type CounterStore interface {
	// Hit records one request and returns the count in the current window
	// and the time left before it resets.
	Hit(ctx context.Context, key string, window time.Duration) (int, time.Duration, error)
}

// RateLimiter allows limit requests per client IP per window. Store errors
// let the request through.
func RateLimiter(store CounterStore, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, resetIn, err := store.Hit(c.Request.Context(), c.ClientIP(), window)
		if err != nil {
			utils.SafeWarn("[RateLimit] store error, allowing request: %v", err)
			c.Next()
			return
		}

		if count > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": int(math.Ceil(resetIn.Seconds())),
			})
			return
		}

		c.Next()
	}
}

// ============================================================================
// IN-MEMORY STORE
// ============================================================================

type clientRequest struct {
	count     int
	resetTime time.Time
}

type MemoryStore struct {
	mu       sync.Mutex
	requests map[string]*clientRequest
	now      func() time.Time

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewMemoryStore starts a janitor that drops expired windows every
// cleanupEvery. Close stops it.
func NewMemoryStore(cleanupEvery time.Duration) *MemoryStore {
	s := &MemoryStore{
		requests: make(map[string]*clientRequest),
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.janitor(cleanupEvery)
	return s
}

func (s *MemoryStore) janitor(every time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) Hit(ctx context.Context, key string, window time.Duration) (int, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	client, exists := s.requests[key]
	if !exists || !now.Before(client.resetTime) {
		client = &clientRequest{resetTime: now.Add(window)}
		s.requests[key] = client
	}
	client.count++
	return client.count, client.resetTime.Sub(now), nil
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, client := range s.requests {
		if !now.Before(client.resetTime) {
			delete(s.requests, key)
		}
	}
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	<-s.done
	return nil
}

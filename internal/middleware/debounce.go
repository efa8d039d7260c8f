package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// DebounceStore claims a key for a limited time
type DebounceStore interface {
	// Acquire returns true when key was free and is now held for ttl
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// MemoryStore is a DebounceStore local to one process
type MemoryStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{expires: make(map[string]time.Time), now: time.Now}
}

// Acquire implements DebounceStore
func (s *MemoryStore) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, exp := range s.expires {
		if !now.Before(exp) {
			delete(s.expires, k)
		}
	}
	if _, held := s.expires[key]; held {
		return false, nil
	}
	s.expires[key] = now.Add(ttl)
	return true, nil
}

// RedisStore is a DebounceStore shared by every instance using the same redis
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps a redis client; keys are stored under prefix
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Acquire implements DebounceStore
func (s *RedisStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, s.prefix+key, time.Now().Unix(), ttl).Result()
}

// Debounce lets one request per key through every ttl. Requests arriving
// while the key is held are answered by skipped. Store failures let the
// request through.
func Debounce(store DebounceStore, ttl time.Duration, key func(*http.Request) string, skipped http.Handler, log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			ok, err := store.Acquire(r.Context(), k, ttl)
			if err != nil {
				log.WithField("key", k).Errorf("debounce store: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				skipped.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

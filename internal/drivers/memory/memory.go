package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/vlatan/repo-sitemap/internal/cache"
)

// Service is an in-process cache,
// used when there's no Redis around.
type Service struct {
	items *gocache.Cache
}

// New creates an in-process cache purging expired items every cleanup interval
func New(defaultTTL, cleanup time.Duration) *Service {
	return &Service{items: gocache.New(defaultTTL, cleanup)}
}

// Get returns the raw value under key or cache.ErrMiss
func (s *Service) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, found := s.items.Get(key)
	if !found {
		return nil, cache.ErrMiss
	}

	b, ok := value.([]byte)
	if !ok {
		return nil, cache.ErrMiss
	}

	return b, nil
}

// Set stores the raw value under key with expiry
func (s *Service) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.items.Set(key, value, ttl)
	return nil
}

// Health reports the number of cached items
func (s *Service) Health(context.Context) map[string]any {
	return map[string]any{
		"backend":     "memory",
		"status":      "healthy",
		"total_items": s.items.ItemCount(),
	}
}

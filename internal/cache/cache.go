package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"
)

// ErrMiss is returned by Get when the key is not in the cache
var ErrMiss = errors.New("cache miss")

type Service interface {
	// Get returns the raw value stored under key or ErrMiss
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores the raw value under key for the given ttl
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Health returns a map of health status information
	Health(ctx context.Context) map[string]any
}

// Generic wrapper getting and setting from cache,
// with provided anonymous function which in implementation will
// call an underlying method.
// A nil service bypasses the cache altogether.
// Values are stored JSON encoded.
func GetItems[T any](
	ctx context.Context,
	svc Service,
	cacheKey string,
	cacheTimeout time.Duration,
	callable func() (T, error), // Function to call if cache miss
) (T, error) {

	var zero, data T

	// Check if the caller needs a cached result at all
	if svc == nil {
		return callable()
	}

	// Try to get value from cache
	raw, err := svc.Get(ctx, cacheKey)
	if err == nil {
		if err = json.Unmarshal(raw, &data); err == nil {
			return data, nil
		}
		log.Printf("Error decoding cached data for key '%s': %v", cacheKey, err)
	} else if !errors.Is(err, ErrMiss) {
		log.Printf("Error getting data from cache for key '%s': %v", cacheKey, err)
	}

	// If not in cache or error, execute the underlying function
	data, err = callable()
	if err != nil {
		return zero, err
	}

	raw, err = json.Marshal(data)
	if err != nil {
		log.Printf("Error encoding data for key '%s': %v", cacheKey, err)
		return data, nil
	}

	// Don't return an error if unable to set the cache
	if err = svc.Set(ctx, cacheKey, raw, cacheTimeout); err != nil {
		log.Printf("Error setting cache for key '%s': %v", cacheKey, err)
	}

	return data, nil
}

// Cached reports whether a fresh value exists for key.
// Any error counts as a miss.
func Cached(ctx context.Context, svc Service, key string) bool {
	if svc == nil {
		return false
	}
	_, err := svc.Get(ctx, key)
	return err == nil
}

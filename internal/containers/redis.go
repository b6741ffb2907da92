package containers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"

	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/vlatan/repo-sitemap/internal/config"
)

// Image backing the tree listing cache in tests
const listingCacheImage = "redis:8.0.3-alpine"

type listingCache struct {
	container *tcredis.RedisContainer
}

// Terminate stops and removes the container
func (lc *listingCache) Terminate(ctx context.Context) {
	if err := lc.container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate the listing cache container: %v", err)
	}
}

// SetupTestRedis starts a Redis listing cache container
// and points the Redis settings of the supplied config at it
func SetupTestRedis(ctx context.Context, cfg *config.Config) (Container, error) {

	container, err := tcredis.Run(ctx, listingCacheImage,
		tcredis.WithLogLevel(tcredis.LogLevelWarning),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start the listing cache container: %w", err)
	}

	host, port, err := redisAddr(ctx, container)
	if err != nil {
		if cErr := container.Terminate(ctx); cErr != nil {
			err = errors.Join(err, cErr)
		}
		return nil, err
	}

	cfg.CacheBackend = config.RedisCache
	cfg.RedisHost = host
	cfg.RedisPort = port

	return &listingCache{container}, nil
}

// redisAddr splits the container connection string into host and port
func redisAddr(ctx context.Context, container *tcredis.RedisContainer) (string, int, error) {

	conn, err := container.ConnectionString(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("failed to get the connection string: %w", err)
	}

	u, err := url.Parse(conn)
	if err != nil {
		return "", 0, fmt.Errorf("invalid connection string %q: %w", conn, err)
	}

	port, err := strconv.Atoi(u.Port())
	if err != nil {
		return "", 0, fmt.Errorf("invalid port in %q: %w", conn, err)
	}

	return u.Hostname(), port, nil
}

package misc

import (
	"context"

	"github.com/vlatan/repo-sitemap/internal/cache"
	"github.com/vlatan/repo-sitemap/internal/config"
	"github.com/vlatan/repo-sitemap/internal/ui"
)

// Storage reports the health of the sitemap bucket
type Storage interface {
	Health(ctx context.Context, bucket string) map[string]any
}

type Service struct {
	config  *config.Config
	cache   cache.Service // nil when caching is off
	storage Storage
	ui      ui.Service
}

func New(config *config.Config, cache cache.Service, storage Storage, ui ui.Service) *Service {
	return &Service{
		config:  config,
		cache:   cache,
		storage: storage,
		ui:      ui,
	}
}

package server

import (
	"context"
	"encoding/gob"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/vlatan/repo-sitemap/internal/cache"
	"github.com/vlatan/repo-sitemap/internal/config"
	"github.com/vlatan/repo-sitemap/internal/drivers/memory"
	"github.com/vlatan/repo-sitemap/internal/drivers/rdb"
	"github.com/vlatan/repo-sitemap/internal/generator"
	"github.com/vlatan/repo-sitemap/internal/handlers/misc"
	"github.com/vlatan/repo-sitemap/internal/handlers/sitemaps"
	"github.com/vlatan/repo-sitemap/internal/integrations/github"
	"github.com/vlatan/repo-sitemap/internal/integrations/objstore"
	"github.com/vlatan/repo-sitemap/internal/middlewares"
	"github.com/vlatan/repo-sitemap/internal/models"
	"github.com/vlatan/repo-sitemap/internal/sitemap"
	"github.com/vlatan/repo-sitemap/internal/ui"
)

type Server struct {
	sitemaps *sitemaps.Service
	misc     *misc.Service
	mw       *middlewares.Service
	cleanup  func() error

	Domain     string
	HttpServer *http.Server
}

// NewCache creates the tree listing cache picked in the config.
// The cache is nil when caching is off.
func NewCache(cfg *config.Config) (cache.Service, func() error, error) {

	noop := func() error { return nil }

	switch cfg.CacheBackend {
	case config.RedisCache:
		r, err := rdb.New(cfg)
		if err != nil {
			return nil, noop, err
		}
		return r, r.Close, nil
	case config.MemoryCache:
		return memory.New(cfg.CacheTimeout, 2*cfg.CacheTimeout), noop, nil
	default:
		return nil, noop, nil
	}
}

// NewGenerator wires the whole sitemap pipeline
func NewGenerator(ctx context.Context, cfg *config.Config, c cache.Service, store objstore.Service, logger *log.Logger) *generator.Service {
	lister := github.New(ctx, cfg, c)
	publisher := sitemap.NewPublisher(store, cfg)
	return generator.New(lister, publisher, logger)
}

// Create new HTTP server
func NewServer() *Server {

	// Register types with gob to be able to use them in sessions
	gob.Register(&models.FlashMessage{})

	// Init config
	cfg := config.New()

	// Create the listing cache
	c, closeCache, err := NewCache(cfg)
	if err != nil {
		log.Fatalf("couldn't create the %s cache; %v", cfg.CacheBackend, err)
	}

	// Create the S3 service
	ctx := context.Background()
	store := objstore.New(ctx, cfg)

	// Create the flash session store
	sessionStore := sessions.NewCookieStore(cfg.FlashKey.Bytes)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = !cfg.Debug
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	// Create user interface service
	ui := ui.New(sessionStore, cfg)

	// Trail lines go to the server log in debug mode only
	var logger *log.Logger
	if cfg.Debug {
		logger = log.Default()
	}

	return &Server{
		sitemaps: sitemaps.New(NewGenerator(ctx, cfg, c, store, logger), ui, cfg),
		misc:     misc.New(cfg, c, store, ui),
		mw:       middlewares.New(ui, cfg),
		cleanup:  closeCache,

		Domain: cfg.Domain,
		HttpServer: &http.Server{
			Addr:        cfg.Addr(),
			IdleTimeout: time.Minute,
			ReadTimeout: 10 * time.Second,
			// Listing a large repository and uploading the sitemap takes a while
			WriteTimeout: cfg.GithubTimeout*time.Duration(max(len(cfg.GithubFallbackBranches), 1)) + cfg.S3WaitTimeout + 30*time.Second,
		},
	}
}

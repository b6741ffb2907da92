package sitemaps

import (
	"context"

	"github.com/vlatan/repo-sitemap/internal/config"
	"github.com/vlatan/repo-sitemap/internal/models"
	"github.com/vlatan/repo-sitemap/internal/ui"
)

// Generator runs the sitemap pipeline for a repository URL
type Generator interface {
	Generate(ctx context.Context, rawURL string) (*models.Report, error)
}

type Service struct {
	generator Generator
	ui        ui.Service
	config    *config.Config
}

func New(generator Generator, ui ui.Service, config *config.Config) *Service {
	return &Service{
		generator: generator,
		ui:        ui,
		config:    config,
	}
}

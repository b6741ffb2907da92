// Package generator runs the whole pipeline for a single repository URL:
// parse, list the files, publish the sitemap and prepare the table rows.
package generator

import (
	"context"
	"errors"
	"log"

	"github.com/vlatan/repo-sitemap/internal/integrations/github"
	"github.com/vlatan/repo-sitemap/internal/models"
	"github.com/vlatan/repo-sitemap/internal/sitemap"
	"github.com/vlatan/repo-sitemap/internal/trail"
)

type Lister interface {
	ListFiles(ctx context.Context, ref *models.RepoRef, tr *trail.Trail) ([]string, error)
}

type Publisher interface {
	Publish(
		ctx context.Context,
		ref *models.RepoRef,
		urls []string,
		tr *trail.Trail,
	) (*models.PublishResult, error)
}

type Service struct {
	lister    Lister
	publisher Publisher
	logger    *log.Logger
}

// New creates a generator.
// Every trail line is mirrored to logger when not nil.
func New(lister Lister, publisher Publisher, logger *log.Logger) *Service {
	return &Service{
		lister:    lister,
		publisher: publisher,
		logger:    logger,
	}
}

// Generate builds and publishes the sitemap of the repository at rawURL.
// The report is never nil, its logs are filled in on failure too.
func (s *Service) Generate(ctx context.Context, rawURL string) (*models.Report, error) {

	tr := trail.New(s.logger)
	report := &models.Report{}

	err := s.generate(ctx, rawURL, tr, report)
	if err != nil {
		var pe *models.PipelineError
		if !errors.As(err, &pe) {
			err = models.NewError(
				models.UnexpectedFailure, err,
				"An unexpected error occurred: %v", err,
			)
		}
		tr.Addf("Error: %s", models.DisplayMessage(err))
	}

	report.Logs = tr.Lines()
	return report, err
}

func (s *Service) generate(ctx context.Context, rawURL string, tr *trail.Trail, report *models.Report) error {

	ref, err := github.ParseRepoURL(rawURL, tr)
	if err != nil {
		return err
	}

	report.Ref = ref
	tr.Addf("Found repository: %s", ref)

	urls, err := s.lister.ListFiles(ctx, ref, tr)
	if err != nil {
		return err
	}

	result, err := s.publisher.Publish(ctx, ref, urls, tr)
	if err != nil {
		return err
	}

	report.Result = result

	// Rows are only for display
	rows, err := sitemap.ParseDocument(result.DocumentText)
	if err != nil {
		tr.Addf("Could not prepare the sitemap table: %v", err)
		return nil
	}

	report.Rows = rows
	return nil
}

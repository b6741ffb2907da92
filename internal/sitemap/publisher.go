package sitemap

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/vlatan/repo-sitemap/internal/config"
	"github.com/vlatan/repo-sitemap/internal/models"
	"github.com/vlatan/repo-sitemap/internal/trail"
)

const contentType = "application/xml"

// Store is the part of the object storage the publisher needs
type Store interface {
	PutObject(
		ctx context.Context,
		bucket string,
		key string,
		body io.Reader,
		contentType string,
		metadata map[string]string,
	) error
	PublicURL(bucket, key string) (string, error)
}

type Publisher struct {
	store   Store
	bucket  string
	maxURLs int
}

func NewPublisher(store Store, cfg *config.Config) *Publisher {
	return &Publisher{
		store:   store,
		bucket:  cfg.S3Bucket,
		maxURLs: cfg.SitemapMaxURLs,
	}
}

// Publish builds the sitemap of the URLs and uploads it under a fresh key.
// The ref is optional and only used to tag the object.
func (p *Publisher) Publish(
	ctx context.Context,
	ref *models.RepoRef,
	urls []string,
	tr *trail.Trail,
) (*models.PublishResult, error) {

	if len(urls) == 0 {
		tr.Addf("No files were found in the repository. Sitemap Generation Stopped....")
		return nil, models.NewError(
			models.NoURLsToPublish, nil,
			"No files were found in the repository.",
		)
	}

	if p.maxURLs > 0 && len(urls) > p.maxURLs {
		tr.Addf(
			"The repository has %d files, only the first %d fit in a sitemap",
			len(urls), p.maxURLs,
		)
		urls = urls[:p.maxURLs]
	}

	for _, u := range urls {
		tr.Addf("Adding raw URL: %s", u)
	}
	tr.Addf("%d GitHub files were found and added. Generating sitemap ...", len(urls))

	doc, err := Build(urls)
	if err != nil {
		return nil, models.NewError(
			models.UnexpectedFailure, err,
			"Could not build the sitemap.",
		)
	}

	key := uuid.NewString() + ".xml"

	// Nothing is uploaded without a public URL
	publicURL, err := p.store.PublicURL(p.bucket, key)
	if err != nil {
		return nil, models.NewError(
			models.StorageUploadFailed, err,
			"The public URL of the sitemap is unknown.",
		)
	}

	var metadata map[string]string
	if ref != nil {
		metadata = map[string]string{"repository": slug.Make(ref.FullName())}
	}

	err = p.store.PutObject(ctx, p.bucket, key, strings.NewReader(doc), contentType, metadata)
	if err != nil {
		tr.Addf("Upload of %s failed: %v", key, err)
		return nil, models.NewError(
			models.StorageUploadFailed, err,
			"Could not upload the sitemap.",
		)
	}

	tr.Addf("Successfully generated Sitemap: %s", publicURL)

	return &models.PublishResult{
		DocumentText: doc,
		StorageKey:   key,
		PublicURL:    publicURL,
	}, nil
}

package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/vlatan/repo-sitemap/internal/models"
	"golang.org/x/net/html/charset"
)

// Build serializes the URLs into a sitemap document, in input order.
// No lastmod is emitted.
func Build(urls []string) (string, error) {

	set := models.URLSet{
		Xmlns: models.SitemapNamespace,
		URLs:  make([]models.URL, 0, len(urls)),
	}

	for _, u := range urls {
		set.URLs = append(set.URLs, models.URL{Loc: u})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", fmt.Errorf("could not encode the sitemap: %w", err)
	}

	return xml.Header + string(out) + "\n", nil
}

// ParseDocument turns a sitemap document into table rows,
// one per <url> element in document order.
func ParseDocument(doc string) ([]*models.SitemapItem, error) {

	dec := xml.NewDecoder(bytes.NewReader([]byte(doc)))
	dec.CharsetReader = charset.NewReaderLabel

	var set models.URLSet
	if err := dec.Decode(&set); err != nil {
		return nil, fmt.Errorf("could not decode the sitemap: %w", err)
	}

	items := make([]*models.SitemapItem, 0, len(set.URLs))
	for _, u := range set.URLs {
		items = append(items, &models.SitemapItem{
			Location:     u.Loc,
			LastModified: u.LastMod,
		})
	}

	return items, nil
}

package sitemaps

import (
	"net/http"

	"github.com/vlatan/repo-sitemap/internal/models"
)

// Request body of the JSON API
type sitemapRequest struct {
	URL string `json:"url"`
}

// Error body of the JSON API
type sitemapError struct {
	Error   string           `json:"error"`
	Kind    models.ErrorKind `json:"kind"`
	Message string           `json:"message"`
	Logs    []string         `json:"logs"`
}

// Map the error kind to the HTTP status of the JSON API
func statusCode(kind models.ErrorKind) int {
	switch kind {
	case models.InvalidRepositoryURL:
		return http.StatusBadRequest
	case models.RepositoryNotFound:
		return http.StatusNotFound
	case models.EmptyRepository, models.NoURLsToPublish:
		return http.StatusUnprocessableEntity
	case models.RepositoryUnreachable, models.StorageUploadFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

var emptyURL = models.FlashMessage{
	Message:  "Please enter a GitHub repository URL",
	Category: "error",
}

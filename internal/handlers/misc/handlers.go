package misc

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/vlatan/repo-sitemap/internal/utils"
	"github.com/vlatan/repo-sitemap/web"
)

// Cache, storage and server health status
func (s *Service) HealthHandler(w http.ResponseWriter, r *http.Request) {

	cacheStatus := map[string]any{"backend": "none"}
	if s.cache != nil {
		cacheStatus = s.cache.Health(r.Context())
	}

	data := map[string]any{
		"cache_status":   cacheStatus,
		"storage_status": s.storage.Health(r.Context(), s.config.S3Bucket),
		"server_status":  getServerStats(),
	}

	s.ui.WriteJSON(w, r, http.StatusOK, data)
}

// Simple health check
func (s *Service) HealthcheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Robots-Tag", "noindex")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Printf("Failed to write response on '%s'; %v", r.URL.Path, err)
	}
}

// Handle static files
func (s *Service) StaticHandler(w http.ResponseWriter, r *http.Request) {

	// Validate the path
	if err := utils.ValidateFilePath(r.URL.Path); err != nil {
		http.NotFound(w, r)
		return
	}

	// Set long max age cache conttrol and vary cache based on compression
	w.Header().Set("Cache-Control", "max-age=31536000")
	w.Header().Set("Vary", "Accept-Encoding")

	// Get the file information
	fileInfo, ok := s.ui.StaticFiles()[r.URL.Path]

	// Set Etag if etag available
	if ok && fileInfo.Etag != "" {
		w.Header().Set("Etag", fmt.Sprintf(`"%s"`, fileInfo.Etag))
	}

	// Return 304 not modified if etag match
	noneMatch := strings.Trim(r.Header.Get("If-None-Match"), "\"")
	if ok && fileInfo.Etag != "" && noneMatch == fileInfo.Etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	// Set content type header if media type available
	if ok && fileInfo.MediaType != "" {
		w.Header().Set("Content-Type", fileInfo.MediaType)
	}

	// Check if the client accepts gzip
	if ok && len(fileInfo.Compressed) > 0 &&
		strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
		w.Header().Set("Content-Encoding", "gzip")
		http.ServeContent(w, r, r.URL.Path, fileInfo.ModTime, bytes.NewReader(fileInfo.Compressed))
		return
	}

	// Serve the file content if we have bytes stored
	if ok && len(fileInfo.Bytes) > 0 {
		http.ServeContent(w, r, r.URL.Path, fileInfo.ModTime, bytes.NewReader(fileInfo.Bytes))
		return
	}

	// Serve from the embedded FS
	http.ServeFileFS(w, r, web.Files, strings.TrimPrefix(r.URL.Path, "/"))
}

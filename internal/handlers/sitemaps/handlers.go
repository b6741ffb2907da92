package sitemaps

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/vlatan/repo-sitemap/internal/models"
)

const maxBodySize = 1 << 20

// Serve the form
func (s *Service) HomeHandler(w http.ResponseWriter, r *http.Request) {
	data := models.GetDataFromContext(r)
	s.ui.RenderHTML(w, r, "home.html", data)
}

// Generate the sitemap from the submitted form
// and render the result or the error along with the log
func (s *Service) GenerateHandler(w http.ResponseWriter, r *http.Request) {

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := r.ParseForm(); err != nil {
		s.ui.HTMLError(w, r, http.StatusBadRequest, models.GetDataFromContext(r))
		return
	}

	repoURL := strings.TrimSpace(r.PostForm.Get("repo_url"))
	if repoURL == "" {
		s.ui.StoreFlashMessage(w, r, &emptyURL)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	report, err := s.generator.Generate(r.Context(), repoURL)

	data := models.GetDataFromContext(r)
	data.RepoURL = repoURL
	data.Report = report

	if err != nil {
		log.Printf("Sitemap of '%s' failed: %v", repoURL, err)
		data.ErrorMessage = models.DisplayMessage(err)
	}

	s.ui.RenderHTML(w, r, "home.html", data)
}

// Generate the sitemap and respond with the report as JSON
func (s *Service) APIHandler(w http.ResponseWriter, r *http.Request) {

	var req sitemapRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.ui.JSONError(w, r, http.StatusRequestEntityTooLarge)
			return
		}
		s.ui.JSONError(w, r, http.StatusBadRequest)
		return
	}

	report, err := s.generator.Generate(r.Context(), req.URL)
	if err != nil {
		kind := models.KindOf(err)
		status := statusCode(kind)
		log.Printf("Sitemap of '%s' failed with %d: %v", req.URL, status, err)

		resp := sitemapError{
			Error:   http.StatusText(status),
			Kind:    kind,
			Message: models.DisplayMessage(err),
		}
		if report != nil {
			resp.Logs = report.Logs
		}

		s.ui.WriteJSON(w, r, status, resp)
		return
	}

	s.ui.WriteJSON(w, r, http.StatusCreated, report)
}

// Serve one of the markdown pages
func (s *Service) PageHandler(w http.ResponseWriter, r *http.Request) {

	data := models.GetDataFromContext(r)

	name := strings.Trim(r.URL.Path, "/")
	content, ok := s.ui.Page(name)
	if !ok {
		s.ui.HTMLError(w, r, http.StatusNotFound, data)
		return
	}

	switch name {
	case "faq":
		data.Title = "Frequently Asked Questions"
	default:
		data.Title = strings.ToUpper(name[:1]) + name[1:]
	}

	data.Content = content
	s.ui.RenderHTML(w, r, "page.html", data)
}

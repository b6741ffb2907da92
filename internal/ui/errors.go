package ui

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/vlatan/repo-sitemap/internal/models"
	"github.com/vlatan/repo-sitemap/internal/utils"
)

// ExecuteErrorTemplate executes error.html template
// A wrapper around tmpl.ExecuteTemplate
func (s *service) ExecuteErrorTemplate(w io.Writer, status int, data *models.TemplateData) error {

	// Check for the error template
	tmpl, exists := s.templates["error.html"]
	if !exists {
		return errors.New("error.html template does not exist")
	}

	// Craft template data
	data.Title = strconv.Itoa(status)
	data.HTMLErrorData = &models.HTMLErrorData{
		Title: strconv.Itoa(status),
	}

	// Provide few errors that should be served via template
	switch status {
	case http.StatusBadRequest:
		data.HTMLErrorData.Heading = fmt.Sprintf("Bad request (%d)", http.StatusBadRequest)
		data.HTMLErrorData.Text = "Your request was probably malformed."
	case http.StatusForbidden:
		data.HTMLErrorData.Heading = fmt.Sprintf("Access forbidden (%d)", http.StatusForbidden)
		data.HTMLErrorData.Text = "Your session has probably expired. Please reload the page and try again."
	case http.StatusNotFound:
		data.HTMLErrorData.Heading = fmt.Sprintf("Page not found (%d)", http.StatusNotFound)
		data.HTMLErrorData.Text = "That page does not exist. Please try a different location."
	case http.StatusMethodNotAllowed:
		data.HTMLErrorData.Heading = fmt.Sprintf("Method not allowed (%d)", http.StatusMethodNotAllowed)
		data.HTMLErrorData.Text = "Use the appropriate method and try again."
	case http.StatusInternalServerError:
		data.HTMLErrorData.Heading = fmt.Sprintf("Something went wrong (%d)", http.StatusInternalServerError)
		data.HTMLErrorData.Text = "Sorry about that. We're working on fixing this."
	default:
		return fmt.Errorf("no error data for %d error template", status)
	}

	return tmpl.ExecuteTemplate(w, "error.html", data)
}

// HTMLError writes the rich error page,
// falling back to plain text if the template fails.
func (s *service) HTMLError(w http.ResponseWriter, r *http.Request, statusCode int, data *models.TemplateData) {

	if data == nil {
		data = s.NewData(w, r)
	}

	var buf bytes.Buffer
	if err := s.ExecuteErrorTemplate(&buf, statusCode, data); err != nil {
		log.Printf("Failed to execute the error template on URI '%s': %v", r.RequestURI, err)
		utils.HttpError(w, statusCode)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := buf.WriteTo(w); err != nil {
		// Too late for recovery here, just log the error
		log.Printf("Failed to write the error page on URI '%s': %v", r.RequestURI, err)
	}
}

// Write JSON error to response
func (s *service) JSONError(w http.ResponseWriter, r *http.Request, statusCode int) {
	s.WriteJSON(w, r, statusCode, models.JSONErrorData{
		Error: http.StatusText(statusCode),
		Code:  statusCode,
	})
}

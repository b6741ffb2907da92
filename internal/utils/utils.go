package utils

import (
	"fmt"
	"net/http"
	"path"
	"strings"
)

// Validates a path
func ValidateFilePath(p string) error {
	if p == "" {
		return fmt.Errorf("no path supplied")
	}

	cleaned := path.Clean(p)
	if cleaned != p {
		return fmt.Errorf("invalid path '%s'", p)
	}

	return nil
}

// Pluralize a word
func Plural(num int, word string) string {
	if num == 1 {
		return word
	}
	return word + "s"
}

// Check if this is a static file
func IsStatic(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/static/")
}

// Check if this is a JSON API call
func IsAPI(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// Check if a route needs to set a cookie
func NeedsCookie(w http.ResponseWriter, r *http.Request) bool {

	if IsStatic(r) || IsAPI(r) {
		return false
	}

	if strings.HasPrefix(r.URL.Path, "/health") {
		return false
	}

	return true
}

// HttpError provides shorter handling of http error
func HttpError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

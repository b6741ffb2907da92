package models

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetDataFromContext(t *testing.T) {

	data := &TemplateData{Title: "Test"}
	req := httptest.NewRequest("GET", "/", nil)
	ctx := context.WithValue(req.Context(), DataContextKey, data)
	dataReq := req.WithContext(ctx)

	tests := []struct {
		name     string
		request  *http.Request
		expected *TemplateData
	}{
		{"no data in context", req, nil},
		{"data in context", dataReq, data},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetDataFromContext(tt.request); got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAddVersion(t *testing.T) {

	data := &TemplateData{
		StaticFiles: StaticFiles{"/static/css/style.css": {Etag: "abc"}},
	}

	tests := []struct {
		name, path, expected string
	}{
		{"known file", "/static/css/style.css", "/static/css/style.css?v=abc"},
		{"unknown file", "/static/js/app.js", "/static/js/app.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := data.AddVersion(tt.path); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRepoRefString(t *testing.T) {

	tests := []struct {
		name     string
		ref      RepoRef
		expected string
	}{
		{"no branch", RepoRef{Owner: "foo", Repo: "bar"}, "foo/bar (branch: default)"},
		{"branch", RepoRef{Owner: "foo", Repo: "bar", Branch: "feature/x"}, "foo/bar (branch: feature/x)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

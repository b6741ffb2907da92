package sitemaps

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/vlatan/repo-sitemap/internal/config"
	"github.com/vlatan/repo-sitemap/internal/models"
	"github.com/vlatan/repo-sitemap/internal/ui"
)

var testConfig = &config.Config{
	AppName:          "Sitemap Test",
	FlashSessionName: "_test_flash",
}

var testUI ui.Service

func TestMain(m *testing.M) {
	gob.Register(&models.FlashMessage{})
	testUI = ui.New(sessions.NewCookieStore(securecookie.GenerateRandomKey(32)), testConfig)
	os.Exit(m.Run())
}

type fakeGenerator struct {
	report *models.Report
	err    error
	got    []string
}

func (f *fakeGenerator) Generate(ctx context.Context, rawURL string) (*models.Report, error) {
	f.got = append(f.got, rawURL)
	return f.report, f.err
}

var okReport = &models.Report{
	Ref: &models.RepoRef{Owner: "octo", Repo: "hello"},
	Result: &models.PublishResult{
		DocumentText: "<urlset/>",
		StorageKey:   "key.xml",
		PublicURL:    "https://cdn.example.com/acme/key.xml",
	},
	Rows: []*models.SitemapItem{{Location: "https://raw.example.com/octo/hello/main/a.go"}},
	Logs: []string{"Found 1 files in branch main"},
}

// Attach the template data the way the middleware does
func withData(w http.ResponseWriter, r *http.Request) *http.Request {
	data := testUI.NewData(w, r)
	return r.WithContext(context.WithValue(r.Context(), models.DataContextKey, data))
}

func postForm(w http.ResponseWriter, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/sitemap", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return withData(w, r)
}

func TestHomeHandler(t *testing.T) {

	s := New(&fakeGenerator{}, testUI, testConfig)
	w := httptest.NewRecorder()
	r := withData(w, httptest.NewRequest(http.MethodGet, "/", nil))

	s.HomeHandler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}

	if !strings.Contains(w.Body.String(), "repo_url") {
		t.Error("form not rendered")
	}
}

func TestGenerateHandler(t *testing.T) {

	tests := []struct {
		name      string
		form      url.Values
		generator *fakeGenerator
		wantCode  int
		want      []string
		wantCalls int
	}{
		{
			name:      "success",
			form:      url.Values{"repo_url": {" https://github.com/octo/hello "}},
			generator: &fakeGenerator{report: okReport},
			wantCode:  http.StatusOK,
			want: []string{
				"https://cdn.example.com/acme/key.xml",
				"https://raw.example.com/octo/hello/main/a.go",
			},
			wantCalls: 1,
		},
		{
			name: "failure",
			form: url.Values{"repo_url": {"https://github.com/octo/missing"}},
			generator: &fakeGenerator{
				report: &models.Report{Logs: []string{"Branch main not accessible"}},
				err: models.NewError(
					models.RepositoryNotFound, nil, "Could not access repository content.",
				),
			},
			wantCode:  http.StatusOK,
			want:      []string{"Could not access repository content.", "Branch main not accessible"},
			wantCalls: 1,
		},
		{
			name:      "empty URL",
			form:      url.Values{"repo_url": {"   "}},
			generator: &fakeGenerator{},
			wantCode:  http.StatusSeeOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			s := New(tt.generator, testUI, testConfig)
			w := httptest.NewRecorder()
			s.GenerateHandler(w, postForm(w, tt.form))

			if w.Code != tt.wantCode {
				t.Fatalf("got status %d, want %d", w.Code, tt.wantCode)
			}

			body := w.Body.String()
			for _, want := range tt.want {
				if !strings.Contains(body, want) {
					t.Errorf("body is missing %q", want)
				}
			}

			if len(tt.generator.got) != tt.wantCalls {
				t.Errorf("got %d generator calls, want %d", len(tt.generator.got), tt.wantCalls)
			}
		})
	}
}

func TestGenerateHandlerFlash(t *testing.T) {

	s := New(&fakeGenerator{}, testUI, testConfig)
	w := httptest.NewRecorder()
	s.GenerateHandler(w, postForm(w, url.Values{"repo_url": {""}}))

	if got := w.Header().Get("Location"); got != "/" {
		t.Fatalf("got redirect to %q, want /", got)
	}

	// Follow the redirect with the flash cookie
	next := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	s.HomeHandler(next, withData(next, r))

	if !strings.Contains(next.Body.String(), emptyURL.Message) {
		t.Error("flash message not rendered")
	}
}

func TestAPIHandler(t *testing.T) {

	tests := []struct {
		name      string
		body      string
		generator *fakeGenerator
		wantCode  int
		wantKind  models.ErrorKind
	}{
		{
			name:      "success",
			body:      `{"url":"https://github.com/octo/hello"}`,
			generator: &fakeGenerator{report: okReport},
			wantCode:  http.StatusCreated,
		},
		{
			name:      "malformed body",
			body:      `{"url":`,
			generator: &fakeGenerator{},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "unknown field",
			body:      `{"repo":"x"}`,
			generator: &fakeGenerator{},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "invalid URL",
			body: `{"url":"nope"}`,
			generator: &fakeGenerator{
				report: &models.Report{Logs: []string{"Error: Invalid GitHub repository URL provided."}},
				err:    models.NewError(models.InvalidRepositoryURL, nil, "Invalid GitHub repository URL provided."),
			},
			wantCode: http.StatusBadRequest,
			wantKind: models.InvalidRepositoryURL,
		},
		{
			name: "empty repository",
			body: `{"url":"https://github.com/octo/empty"}`,
			generator: &fakeGenerator{
				report: &models.Report{},
				err:    models.NewError(models.EmptyRepository, nil, "No files were found in the repository."),
			},
			wantCode: http.StatusUnprocessableEntity,
			wantKind: models.EmptyRepository,
		},
		{
			name: "upload failed",
			body: `{"url":"https://github.com/octo/hello"}`,
			generator: &fakeGenerator{
				report: &models.Report{},
				err:    models.NewError(models.StorageUploadFailed, errors.New("denied"), "Could not upload the sitemap."),
			},
			wantCode: http.StatusBadGateway,
			wantKind: models.StorageUploadFailed,
		},
		{
			name: "unexpected",
			body: `{"url":"https://github.com/octo/hello"}`,
			generator: &fakeGenerator{
				report: &models.Report{},
				err:    errors.New("boom"),
			},
			wantCode: http.StatusInternalServerError,
			wantKind: models.UnexpectedFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			s := New(tt.generator, testUI, testConfig)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/sitemaps", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", "application/json")

			s.APIHandler(w, r)

			if w.Code != tt.wantCode {
				t.Fatalf("got status %d, want %d", w.Code, tt.wantCode)
			}

			if tt.wantCode == http.StatusCreated {
				var got models.Report
				if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
					t.Fatalf("got error = %v, want no error", err)
				}
				if diff := cmp.Diff(okReport, &got); diff != "" {
					t.Errorf("report mismatch (-want +got):\n%s", diff)
				}
				return
			}

			if tt.wantKind == "" {
				return
			}

			var got sitemapError
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("got error = %v, want no error", err)
			}

			if got.Kind != tt.wantKind {
				t.Errorf("got kind %q, want %q", got.Kind, tt.wantKind)
			}

			if got.Message == "" {
				t.Error("got an empty message")
			}
		})
	}
}

func TestPageHandler(t *testing.T) {

	tests := []struct {
		path     string
		wantCode int
		want     string
	}{
		{"/faq", http.StatusOK, "Frequently Asked Questions"},
		{"/instructions", http.StatusOK, "Instructions"},
		{"/missing", http.StatusNotFound, "Page not found"},
	}

	s := New(&fakeGenerator{}, testUI, testConfig)

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {

			w := httptest.NewRecorder()
			s.PageHandler(w, withData(w, httptest.NewRequest(http.MethodGet, tt.path, nil)))

			if w.Code != tt.wantCode {
				t.Fatalf("got status %d, want %d", w.Code, tt.wantCode)
			}

			if !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("body is missing %q", tt.want)
			}
		})
	}
}

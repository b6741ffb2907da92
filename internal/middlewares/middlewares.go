package middlewares

import (
	"context"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/csrf"
	"github.com/klauspost/compress/gzhttp"
	"github.com/vlatan/repo-sitemap/internal/config"
	"github.com/vlatan/repo-sitemap/internal/models"
	"github.com/vlatan/repo-sitemap/internal/ui"
	"github.com/vlatan/repo-sitemap/internal/utils"
)

type Service struct {
	ui     ui.Service
	config *config.Config
}

func New(ui ui.Service, config *config.Config) *Service {
	return &Service{
		ui:     ui,
		config: config,
	}
}

// Put the default template data in context
func (s *Service) LoadData(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// JSON and static responses don't need template data
		if utils.IsAPI(r) || utils.IsStatic(r) {
			next.ServeHTTP(w, r)
			return
		}

		data := s.ui.NewData(w, r)
		ctx := context.WithValue(r.Context(), models.DataContextKey, data)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Close the body if POST request
func (s *Service) CloseBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Close request body for POST methods to prevent resource leaks
		if r.Method == http.MethodPost {
			defer r.Body.Close()
		}
		next.ServeHTTP(w, r)
	})
}

// Do not crash the app on panic, serve 500 error to the client
func (s *Service) RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// If in production recover panic
		if !s.config.Debug {
			defer func() {
				if err := recover(); err != nil {
					// Log the panic with stack trace
					log.Printf("Panic in %s %s: %#v\n%s", r.Method, r.URL.Path, err, debug.Stack())

					// Return 500 to client
					http.Error(w, "Something went wrong", http.StatusInternalServerError)
				}
			}()
		}

		next.ServeHTTP(w, r)
	})
}

// Log the method, path, status and duration of every request
func (s *Service) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()
		recorder := NewResponseRecorder(w)
		defer recorder.flush()

		next.ServeHTTP(recorder, r)

		// Static files are too noisy
		if utils.IsStatic(r) {
			return
		}

		log.Printf(
			"%s %s %d %s",
			r.Method, r.URL.Path, recorder.status, time.Since(start).Round(time.Millisecond),
		)
	})
}

// Add security headers to request
func (s *Service) AddHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")

		// Don't leak the repository URLs to other sites
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// HSTS (HTTPS only)
		if !s.config.Debug {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

// Create CSRF middlware with added plain text option for local development
func (s *Service) CSRF(next http.Handler) http.Handler {

	// Create the csrf middleware as per the gorilla/csrf documentation
	csrfMiddleware := csrf.Protect(
		s.config.CsrfKey.Bytes,
		csrf.CookieName(s.config.CsrfSessionName),
		csrf.FieldName("csrf_token"),
		csrf.Secure(!s.config.Debug),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("CSRF validation failed on '%s': %v", r.URL.Path, csrf.FailureReason(r))
			s.ui.HTMLError(w, r, http.StatusForbidden, nil)
		})),
	)

	protected := csrfMiddleware(next)

	// Return the handler function
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// The JSON API and static files don't use cookies
		if !utils.NeedsCookie(w, r) {
			next.ServeHTTP(w, r)
			return
		}

		// If debug set plain text (HTTP) schema
		if s.config.Debug {
			r = csrf.PlaintextHTTPRequest(r)
		}

		protected.ServeHTTP(w, r)
	})
}

// Compress provides gzip compression to non-static pages
func (s *Service) Compress(next http.Handler) http.Handler {

	// Create the gzip handler
	gzipHandler := gzhttp.GzipHandler(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check if request serves static files
		// Those are compressed on startup
		if utils.IsStatic(r) {
			next.ServeHTTP(w, r)
			return
		}

		gzipHandler.ServeHTTP(w, r)
	})
}

// Chain middlewares that apply to all handlers
func (s *Service) ApplyToAll(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		// Apply middlewares in reverse order
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

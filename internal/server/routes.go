package server

import (
	"net/http"
)

// RegisterRoutes registers routes and
// assigns custom handler to the HTTP server
func (s *Server) RegisterRoutes() *Server {
	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", s.sitemaps.HomeHandler)
	mux.HandleFunc("GET /instructions", s.sitemaps.PageHandler)
	mux.HandleFunc("GET /faq", s.sitemaps.PageHandler)

	// Sitemaps
	mux.HandleFunc("POST /sitemap", s.sitemaps.GenerateHandler)
	mux.HandleFunc("POST /api/sitemaps", s.sitemaps.APIHandler)

	// The rest
	mux.HandleFunc("GET /static/", s.misc.StaticHandler)
	mux.HandleFunc("GET /health", s.misc.HealthHandler)
	mux.HandleFunc("GET /healthcheck", s.misc.HealthcheckHandler)

	// Chain middlewares that apply to all requests.
	// The order is important.
	// Use this custom handler as HTTP server handler
	s.HttpServer.Handler = s.mw.ApplyToAll(
		s.mw.RecoverPanic,
		s.mw.CloseBody,
		s.mw.Logging,
		s.mw.AddHeaders,
		s.mw.CSRF,
		s.mw.LoadData,
		s.mw.Compress,
	)(mux)

	return s
}

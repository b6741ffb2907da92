package server

import (
	"errors"
	"log"
	"net/http"
)

// Run runs the app by making the HTTP server listen and serve
func (s *Server) Run() error {

	// Create a notification channel to receive a signal
	// from when a shutdown is complete
	done := make(chan struct{})

	// Listen for SIGINT SIGTERM in a separate goroutine
	// Gracefully shut down the server there if needed.
	go s.Shutdown(done)

	log.Printf("Server running on: http://%s", s.HttpServer.Addr)
	if s.Domain != "" {
		log.Printf("Website available at: https://%s", s.Domain)
	}

	// ListenAndServe returns ErrServerClosed after Shutdown was called
	err := s.HttpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-done // Wait for the graceful shutdown to complete
	log.Println("Graceful shutdown complete.")

	return nil
}

package server

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"
)

// Time given to the in-flight requests on shutdown
const shutdownTimeout = 10 * time.Second

// Shutdown listens for SIGINT and SIGTERM signals,
// gracefully shuts down the HTTP server,
// performs cleanup and informs the main goroutine when done.
func (s *Server) Shutdown(done chan<- struct{}) {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Blocks until an interruption signal is received
	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force...")

	// Stop watching for termination signals,
	// a second Ctrl+C kills the process immediately.
	stop()

	// Sitemap runs can be slow, give them some time to finish
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.HttpServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Closing the cache connections...")
	if err := s.cleanup(); err != nil {
		log.Printf("Error during cleanup: %v", err)
	}

	log.Println("Server exiting...")

	// Notify the main goroutine that the shutdown is complete
	done <- struct{}{}
}

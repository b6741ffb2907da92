package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	"github.com/vlatan/repo-sitemap/internal/server"
)

func main() {

	// The environment may come from a local .env file
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("couldn't load the .env file; %v", err)
	}

	// Create new server, register the routes and run it
	if err := server.NewServer().RegisterRoutes().Run(); err != nil {
		log.Fatalf("http server error: %v", err)
	}
}

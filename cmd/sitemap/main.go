package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vlatan/repo-sitemap/internal/config"
	"github.com/vlatan/repo-sitemap/internal/integrations/objstore"
	"github.com/vlatan/repo-sitemap/internal/server"
)

func main() {

	asJSON := flag.Bool("json", false, "print the whole report as JSON")
	verbose := flag.Bool("v", false, "print the progress lines while running")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-json] [-v] <repository-url>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("couldn't load the .env file; %v", err)
	}

	// Listen for interruption signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.New()

	c, closeCache, err := server.NewCache(cfg)
	if err != nil {
		log.Fatalf("couldn't create the %s cache; %v", cfg.CacheBackend, err)
	}
	defer closeCache()

	var logger *log.Logger
	if *verbose {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	store := objstore.New(ctx, cfg)
	report, genErr := server.NewGenerator(ctx, cfg, c, store, logger).Generate(ctx, flag.Arg(0))

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Printf("couldn't encode the report; %v", err)
		}
	} else if !*verbose {
		// In verbose mode the lines were already printed
		for _, line := range report.Logs {
			fmt.Fprintln(os.Stderr, line)
		}
	}

	if genErr != nil {
		stop()
		closeCache()
		os.Exit(1)
	}

	if !*asJSON {
		fmt.Println(report.Result.PublicURL)
	}
}

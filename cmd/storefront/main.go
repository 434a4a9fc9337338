// Package main is the WishCrate console storefront. It drives the
// application context through a simple screen loop: each screen owns a
// view scope, so navigating away cancels that screen's requests.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/wishcrate/storefront/internal/app"
	"github.com/wishcrate/storefront/internal/config"
	"github.com/wishcrate/storefront/internal/credential"
	"github.com/wishcrate/storefront/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	apiURL := flag.String("api-url", "", "Backend API root (overrides config)")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	cfg := config.LoadOrDefault(*configPath)
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}

	appLogger := logger.New("storefront", logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})

	credPath := cfg.Credential.Path
	if credPath == "" {
		p, err := credential.DefaultPath()
		if err != nil {
			log.Fatalf("Failed to resolve credential path: %v", err)
		}
		credPath = p
	}

	ui := newUI(os.Stdin, os.Stdout)

	application, err := app.New(app.Config{
		BaseURL:     cfg.API.BaseURL,
		Credentials: credential.NewFileStore(credPath),
		Navigator:   ui,
		Timeout:     cfg.API.Timeout,
		Logger:      appLogger,
	})
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	ui.app = application

	start := time.Now()
	ui.Run()
	appLogger.Infof("session ended after %s", time.Since(start).Round(time.Second))
}

// Package main runs the in-memory WishCrate reference backend. It is a
// development fixture for the console storefront and for integration
// testing; data lives in process memory and is lost on exit.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wishcrate/storefront/internal/devapi"
	"github.com/wishcrate/storefront/pkg/logger"
)

func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	seed := flag.Bool("seed", true, "Load demo accounts and catalog")
	jwtSecret := flag.String("jwt-secret", "", "JWT signing secret (default: fixed dev secret)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	if v := os.Getenv("DEVSERVER_ADDR"); v != "" {
		*addr = v
	}
	if v := os.Getenv("DEVSERVER_JWT_SECRET"); v != "" {
		*jwtSecret = v
	}

	appLogger := logger.New("devserver", logger.Config{Level: *logLevel, Format: "text"})

	server := devapi.New(devapi.Config{
		JWTSecret: []byte(*jwtSecret),
		Logger:    appLogger,
		Seed:      *seed,
	})

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Infof("devserver listening on %s (seed=%v)", *addr, *seed)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	appLogger.Infof("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown failed: %v", err)
	}
}

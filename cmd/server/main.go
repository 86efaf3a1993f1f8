/*
main.go - Application entry point

PURPOSE:
  Generates the synthetic star-schema dataset and serves the analytics
  query API over HTTP with graceful shutdown.

STARTUP SEQUENCE:
  1. Load optional .env file
  2. Parse command-line flags (env values are the defaults)
  3. Build the dataset (dimensions + facts) from config and seed
  4. Create API handler and router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port     HTTP server port (default 8080, env PORT)
  -seed     RNG seed for fact generation (default: clock, env SEED)
  -window   Time-window length in days (default 30, env WINDOW_DAYS)
  -anchor   Anchor date YYYY-MM-DD (default 2026-02-03, env ANCHOR_DATE)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit

EXAMPLES:
  # Reproducible dataset
  ./server -seed=42

  # Shorter window ending today
  ./server -window=14 -anchor=2026-08-31
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/meridian/fulfillment-analytics/api"
	"github.com/meridian/fulfillment-analytics/star"
)

func main() {
	// .env is optional; flags below pick up anything it sets.
	_ = godotenv.Load()

	defaults := star.DefaultConfig()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	seed := flag.Int64("seed", envInt64("SEED", 0), "fact generation seed (0 = derive from clock)")
	window := flag.Int("window", envInt("WINDOW_DAYS", defaults.WindowDays), "time window length in days")
	anchor := flag.String("anchor", envStr("ANCHOR_DATE", defaults.Anchor().String()), "anchor date (YYYY-MM-DD)")
	flag.Parse()

	cfg := defaults
	cfg.WindowDays = *window
	anchorKey, err := star.ParseDateKey(*anchor)
	if err != nil {
		log.Fatalf("Invalid anchor date: %v", err)
	}
	cfg.AnchorDate = anchorKey.Time()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	dataset, err := star.NewDataset(cfg, *seed)
	if err != nil {
		log.Fatalf("Failed to generate dataset: %v", err)
	}
	log.Printf("Generated %d facts across %d stores and %d days (seed %d)",
		len(dataset.Facts), len(dataset.Dimensions.Stores), len(dataset.Dimensions.Time), *seed)

	handler := api.NewHandler(dataset)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

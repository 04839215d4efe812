package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/AmarAbbas123/People-lookup/internal/config"
	"github.com/AmarAbbas123/People-lookup/internal/llm"
	"github.com/AmarAbbas123/People-lookup/internal/metrics"
	"github.com/AmarAbbas123/People-lookup/internal/server"
	"github.com/AmarAbbas123/People-lookup/internal/storage"
	"github.com/AmarAbbas123/People-lookup/internal/storage/postgres"
	"github.com/AmarAbbas123/People-lookup/internal/storage/sqlite"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	flag.Parse()

	// .env is optional; environment variables win either way.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	cfg, err := config.LoadConfigFile(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, vector, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	generator, embedder, err := llm.NewFromConfig(cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize llm provider: %v", err)
	}

	metrics.Init(cfg.Metrics.Enabled, cfg.Metrics.Addr)

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr, _ := server.Start(ctx, cfg, store, vector, generator, embedder)
	log.Printf("People Lookup API running at http://%s", addr)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")
	cancel()
	time.Sleep(1 * time.Second) // Give time for connections to close
}

// openStore builds the configured storage backend. Both backends also act
// as the vector searcher for semantic retrieval.
func openStore(cfg *config.Config) (storage.PersonStore, storage.VectorSearcher, error) {
	switch cfg.Storage.Engine {
	case "postgres":
		store, err := postgres.NewPersonStore(cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		if err := os.MkdirAll(cfg.Storage.DataPath, 0o755); err != nil {
			return nil, nil, err
		}
		store, err := sqlite.NewPersonStore(cfg.Storage.DataPath + "/people.db")
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	}
}

// Command peoplelookup-seed wipes the store and inserts a small demo
// dataset, embedding each record when an embedding provider is configured.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/AmarAbbas123/People-lookup/internal/config"
	"github.com/AmarAbbas123/People-lookup/internal/llm"
	"github.com/AmarAbbas123/People-lookup/internal/storage"
	"github.com/AmarAbbas123/People-lookup/internal/storage/postgres"
	"github.com/AmarAbbas123/People-lookup/internal/storage/sqlite"
	"github.com/AmarAbbas123/People-lookup/pkg/types"
)

var demoPeople = []types.Person{
	{
		Name:        "CryptoGame",
		Description: "A blockchain-based play-to-earn game with NFT rewards.",
		Category:    "Gaming",
		Blockchain:  "Ethereum",
		Device:      "Mobile",
		Status:      "Active",
	},
	{
		Name:        "ArtNFT",
		Description: "An NFT marketplace for digital artists and collectors.",
		Category:    "Marketplace",
		Blockchain:  "Polygon",
		Device:      "Web",
		Status:      "Beta",
	},
	{
		Name:        "MetaWorld",
		Description: "A virtual reality metaverse with play-to-earn mechanics.",
		Category:    "Metaverse",
		Blockchain:  "Solana",
		Device:      "VR/PC",
		Status:      "Alpha",
	},
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	cfg, err := config.LoadConfigFile(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	_, embedder, err := llm.NewFromConfig(cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize llm provider: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := store.DeleteAll(ctx); err != nil {
		log.Fatalf("Failed to clear store: %v", err)
	}
	log.Println("Old data cleared")

	for _, p := range demoPeople {
		if embedder != nil {
			vec, err := embedder.Embed(ctx, p.EmbeddingText())
			if err != nil {
				log.Printf("Warning: failed to embed %s, inserting without vector: %v", p.Name, err)
			} else {
				p.Embedding = vec
				p.EmbeddingModel = embedder.GetModel()
			}
		}
		if err := store.Upsert(ctx, &p); err != nil {
			log.Fatalf("Failed to insert %s: %v", p.Name, err)
		}
		log.Printf("Inserted %s", p.Name)
	}

	log.Println("Seeding complete")
}

func openStore(cfg *config.Config) (storage.PersonStore, error) {
	switch cfg.Storage.Engine {
	case "postgres":
		return postgres.NewPersonStore(cfg.Storage.PostgresDSN)
	default:
		if err := os.MkdirAll(cfg.Storage.DataPath, 0o755); err != nil {
			return nil, err
		}
		return sqlite.NewPersonStore(cfg.Storage.DataPath + "/people.db")
	}
}

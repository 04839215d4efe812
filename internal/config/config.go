// Package config provides configuration management for People Lookup.
// It loads settings from environment variables with the PEOPLE_ prefix,
// optionally overlaid by a YAML config file, and provides sensible
// defaults for all options.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration settings for the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Upload    UploadConfig    `yaml:"upload"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	LLM       LLMConfig       `yaml:"llm"`
	Security  SecurityConfig  `yaml:"security"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port int    `yaml:"port"` // Server port (default: 5000)
	Host string `yaml:"host"` // Server host (default: 127.0.0.1)
}

// StorageConfig contains database configuration.
type StorageConfig struct {
	Engine      string `yaml:"engine"`       // Storage engine: sqlite, postgres (default: sqlite)
	DataPath    string `yaml:"data_path"`    // Directory for the SQLite database file (default: ./data)
	PostgresDSN string `yaml:"postgres_dsn"` // PostgreSQL connection string (engine=postgres only)
}

// UploadConfig contains CSV ingestion settings.
type UploadConfig struct {
	MaxBytes       int64  `yaml:"max_bytes"`        // Upload size limit (default: 50 MB)
	BatchSize      int    `yaml:"batch_size"`       // Rows per bulk upsert (default: 1000)
	EmbedBatchSize int    `yaml:"embed_batch_size"` // Texts per embedding call (default: 100)
	Workers        int    `yaml:"workers"`          // Concurrent batch flushers (default: 4)
	TempDir        string `yaml:"temp_dir"`         // Upload spool directory ("" = os.TempDir)
	EmbedOnIngest  bool   `yaml:"embed_on_ingest"`  // Compute embeddings during upload (default: false)
}

// RetrievalConfig controls how chat questions are resolved.
type RetrievalConfig struct {
	Mode           string `yaml:"mode"`            // pattern or semantic (default: pattern)
	CandidateLimit int    `yaml:"candidate_limit"` // Local cosine candidate pool (default: 5000)
	TopK           int    `yaml:"top_k"`           // Semantic result count (default: 5)
	NumCandidates  int    `yaml:"num_candidates"`  // pgvector candidate pool (default: 200)
}

// LLMConfig contains embedding and text-generation provider configuration.
type LLMConfig struct {
	Provider       string `yaml:"provider"`           // none, huggingface, openai (default: none)
	HFAPIKey       string `yaml:"hf_api_key"`         // Hugging Face inference API key
	HFGenModel     string `yaml:"hf_gen_model"`       // default: mistralai/Mistral-7B-Instruct-v0.2
	HFEmbedModel   string `yaml:"hf_embed_model"`     // default: sentence-transformers/all-MiniLM-L6-v2
	OpenAIAPIKey   string `yaml:"openai_api_key"`     // OpenAI API key
	OpenAIGenModel string `yaml:"openai_gen_model"`   // default: gpt-4o-mini
	OpenAIEmbModel string `yaml:"openai_embed_model"` // default: text-embedding-3-small
}

// SecurityConfig contains security and authentication settings.
type SecurityConfig struct {
	Mode     string `yaml:"mode"`      // development or production (default: development)
	APIToken string `yaml:"api_token"` // Bearer token required in production mode
}

// MetricsConfig controls the Prometheus exporter side listener.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: false
	Addr    string `yaml:"addr"`    // default: :9090
}

// LoadConfig loads configuration from environment variables with defaults.
// All environment variables use the PEOPLE_ prefix.
func LoadConfig() (*Config, error) {
	return buildBaseConfig(), nil
}

// LoadConfigFile loads the base configuration and overlays it with values
// from a YAML file. A missing file is not an error: the env/default config
// is returned unchanged, matching the behavior of an optional -config flag.
func LoadConfigFile(path string) (*Config, error) {
	cfg := buildBaseConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// buildBaseConfig constructs a Config from environment variables and defaults.
func buildBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnvInt("PEOPLE_PORT", 5000),
			Host: getEnv("PEOPLE_HOST", "127.0.0.1"),
		},
		Storage: StorageConfig{
			Engine:      getEnv("PEOPLE_STORAGE_ENGINE", "sqlite"),
			DataPath:    getEnv("PEOPLE_DATA_PATH", "./data"),
			PostgresDSN: getEnv("PEOPLE_POSTGRES_DSN", ""),
		},
		Upload: UploadConfig{
			MaxBytes:       getEnvInt64("PEOPLE_UPLOAD_MAX_BYTES", 50*1024*1024),
			BatchSize:      getEnvInt("PEOPLE_UPLOAD_BATCH_SIZE", 1000),
			EmbedBatchSize: getEnvInt("PEOPLE_EMBED_BATCH_SIZE", 100),
			Workers:        getEnvInt("PEOPLE_UPLOAD_WORKERS", 4),
			TempDir:        getEnv("PEOPLE_UPLOAD_TEMP_DIR", ""),
			EmbedOnIngest:  getEnvBool("PEOPLE_EMBED_ON_INGEST", false),
		},
		Retrieval: RetrievalConfig{
			Mode:           getEnv("PEOPLE_RETRIEVAL_MODE", "pattern"),
			CandidateLimit: getEnvInt("PEOPLE_VECTOR_CANDIDATES", 5000),
			TopK:           getEnvInt("PEOPLE_VECTOR_TOP_K", 5),
			NumCandidates:  getEnvInt("PEOPLE_PGVECTOR_CANDIDATES", 200),
		},
		LLM: LLMConfig{
			Provider:       getEnv("PEOPLE_LLM_PROVIDER", "none"),
			HFAPIKey:       getEnv("PEOPLE_HF_API_KEY", ""),
			HFGenModel:     getEnv("PEOPLE_HF_GEN_MODEL", "mistralai/Mistral-7B-Instruct-v0.2"),
			HFEmbedModel:   getEnv("PEOPLE_HF_EMBED_MODEL", "sentence-transformers/all-MiniLM-L6-v2"),
			OpenAIAPIKey:   getEnv("PEOPLE_OPENAI_API_KEY", ""),
			OpenAIGenModel: getEnv("PEOPLE_OPENAI_GEN_MODEL", "gpt-4o-mini"),
			OpenAIEmbModel: getEnv("PEOPLE_OPENAI_EMBED_MODEL", "text-embedding-3-small"),
		},
		Security: SecurityConfig{
			Mode:     getEnv("PEOPLE_SECURITY_MODE", "development"),
			APIToken: getEnv("PEOPLE_API_TOKEN", ""),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("PEOPLE_METRICS_ENABLED", false),
			Addr:    getEnv("PEOPLE_METRICS_ADDR", ":9090"),
		},
	}
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default
// value. If the variable exists but cannot be parsed, the default is used.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvInt64 is getEnvInt for 64-bit values such as byte limits.
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value.
// It recognizes "true", "1", "yes" as true and "false", "0", "no" as false.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch value {
		case "true", "1", "yes", "True", "TRUE", "Yes", "YES":
			return true
		case "false", "0", "no", "False", "FALSE", "No", "NO":
			return false
		}
	}
	return defaultValue
}

package llm

import (
	"fmt"

	"github.com/AmarAbbas123/People-lookup/internal/config"
)

// NewFromConfig builds the text generator and embedding generator for the
// configured provider. Provider "none" disables both; callers must handle
// nil generators by degrading gracefully.
func NewFromConfig(cfg config.LLMConfig) (TextGenerator, EmbeddingGenerator, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, nil, nil
	case "huggingface":
		gen := NewHFClient(HFConfig{
			APIKey: cfg.HFAPIKey,
			Model:  cfg.HFGenModel,
		})
		emb := NewHFEmbeddingClient(HFConfig{
			APIKey: cfg.HFAPIKey,
			Model:  cfg.HFEmbedModel,
		})
		return gen, emb, nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, nil, fmt.Errorf("openai provider requires an API key")
		}
		gen := NewOpenAIClient(OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIGenModel,
		})
		emb := NewOpenAIEmbeddingClient(OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIEmbModel,
		})
		return gen, emb, nil
	default:
		return nil, nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

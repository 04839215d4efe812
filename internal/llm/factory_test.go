package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmarAbbas123/People-lookup/internal/config"
)

func TestNewFromConfig(t *testing.T) {
	t.Run("none disables both", func(t *testing.T) {
		gen, emb, err := NewFromConfig(config.LLMConfig{Provider: "none"})
		require.NoError(t, err)
		assert.Nil(t, gen)
		assert.Nil(t, emb)
	})

	t.Run("empty provider means none", func(t *testing.T) {
		gen, emb, err := NewFromConfig(config.LLMConfig{})
		require.NoError(t, err)
		assert.Nil(t, gen)
		assert.Nil(t, emb)
	})

	t.Run("huggingface", func(t *testing.T) {
		gen, emb, err := NewFromConfig(config.LLMConfig{
			Provider:     "huggingface",
			HFGenModel:   "test/gen",
			HFEmbedModel: "test/embed",
		})
		require.NoError(t, err)
		assert.Equal(t, "test/gen", gen.GetModel())
		assert.Equal(t, "test/embed", emb.GetModel())
	})

	t.Run("openai requires a key", func(t *testing.T) {
		_, _, err := NewFromConfig(config.LLMConfig{Provider: "openai"})
		assert.Error(t, err)

		gen, emb, err := NewFromConfig(config.LLMConfig{
			Provider:     "openai",
			OpenAIAPIKey: "sk-test",
		})
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o-mini", gen.GetModel())
		assert.Equal(t, "text-embedding-3-small", emb.GetModel())
	})

	t.Run("unknown provider errors", func(t *testing.T) {
		_, _, err := NewFromConfig(config.LLMConfig{Provider: "cohere"})
		assert.Error(t, err)
	})
}

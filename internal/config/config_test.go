package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "tfidf", cfg.Embedder.Type)
	assert.Equal(t, "heuristic", cfg.NER.Type)
	assert.Equal(t, "gpt-3.5-turbo", cfg.LLM.Model)
	assert.Equal(t, 0.8, cfg.LLM.Temperature)
	assert.Equal(t, 700, cfg.LLM.MaxTokens)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Equal(t, "logs", cfg.Logging.Dir)
}

func TestLoadAppliesDefaultsToPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  model: gpt-4o-mini\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "OPENAI_API_KEY", cfg.LLM.APIKeyEnv)
	assert.Equal(t, "tfidf", cfg.Embedder.Type)
	assert.Equal(t, 10, cfg.Enrichment.TimeoutSecs)
	assert.Equal(t, 5, cfg.LinkCheck.TimeoutSecs)
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "config.yaml")
	cfg := defaultConfig()
	cfg.LLM.Model = "gpt-4o"
	cfg.Embedder.Type = "openai"
	cfg.Embedder.OpenAI = &OpenAIEmbedderConfig{Model: "text-embedding-3-small"}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", loaded.LLM.Model)
	assert.Equal(t, "openai", loaded.Embedder.Type)
	require.NotNil(t, loaded.Embedder.OpenAI)
	assert.Equal(t, "text-embedding-3-small", loaded.Embedder.OpenAI.Model)
	assert.Equal(t, "OPENAI_API_KEY", loaded.Embedder.OpenAI.APIKeyEnv)
}

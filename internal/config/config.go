package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// LLMConfig configures the chat-completion client used for itinerary
// generation and, optionally, for LLM-backed entity recognition.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// NERConfig selects the entity recognizer: "heuristic" (offline) or "llm".
type NERConfig struct {
	Type string `yaml:"type"`
}

// EnrichmentConfig configures external lookup services for context
// enrichment. All lookups are best-effort with deterministic fallbacks.
type EnrichmentConfig struct {
	GeoapifyKeyEnv string `yaml:"geoapify_key_env"`
	TimeoutSecs    int    `yaml:"timeout_secs"`
	MaxAttractions int    `yaml:"max_attractions"`
}

// RetrievalConfig configures ranking over the filtered document set.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// LinkCheckConfig configures link reachability verification on responses.
type LinkCheckConfig struct {
	Enabled     bool `yaml:"enabled"`
	TimeoutSecs int  `yaml:"timeout_secs"`
	MaxLinks    int  `yaml:"max_links"`
}

// LoggingConfig points interaction logs at a directory.
type LoggingConfig struct {
	Dir string `yaml:"dir"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedder   EmbedderConfig   `yaml:"embedder"`
	NER        NERConfig        `yaml:"ner"`
	LLM        LLMConfig        `yaml:"llm"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	LinkCheck  LinkCheckConfig  `yaml:"link_check"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/travelrag/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "travelrag", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Embedder: EmbedderConfig{Type: "tfidf"},
		NER:      NERConfig{Type: "heuristic"},
		LLM: LLMConfig{
			APIKeyEnv:   "OPENAI_API_KEY",
			Model:       "gpt-3.5-turbo",
			Temperature: 0.8,
			MaxTokens:   700,
			TimeoutSecs: 60,
		},
		Enrichment: EnrichmentConfig{GeoapifyKeyEnv: "GEOAPIFY_API_KEY", TimeoutSecs: 10, MaxAttractions: 5},
		Retrieval:  RetrievalConfig{TopK: 5},
		LinkCheck:  LinkCheckConfig{Enabled: true, TimeoutSecs: 5, MaxLinks: 10},
		Logging:    LoggingConfig{Dir: "logs"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "tfidf"
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
	if cfg.NER.Type == "" {
		cfg.NER.Type = "heuristic"
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-3.5-turbo"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.8
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 700
	}
	if cfg.LLM.TimeoutSecs == 0 {
		cfg.LLM.TimeoutSecs = 60
	}
	if cfg.Enrichment.GeoapifyKeyEnv == "" {
		cfg.Enrichment.GeoapifyKeyEnv = "GEOAPIFY_API_KEY"
	}
	if cfg.Enrichment.TimeoutSecs == 0 {
		cfg.Enrichment.TimeoutSecs = 10
	}
	if cfg.Enrichment.MaxAttractions == 0 {
		cfg.Enrichment.MaxAttractions = 5
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 5
	}
	if cfg.LinkCheck.TimeoutSecs == 0 {
		cfg.LinkCheck.TimeoutSecs = 5
	}
	if cfg.LinkCheck.MaxLinks == 0 {
		cfg.LinkCheck.MaxLinks = 10
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "logs"
	}
}

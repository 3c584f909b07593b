// Package llm wraps the chat-completion service behind the domain LLMClient
// interface.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
)

// Config configures the OpenAI-compatible chat client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewClient builds the underlying API client. It is shared between the
// completion wrapper and the LLM-backed entity recognizer.
func NewClient(cfg Config) (openai.Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return openai.Client{}, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	opts := []option.RequestOption{option.WithAPIKey(key)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	return openai.NewClient(opts...), nil
}

// OpenAI implements domain.LLMClient over a chat-completion endpoint.
type OpenAI struct {
	client openai.Client
	model  shared.ChatModel
}

// NewOpenAI wraps an API client with a fixed model choice.
func NewOpenAI(client openai.Client, model string) *OpenAI {
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	return &OpenAI{client: client, model: shared.ChatModel(model)}
}

// Model returns the configured model identifier.
func (o *OpenAI) Model() string { return string(o.model) }

// Complete sends one system+user exchange and returns the trimmed reply.
func (o *OpenAI) Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Model:       o.model,
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("chat completion returned empty content")
	}
	return content, nil
}

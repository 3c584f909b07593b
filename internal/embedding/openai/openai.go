// Package openai provides an OpenAI-compatible remote embeddings client.
package openai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Client calls an OpenAI-compatible /embeddings endpoint. The dimension is
// learned lazily from the first successful embed.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	dimension  int
	client     *http.Client
	maxRetries int
}

// Config configures the embeddings client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewClient creates an embeddings client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     key,
		model:      cfg.Model,
		client:     &http.Client{Timeout: timeout},
		maxRetries: 5,
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return "openai" }

// Prepare is a no-op: remote models need no corpus pass.
func (c *Client) Prepare(corpus []string) error { return nil }

// Dimension returns the dimensionality of the produced vectors.
func (c *Client) Dimension() int { return c.dimension }

// Embed returns an embedding vector for the given text, retrying transient
// failures with exponential backoff and honoring Retry-After.
func (c *Client) Embed(text string) ([]float64, error) {
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		vec, retryable, err := c.embedOnce(text)
		if err == nil {
			if c.dimension == 0 {
				c.dimension = len(vec)
			}
			return vec, nil
		}
		if !retryable || attempt == c.maxRetries {
			return nil, err
		}
		time.Sleep(retryDelay(attempt))
	}
	return nil, errors.New("no embedding returned")
}

func (c *Client) embedOnce(text string) (vec []float64, retryable bool, err error) {
	body, _ := json.Marshal(map[string]string{"input": text, "model": c.model})
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, perr := strconv.Atoi(ra); perr == nil {
				time.Sleep(time.Duration(secs) * time.Second)
			}
		}
		return nil, true, fmt.Errorf("embeddings request failed: %s", resp.Status)
	}
	if resp.StatusCode >= 300 {
		return nil, false, fmt.Errorf("embeddings request failed: %s", resp.Status)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	var out struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &out); err == nil && len(out.Data) > 0 && len(out.Data[0].Embedding) > 0 {
		return out.Data[0].Embedding, false, nil
	}
	return nil, true, errors.New("no embedding in response")
}

func retryDelay(attempt int) time.Duration {
	base := 200 * time.Millisecond
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

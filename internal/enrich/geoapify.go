package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const geoapifyPlacesURL = "https://api.geoapify.com/v2/places"

// GeoapifyClient fetches sightseeing places from the Geoapify Places API.
type GeoapifyClient struct {
	baseURL string
	apiKey  string
	limit   int
	client  *http.Client
}

// GeoapifyConfig configures the places client.
type GeoapifyConfig struct {
	BaseURL string
	APIKey  string
	Limit   int
	Timeout time.Duration
}

// NewGeoapifyClient creates a places client. Limit defaults to 5 and timeout
// to 10s when unset.
func NewGeoapifyClient(cfg GeoapifyConfig) *GeoapifyClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = geoapifyPlacesURL
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 5
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &GeoapifyClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		limit:   cfg.Limit,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Attractions returns named sightseeing features for the city.
func (g *GeoapifyClient) Attractions(ctx context.Context, city string) ([]string, error) {
	params := url.Values{}
	params.Set("categories", "tourism.sightseeing")
	params.Set("filter", "place:"+city)
	params.Set("limit", fmt.Sprintf("%d", g.limit))
	params.Set("apiKey", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("geoapify places failed: %s", resp.Status)
	}

	var payload struct {
		Features []struct {
			Properties struct {
				Name string `json:"name"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	var names []string
	for _, f := range payload.Features {
		if f.Properties.Name != "" {
			names = append(names, f.Properties.Name)
		}
	}
	return names, nil
}

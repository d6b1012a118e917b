// Package gif fetches reaction images from an otakugifs-compatible API.
package gif

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Chiitoi/Aurora/internal/ports/secondary"
)

// APIError represents a non-2xx response from the GIF API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("gif api error (%d): %s", e.Status, e.Body)
	}
	return fmt.Sprintf("gif api error (%d)", e.Status)
}

type reactionResponse struct {
	URL string `json:"url"`
}

// Client talks to the GIF API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a GIF client for baseURL, e.g. https://api.otakugifs.xyz/gif.
func NewClient(baseURL string) (*Client, error) {
	value := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	parsed, err := url.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("invalid gif api url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("gif api url must be absolute (got %q)", baseURL)
	}
	return &Client{
		baseURL: value,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}, nil
}

// Reaction returns an image URL for the reaction.
func (c *Client) Reaction(ctx context.Context, reaction string) (string, error) {
	query := url.Values{}
	query.Set("reaction", reaction)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build gif request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s gif: %w", reaction, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload reactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode gif response: %w", err)
	}
	if payload.URL == "" {
		return "", fmt.Errorf("gif response for %s has no url", reaction)
	}
	return payload.URL, nil
}

var _ secondary.GIFProvider = (*Client)(nil)

// Package content fetches passages from the Wikipedia summary API.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/JackRKennedy/terminal-typing/internal/model"
)

// DefaultEndpoint serves a random article summary as JSON.
const DefaultEndpoint = "https://en.wikipedia.org/api/rest_v1/page/random/summary"

// DefaultTimeout bounds a single passage fetch.
const DefaultTimeout = 10 * time.Second

// ErrUnavailable reports that no passage could be obtained from the source.
var ErrUnavailable = errors.New("passage source unavailable")

type summaryResponse struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// Fetcher retrieves passages over HTTP.
type Fetcher struct {
	endpoint string
	client   *http.Client
}

// NewFetcher builds a Fetcher for the given endpoint. Empty arguments
// fall back to the defaults.
func NewFetcher(endpoint string, timeout time.Duration) *Fetcher {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// FetchPassage requests one passage. Every failure mode, including a
// well-formed response with an empty extract, wraps ErrUnavailable so
// the caller can short-circuit without inspecting the cause.
func (f *Fetcher) FetchPassage(ctx context.Context) (model.Passage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, http.NoBody)
	if err != nil {
		return model.Passage{}, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return model.Passage{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return model.Passage{}, fmt.Errorf("%w: unexpected status %s", ErrUnavailable, resp.Status)
	}

	var payload summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.Passage{}, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if strings.TrimSpace(payload.Extract) == "" {
		return model.Passage{}, fmt.Errorf("%w: response has no extract", ErrUnavailable)
	}

	return model.Passage{Title: payload.Title, Body: payload.Extract}, nil
}

package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/echolingo/echolingo/backend/internal/model/dictionary"
)

// Client queries the Free Dictionary API. The API is unauthenticated;
// the only knobs are the base URL (swapped for a test server in tests)
// and the request timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a dictionary API client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Entries fetches the dictionary records for an exact word match. A
// non-200 upstream status is not an error: it returns the status with no
// entries and the caller decides between fallback and not-found.
func (c *Client) Entries(ctx context.Context, word string) ([]dictionary.Entry, int, error) {
	reqURL := c.baseURL + "/" + url.PathEscape(word)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("building dictionary request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("dictionary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}

	var entries []dictionary.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decoding dictionary response: %w", err)
	}

	return entries, resp.StatusCode, nil
}

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/zenloop/zenloop/internal/client/models"
)

// CatalogClient talks to the remote exercise catalog.
type CatalogClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewCatalogClient creates a client for the given catalog URL. The API key
// is sent as the X-Api-Key header on every request.
func NewCatalogClient(baseURL, apiKey string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Exercises fetches the catalog with an optional muscle filter. The offset
// is always 0; the server's own limit handling is not trusted, so callers
// truncate the result themselves.
func (c *CatalogClient) Exercises(ctx context.Context, muscle string) ([]models.Exercise, error) {
	query := url.Values{}
	query.Set("offset", "0")
	if muscle != "" {
		query.Set("muscle", muscle)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}

	var exercises []models.Exercise
	if err := json.Unmarshal(data, &exercises); err != nil {
		return nil, fmt.Errorf("failed to parse catalog response: %w", err)
	}

	return exercises, nil
}

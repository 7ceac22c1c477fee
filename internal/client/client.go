package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aryannaik/advocate-directory/internal/advocate"
)

// Client fetches the advocate roster from the directory API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// listResponse is the body of GET /api/advocates.
type listResponse struct {
	Data []advocate.Advocate `json:"data"`
}

// FetchAdvocates returns the full roster. A response without data is an
// empty roster, not an error.
func (c *Client) FetchAdvocates(ctx context.Context) ([]advocate.Advocate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/advocates", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch advocates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch advocates: status %d", resp.StatusCode)
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode advocates: %w", err)
	}
	if body.Data == nil {
		body.Data = []advocate.Advocate{}
	}
	return body.Data, nil
}

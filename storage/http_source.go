package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"listing-gallery/utils"
)

// HTTPSource downloads the dataset with a single GET, no retries
type HTTPSource struct {
	url    string
	client *http.Client
	logger *utils.Logger
}

// NewHTTPSource creates an HTTPSource; a nil client uses http.DefaultClient
func NewHTTPSource(url string, client *http.Client, logger *utils.Logger) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{url: url, client: client, logger: logger}
}

func (s *HTTPSource) Name() string {
	return "http " + s.url
}

// Fetch returns the response body whatever the status; a non-2xx status is
// only logged and the body is left to the decoder
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Warn("Dataset request to %s returned %s", s.url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset body: %w", err)
	}
	return body, nil
}

package cli

import (
	"context"
	"time"

	"listing-gallery/storage"
)

// timeoutSource bounds a single fetch
type timeoutSource struct {
	storage.Source
	timeout time.Duration
}

func (s *timeoutSource) Fetch(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.Source.Fetch(ctx)
}

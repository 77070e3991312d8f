package storage

import "context"

// Source fetches the raw dataset document (a JSON array of listings)
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

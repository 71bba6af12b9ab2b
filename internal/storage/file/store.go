// Package file serves the Hostaway export from an on-disk JSON document.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"flex_reviews/internal/domain"
)

// payload mirrors the Hostaway export envelope: {"status": ..., "result": [...]}.
type payload struct {
	Status string                  `json:"status"`
	Result []domain.HostawayReview `json:"result"`
}

type Store struct {
	path string
}

func New(path string) *Store { return &Store{path: path} }

// ListRaw re-reads the file on every call; the dataset is small and reviews
// are request-scoped, so there is nothing to cache.
func (s *Store) ListRaw(ctx context.Context) ([]domain.HostawayReview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrDataUnavailable, s.path, err)
	}
	var p payload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrDataUnavailable, s.path, err)
	}
	return p.Result, nil
}

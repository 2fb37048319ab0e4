package team

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("team not found")

// Repository describes team persistence needs from the ingestion use cases.
type Repository interface {
	// GetByName matches the exact name case-insensitively.
	GetByName(ctx context.Context, name string) (Team, error)
	GetByID(ctx context.Context, id int64) (Team, error)
	// ListAll exists for the letters-only fallback match during schedule
	// ingestion; the team table is small.
	ListAll(ctx context.Context) ([]Team, error)
	Create(ctx context.Context, name string) (Team, error)
}

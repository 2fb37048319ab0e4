package roster

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("roster entry not found")

// Repository isolates the current-state write so a versioned implementation
// could retain history without touching resolution logic.
type Repository interface {
	GetOpen(ctx context.Context, teamID, seasonID int64, playerID string) (Entry, error)
	// UpdateOpen rewrites the position and jersey fields of an open row.
	UpdateOpen(ctx context.Context, id int64, pos1, pos2, pos3, jersey *string) error
	Insert(ctx context.Context, e Entry) error
	// ListOpenByTeam returns every currently-open row for a team across
	// seasons; stats ingestion resolves jerseys against this set.
	ListOpenByTeam(ctx context.Context, teamID int64) ([]Entry, error)
}

package usecase

import (
	"context"

	"github.com/sbathletics/gridiron-ingest/internal/domain/game"
	"github.com/sbathletics/gridiron-ingest/internal/domain/gameplay"
	"github.com/sbathletics/gridiron-ingest/internal/domain/player"
	"github.com/sbathletics/gridiron-ingest/internal/domain/position"
	"github.com/sbathletics/gridiron-ingest/internal/domain/roster"
	"github.com/sbathletics/gridiron-ingest/internal/domain/season"
	"github.com/sbathletics/gridiron-ingest/internal/domain/stataction"
	"github.com/sbathletics/gridiron-ingest/internal/domain/team"
)

// Repos bundles every repository an ingestion run may touch, all bound to
// the same transaction.
type Repos struct {
	Teams       team.Repository
	Seasons     season.Repository
	Players     player.Repository
	Roster      roster.Repository
	Games       game.Repository
	StatActions stataction.Repository
	GamePlays   gameplay.Repository
	Positions   position.Repository
}

// Store opens one transaction per ingestion run. The callback's error
// decides commit or rollback; a file either lands in full or not at all.
type Store interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}

// ObjectFetcher retrieves the raw bytes of an uploaded object.
type ObjectFetcher interface {
	Fetch(ctx context.Context, bucket, key string) ([]byte, error)
}

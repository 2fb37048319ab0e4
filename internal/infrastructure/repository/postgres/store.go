// Package postgres implements the domain repositories and the per-run
// transaction boundary over a Postgres store.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sbathletics/gridiron-ingest/internal/usecase"
)

// Store opens one transaction per ingestion run. Connection acquisition is
// bounded separately from the run itself so a saturated pool fails fast
// instead of stalling a lambda until its deadline.
type Store struct {
	db             *sqlx.DB
	acquireTimeout time.Duration
}

func NewStore(db *sqlx.DB, acquireTimeout time.Duration) *Store {
	if acquireTimeout <= 0 {
		acquireTimeout = 5 * time.Second
	}
	return &Store{db: db, acquireTimeout: acquireTimeout}
}

func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, r usecase.Repos) error) error {
	acquireCtx, cancel := context.WithTimeout(ctx, s.acquireTimeout)
	defer cancel()

	conn, err := s.db.Connx(acquireCtx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ingestion tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, newRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ingestion tx: %w", err)
	}
	return nil
}

func newRepos(ext sqlx.ExtContext) usecase.Repos {
	return usecase.Repos{
		Teams:       NewTeamRepository(ext),
		Seasons:     NewSeasonRepository(ext),
		Players:     NewPlayerRepository(ext),
		Roster:      NewRosterRepository(ext),
		Games:       NewGameRepository(ext),
		StatActions: NewStatActionRepository(ext),
		GamePlays:   NewGamePlayRepository(ext),
		Positions:   NewPositionRepository(ext),
	}
}

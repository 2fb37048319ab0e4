package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sbathletics/gridiron-ingest/internal/domain/gameplay"
	qb "github.com/sbathletics/gridiron-ingest/internal/platform/querybuilder"
)

type GamePlayRepository struct {
	db sqlx.ExtContext
}

func NewGamePlayRepository(db sqlx.ExtContext) *GamePlayRepository {
	return &GamePlayRepository{db: db}
}

func (r *GamePlayRepository) DeleteByGame(ctx context.Context, gameID int64) (int64, error) {
	query, args, err := qb.DeleteFrom("game_plays").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete game plays query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete plays for game %d: %w", gameID, err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted plays for game %d: %w", gameID, err)
	}
	return deleted, nil
}

func (r *GamePlayRepository) InsertMany(ctx context.Context, plays []gameplay.Play) error {
	if len(plays) == 0 {
		return nil
	}

	builder := qb.InsertInto("game_plays").Columns(
		"game_id", "play_no", "player_id", "team_id", "stat_type",
		"stat_action_id", "yards", "is_touchdown", "is_safety",
		"sack_weight", "source_file", "notes",
	)
	for _, p := range plays {
		builder.Values(
			p.GameID, p.PlayNo, p.PlayerID, p.TeamID, p.StatType,
			p.StatActionID, p.Yards, p.IsTouchdown, p.IsSafety,
			p.SackWeight, p.SourceFile, p.Notes,
		)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert game plays query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %d game plays: %w", len(plays), err)
	}
	return nil
}

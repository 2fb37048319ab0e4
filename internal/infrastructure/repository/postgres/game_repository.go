package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sbathletics/gridiron-ingest/internal/domain/game"
	qb "github.com/sbathletics/gridiron-ingest/internal/platform/querybuilder"
)

type GameRepository struct {
	db sqlx.ExtContext
}

func NewGameRepository(db sqlx.ExtContext) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) GetByID(ctx context.Context, id int64) (game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return game.Game{}, fmt.Errorf("build select game by id query: %w", err)
	}

	var row gameTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, game.ErrNotFound
		}
		return game.Game{}, fmt.Errorf("select game by id: %w", err)
	}
	return row.toDomain(), nil
}

func (r *GameRepository) GetByNaturalKey(ctx context.Context, seasonID int64, date time.Time, homeTeamID, awayTeamID int64) (game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("season_id", seasonID),
			qb.Eq("date", date),
			qb.Eq("home_team_id", homeTeamID),
			qb.Eq("away_team_id", awayTeamID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return game.Game{}, fmt.Errorf("build select game by natural key query: %w", err)
	}

	var row gameTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, game.ErrNotFound
		}
		return game.Game{}, fmt.Errorf("select game by natural key: %w", err)
	}
	return row.toDomain(), nil
}

func (r *GameRepository) UpdateSchedule(ctx context.Context, id int64, weekNumber *int, location *string) error {
	if weekNumber == nil && location == nil {
		return nil
	}

	builder := qb.Update("games")
	if weekNumber != nil {
		builder.Set("week_number", *weekNumber)
	}
	if location != nil {
		builder.Set("location", *location)
	}
	query, args, err := builder.
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game schedule query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update game schedule %d: %w", id, err)
	}
	return nil
}

func (r *GameRepository) Insert(ctx context.Context, g game.Game) error {
	model := gameInsertModel{
		SeasonID:   g.SeasonID,
		Date:       g.Date,
		HomeTeamID: g.HomeTeamID,
		AwayTeamID: g.AwayTeamID,
		WeekNumber: g.WeekNumber,
		Location:   g.Location,
		HomeScore:  g.HomeScore,
		AwayScore:  g.AwayScore,
	}
	query, args, err := qb.InsertModel("games", model, "")
	if err != nil {
		return fmt.Errorf("build insert game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("game already exists for season %d on %s: %w", g.SeasonID, g.Date.Format("2006-01-02"), err)
		}
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

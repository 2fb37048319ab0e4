package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sbathletics/gridiron-ingest/internal/domain/roster"
	qb "github.com/sbathletics/gridiron-ingest/internal/platform/querybuilder"
)

type RosterRepository struct {
	db sqlx.ExtContext
}

func NewRosterRepository(db sqlx.ExtContext) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) GetOpen(ctx context.Context, teamID, seasonID int64, playerID string) (roster.Entry, error) {
	query, args, err := qb.Select("*").From("roster_entries").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("season_id", seasonID),
			qb.Eq("player_id", playerID),
			qb.Eq("end_date", roster.OpenEndDate),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return roster.Entry{}, fmt.Errorf("build select open roster entry query: %w", err)
	}

	var row rosterEntryTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Entry{}, roster.ErrNotFound
		}
		return roster.Entry{}, fmt.Errorf("select open roster entry: %w", err)
	}
	return row.toDomain(), nil
}

func (r *RosterRepository) UpdateOpen(ctx context.Context, id int64, pos1, pos2, pos3, jersey *string) error {
	query, args, err := qb.Update("roster_entries").
		Set("position1", pos1).
		Set("position2", pos2).
		Set("position3", pos3).
		Set("jersey_number", jersey).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update roster entry query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update roster entry %d: %w", id, err)
	}
	return nil
}

func (r *RosterRepository) Insert(ctx context.Context, e roster.Entry) error {
	model := rosterEntryInsertModel{
		TeamID:       e.TeamID,
		PlayerID:     e.PlayerID,
		SeasonID:     e.SeasonID,
		Position1:    e.Position1,
		Position2:    e.Position2,
		Position3:    e.Position3,
		JerseyNumber: e.JerseyNumber,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
	}
	query, args, err := qb.InsertModel("roster_entries", model, "")
	if err != nil {
		return fmt.Errorf("build insert roster entry query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("open roster entry already exists for player %s: %w", e.PlayerID, err)
		}
		return fmt.Errorf("insert roster entry for %s: %w", e.PlayerID, err)
	}
	return nil
}

func (r *RosterRepository) ListOpenByTeam(ctx context.Context, teamID int64) ([]roster.Entry, error) {
	query, args, err := qb.Select("*").From("roster_entries").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("end_date", roster.OpenEndDate),
		).
		OrderBy("season_id DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list open roster entries query: %w", err)
	}

	var rows []rosterEntryTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list open roster entries: %w", err)
	}

	out := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

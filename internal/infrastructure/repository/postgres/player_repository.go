package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sbathletics/gridiron-ingest/internal/domain/player"
	qb "github.com/sbathletics/gridiron-ingest/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db sqlx.ExtContext
}

func NewPlayerRepository(db sqlx.ExtContext) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByName(ctx context.Context, firstName, lastName string) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Expr("lower(first_name) = lower(?)", firstName),
			qb.Expr("lower(last_name) = lower(?)", lastName),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by name query: %w", err)
	}

	var rows []playerTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by name: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ID:             row.ID,
			FirstName:      row.FirstName,
			LastName:       row.LastName,
			Height:         nullInt64ToIntPtr(row.Height),
			Weight:         nullInt64ToIntPtr(row.Weight),
			GraduationYear: nullInt64ToIntPtr(row.GraduationYear),
		})
	}
	return out, nil
}

func (r *PlayerRepository) ListIDsByBase(ctx context.Context, base string) ([]string, error) {
	query, args, err := qb.Select("id").From("players").
		Where(qb.Like("id", base+"%")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player ids query: %w", err)
	}

	var ids []string
	if err := sqlx.SelectContext(ctx, r.db, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select player ids by base: %w", err)
	}
	return ids, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return err
	}

	model := playerInsertModel{
		ID:             p.ID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Height:         p.Height,
		Weight:         p.Weight,
		GraduationYear: p.GraduationYear,
	}
	query, args, err := qb.InsertModel("players", model, `ON CONFLICT (id)
DO UPDATE SET
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    height = COALESCE(EXCLUDED.height, players.height),
    weight = COALESCE(EXCLUDED.weight, players.weight),
    graduation_year = COALESCE(EXCLUDED.graduation_year, players.graduation_year)`)
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player %s: %w", p.ID, err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sbathletics/gridiron-ingest/internal/domain/stataction"
	qb "github.com/sbathletics/gridiron-ingest/internal/platform/querybuilder"
)

type statActionTableModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type StatActionRepository struct {
	db sqlx.ExtContext
}

func NewStatActionRepository(db sqlx.ExtContext) *StatActionRepository {
	return &StatActionRepository{db: db}
}

func (r *StatActionRepository) ListAll(ctx context.Context) ([]stataction.StatAction, error) {
	query, args, err := qb.Select("*").From("stat_actions").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list stat actions query: %w", err)
	}

	var rows []statActionTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list stat actions: %w", err)
	}

	out := make([]stataction.StatAction, 0, len(rows))
	for _, row := range rows {
		out = append(out, stataction.StatAction{ID: row.ID, Name: row.Name})
	}
	return out, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sbathletics/gridiron-ingest/internal/domain/season"
	qb "github.com/sbathletics/gridiron-ingest/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db sqlx.ExtContext
}

func NewSeasonRepository(db sqlx.ExtContext) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetByYear(ctx context.Context, year int) (season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("year", year)).
		ToSQL()
	if err != nil {
		return season.Season{}, fmt.Errorf("build select season by year query: %w", err)
	}

	var row seasonTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, season.ErrNotFound
		}
		return season.Season{}, fmt.Errorf("select season by year: %w", err)
	}
	return season.Season{ID: row.ID, Year: row.Year}, nil
}

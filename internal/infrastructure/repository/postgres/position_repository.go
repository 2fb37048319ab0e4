package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/sbathletics/gridiron-ingest/internal/platform/querybuilder"
)

type PositionRepository struct {
	db sqlx.ExtContext
}

func NewPositionRepository(db sqlx.ExtContext) *PositionRepository {
	return &PositionRepository{db: db}
}

func (r *PositionRepository) Exists(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.Select("1").From("positions").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build select position query: %w", err)
	}

	var one int
	if err := sqlx.GetContext(ctx, r.db, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("select position %q: %w", id, err)
	}
	return true, nil
}

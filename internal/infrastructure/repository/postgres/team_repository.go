package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sbathletics/gridiron-ingest/internal/domain/team"
	qb "github.com/sbathletics/gridiron-ingest/internal/platform/querybuilder"
)

type TeamRepository struct {
	db sqlx.ExtContext
}

func NewTeamRepository(db sqlx.ExtContext) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Expr("lower(name) = lower(?)", name)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, fmt.Errorf("build select team by name query: %w", err)
	}

	var row teamTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, team.ErrNotFound
		}
		return team.Team{}, fmt.Errorf("select team by name: %w", err)
	}
	return team.Team{ID: row.ID, Name: row.Name}, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return team.Team{}, fmt.Errorf("build select team by id query: %w", err)
	}

	var row teamTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, team.ErrNotFound
		}
		return team.Team{}, fmt.Errorf("select team by id: %w", err)
	}
	return team.Team{ID: row.ID, Name: row.Name}, nil
}

func (r *TeamRepository) ListAll(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{ID: row.ID, Name: row.Name})
	}
	return out, nil
}

func (r *TeamRepository) Create(ctx context.Context, name string) (team.Team, error) {
	created := team.Team{Name: name}
	if err := created.Validate(); err != nil {
		return team.Team{}, err
	}

	query, args, err := qb.InsertInto("teams").
		Columns("name").
		Values(name).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return team.Team{}, fmt.Errorf("build insert team query: %w", err)
	}

	if err := sqlx.GetContext(ctx, r.db, &created.ID, query, args...); err != nil {
		return team.Team{}, fmt.Errorf("insert team %q: %w", name, err)
	}
	return created, nil
}

package season

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("season not found")

type Repository interface {
	GetByYear(ctx context.Context, year int) (Season, error)
}

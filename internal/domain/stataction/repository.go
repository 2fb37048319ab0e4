package stataction

import "context"

type Repository interface {
	// ListAll feeds the per-run lookup cache; the table is small and static.
	ListAll(ctx context.Context) ([]StatAction, error)
}

package player

import "context"

// Repository describes player persistence needs from roster ingestion.
type Repository interface {
	// ListByName matches (firstName, lastName) exactly, case-insensitively.
	ListByName(ctx context.Context, firstName, lastName string) ([]Player, error)
	// ListIDsByBase returns every allocated id sharing a six-letter base.
	ListIDsByBase(ctx context.Context, base string) ([]string, error)
	Upsert(ctx context.Context, p Player) error
}

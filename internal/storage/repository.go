package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	// SyncEvents reconciles the stored catalog with the loaded one: events are
	// upserted by id, their rules replaced, and stored events absent from the
	// catalog are removed.
	SyncEvents(ctx context.Context, events []Event, rules []SpawnRule) error
	ListEvents(ctx context.Context) ([]Event, error)
	ListRules(ctx context.Context, eventID string) ([]SpawnRule, error)

	// SaveActivation persists the full activation set; LoadActivation returns
	// empty maps when nothing has been stored yet (defaults apply).
	SaveActivation(ctx context.Context, events map[string]bool, thresholds map[int]bool) error
	LoadActivation(ctx context.Context) (map[string]bool, map[int]bool, error)
}

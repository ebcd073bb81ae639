package profile

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence boundary for niche profiles.
type Store interface {
	// Create inserts a profile.
	Create(ctx context.Context, p *NicheProfile) error

	// Get retrieves a profile by ID. Returns ErrProfileNotFound if missing.
	Get(ctx context.Context, id uuid.UUID) (*NicheProfile, error)

	// ListByAccount returns an account's profiles, newest first.
	ListByAccount(ctx context.Context, accountID string) ([]*NicheProfile, error)

	// Update overwrites the editable fields of an existing profile.
	Update(ctx context.Context, p *NicheProfile) error

	// Delete removes a profile scoped to its owner; deleting someone else's
	// profile (or a missing one) is a silent no-op, matching the idempotent
	// DELETE semantics of the HTTP layer.
	Delete(ctx context.Context, id uuid.UUID, accountID string) error
}

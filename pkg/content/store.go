package content

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence boundary for generated content.
type Store interface {
	// Create inserts a generation result.
	Create(ctx context.Context, c *GeneratedContent) error

	// Get retrieves one item by ID. Returns ErrContentNotFound if missing.
	Get(ctx context.Context, id uuid.UUID) (*GeneratedContent, error)

	// ListByAccount returns an account's generation history, newest first.
	ListByAccount(ctx context.Context, accountID string) ([]*GeneratedContent, error)

	// SetRating records the user's feedback score on an item.
	SetRating(ctx context.Context, id uuid.UUID, rating int) error
}

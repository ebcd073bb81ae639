package content

import (
	"context"

	"github.com/copymakerhq/copymaker/pkg/profile"
)

// Generator is the opaque content-generation gateway. Implementations own
// their transport, timeout, and retry policy; callers only see text or an
// error.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// GenerationRequest carries the validated inputs for one generation.
type GenerationRequest struct {
	Profile *profile.NicheProfile
	Type    ContentType
	Input   map[string]string

	// Premium unlocks the larger model and token budget.
	Premium bool

	// VariationOf holds the original text when the caller wants a variation
	// rather than a fresh generation.
	VariationOf string
}

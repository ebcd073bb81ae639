package content

import "errors"

var (
	ErrContentNotFound = errors.New("generated content not found")
	ErrNotContentOwner = errors.New("generated content belongs to another account")

	ErrInvalidContentType = errors.New("invalid content type")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")

	ErrGenerationFailed = errors.New("content generation failed")
	ErrEmptyCompletion  = errors.New("generation gateway returned no content")

	ErrMissingAPIKey = errors.New("generation gateway API key is required")
)

package content

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ContentType selects the prompt template and output shape of a generation.
type ContentType string

const (
	TypeFacebook  ContentType = "facebook"
	TypeInstagram ContentType = "instagram"
	TypeProduct   ContentType = "product"
	TypeBlog      ContentType = "blog"
	TypeVideo     ContentType = "video"
)

// ParseContentType validates a client-sourced content type string.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case TypeFacebook, TypeInstagram, TypeProduct, TypeBlog, TypeVideo:
		return ContentType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidContentType, s)
	}
}

// GeneratedContent is one stored generation result.
type GeneratedContent struct {
	ID        uuid.UUID
	AccountID string
	ProfileID uuid.UUID
	Type      ContentType
	Input     map[string]string // the user's original input fields
	Text      string
	Rating    *int // 1-5 user feedback, nil until rated
	CreatedAt time.Time
}

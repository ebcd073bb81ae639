package profile

import "errors"

var (
	ErrProfileNotFound = errors.New("niche profile not found")
	ErrNotProfileOwner = errors.New("niche profile belongs to another account")

	ErrNameRequired           = errors.New("profile name is required")
	ErrTargetAudienceRequired = errors.New("target audience is required")
	ErrInvalidContentGoal     = errors.New("invalid content goal")
	ErrInvalidToneOfVoice     = errors.New("invalid tone of voice")
)

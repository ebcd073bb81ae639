package profile

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ContentGoal is the primary objective content for this niche should serve.
type ContentGoal string

const (
	GoalInform    ContentGoal = "inform"
	GoalSell      ContentGoal = "sell"
	GoalEntertain ContentGoal = "entertain"
	GoalAuthority ContentGoal = "authority"
)

// ToneOfVoice shapes how generated copy addresses the audience.
type ToneOfVoice string

const (
	ToneFormal     ToneOfVoice = "formal"
	ToneFriendly   ToneOfVoice = "friendly"
	ToneTechnical  ToneOfVoice = "technical"
	ToneHumorous   ToneOfVoice = "humorous"
	ToneEmpathetic ToneOfVoice = "empathetic"
)

// NicheProfile is an account's saved audience preset.
type NicheProfile struct {
	ID             uuid.UUID
	AccountID      string
	Name           string
	TargetAudience string
	ContentGoal    ContentGoal
	ToneOfVoice    ToneOfVoice
	Keywords       string // comma-separated, optional
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Input carries the client-editable profile fields. Validate is called on
// every create and update before anything reaches the store.
type Input struct {
	Name           string
	TargetAudience string
	ContentGoal    string
	ToneOfVoice    string
	Keywords       string
}

func (in Input) Validate() error {
	if in.Name == "" {
		return ErrNameRequired
	}
	if in.TargetAudience == "" {
		return ErrTargetAudienceRequired
	}
	if _, err := parseGoal(in.ContentGoal); err != nil {
		return err
	}
	if _, err := parseTone(in.ToneOfVoice); err != nil {
		return err
	}
	return nil
}

func parseGoal(s string) (ContentGoal, error) {
	switch ContentGoal(s) {
	case GoalInform, GoalSell, GoalEntertain, GoalAuthority:
		return ContentGoal(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidContentGoal, s)
	}
}

func parseTone(s string) (ToneOfVoice, error) {
	switch ToneOfVoice(s) {
	case ToneFormal, ToneFriendly, ToneTechnical, ToneHumorous, ToneEmpathetic:
		return ToneOfVoice(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidToneOfVoice, s)
	}
}

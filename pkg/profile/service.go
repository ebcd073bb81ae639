package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/copymakerhq/copymaker/pkg/clock"
)

// Service exposes owner-scoped CRUD over niche profiles.
type Service struct {
	store Store
	clk   clock.Clock
}

// ServiceOption configures optional Service settings.
type ServiceOption func(*Service)

// WithClock overrides the time source, mainly for tests.
func WithClock(c clock.Clock) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.clk = c
		}
	}
}

// NewService creates a profile Service.
// Panics if store is nil to fail fast during initialization.
func NewService(store Store, opts ...ServiceOption) *Service {
	if store == nil {
		panic("profile: Store is required")
	}
	s := &Service{store: store, clk: clock.System()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the input and stores a new profile for the account.
func (s *Service) Create(ctx context.Context, accountID string, in Input) (*NicheProfile, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.clk.Now()
	p := &NicheProfile{
		ID:             uuid.New(),
		AccountID:      accountID,
		Name:           in.Name,
		TargetAudience: in.TargetAudience,
		ContentGoal:    ContentGoal(in.ContentGoal),
		ToneOfVoice:    ToneOfVoice(in.ToneOfVoice),
		Keywords:       in.Keywords,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get retrieves a profile and enforces ownership.
func (s *Service) Get(ctx context.Context, accountID string, id uuid.UUID) (*NicheProfile, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AccountID != accountID {
		return nil, ErrNotProfileOwner
	}
	return p, nil
}

// List returns all profiles owned by the account, newest first.
func (s *Service) List(ctx context.Context, accountID string) ([]*NicheProfile, error) {
	return s.store.ListByAccount(ctx, accountID)
}

// Update validates the input and overwrites an owned profile's fields.
func (s *Service) Update(ctx context.Context, accountID string, id uuid.UUID, in Input) (*NicheProfile, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p, err := s.Get(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	p.Name = in.Name
	p.TargetAudience = in.TargetAudience
	p.ContentGoal = ContentGoal(in.ContentGoal)
	p.ToneOfVoice = ToneOfVoice(in.ToneOfVoice)
	p.Keywords = in.Keywords
	p.UpdatedAt = s.clk.Now()

	if err := s.store.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes an owned profile. Deleting a missing or foreign profile is
// a no-op.
func (s *Service) Delete(ctx context.Context, accountID string, id uuid.UUID) error {
	return s.store.Delete(ctx, id, accountID)
}

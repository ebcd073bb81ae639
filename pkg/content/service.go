package content

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/copymakerhq/copymaker/pkg/clock"
	"github.com/copymakerhq/copymaker/pkg/entitlement"
	"github.com/copymakerhq/copymaker/pkg/profile"
)

// GenerationResult bundles the stored content with the post-charge balance so
// the API layer can report both in one response.
type GenerationResult struct {
	Content   *GeneratedContent
	Remaining int
	Plan      entitlement.Plan
}

// Service orchestrates metered generation: entitlement charge first, gateway
// call second, persistence last. A generation failure after the charge is not
// refunded.
type Service struct {
	store        Store
	generator    Generator
	profiles     *profile.Service
	entitlements *entitlement.Service
	clk          clock.Clock
	log          *slog.Logger
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

// WithLogger sets the logger used for operational events.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// NewService creates a content Service.
// Panics if any required dependency is nil to fail fast during initialization.
func NewService(store Store, generator Generator, profiles *profile.Service, entitlements *entitlement.Service, opts ...ServiceOption) *Service {
	if store == nil {
		panic("content: Store is required")
	}
	if generator == nil {
		panic("content: Generator is required")
	}
	if profiles == nil {
		panic("content: profile.Service is required")
	}
	if entitlements == nil {
		panic("content: entitlement.Service is required")
	}

	s := &Service{
		store:        store,
		generator:    generator,
		profiles:     profiles,
		entitlements: entitlements,
		clk:          clock.System(),
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateInput carries the client's request for a fresh generation.
type GenerateInput struct {
	ProfileID uuid.UUID
	Type      ContentType
	Input     map[string]string
}

// Generate runs one metered generation for the account. The entitlement
// charge commits before the gateway call; ErrCreditsExhausted propagates
// untouched so the transport layer can map it to a payment-required response.
func (s *Service) Generate(ctx context.Context, accountID string, in GenerateInput) (*GenerationResult, error) {
	p, err := s.profiles.Get(ctx, accountID, in.ProfileID)
	if err != nil {
		return nil, err
	}

	receipt, err := s.entitlements.CheckAndCharge(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return s.generate(ctx, accountID, p, GenerationRequest{
		Profile: p,
		Type:    in.Type,
		Input:   in.Input,
		Premium: receipt.Plan == entitlement.PlanPremium,
	}, receipt)
}

// Variation regenerates from an existing owned item, charging a fresh credit.
// The variation inherits the original's profile, type, and input.
func (s *Service) Variation(ctx context.Context, accountID string, contentID uuid.UUID) (*GenerationResult, error) {
	original, err := s.Get(ctx, accountID, contentID)
	if err != nil {
		return nil, err
	}

	p, err := s.profiles.Get(ctx, accountID, original.ProfileID)
	if err != nil {
		return nil, err
	}

	receipt, err := s.entitlements.CheckAndCharge(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return s.generate(ctx, accountID, p, GenerationRequest{
		Profile:     p,
		Type:        original.Type,
		Input:       original.Input,
		Premium:     receipt.Plan == entitlement.PlanPremium,
		VariationOf: original.Text,
	}, receipt)
}

func (s *Service) generate(ctx context.Context, accountID string, p *profile.NicheProfile, req GenerationRequest, receipt *entitlement.ChargeReceipt) (*GenerationResult, error) {
	text, err := s.generator.Generate(ctx, req)
	if err != nil {
		// The credit is already spent. Surface the failure; the ledger is
		// deliberately not touched again.
		s.log.ErrorContext(ctx, "generation failed after charge",
			slog.String("account_id", accountID),
			slog.String("content_type", string(req.Type)),
			slog.Any("error", err))
		return nil, err
	}

	c := &GeneratedContent{
		ID:        uuid.New(),
		AccountID: accountID,
		ProfileID: p.ID,
		Type:      req.Type,
		Input:     req.Input,
		Text:      text,
		CreatedAt: s.clk.Now(),
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}

	return &GenerationResult{
		Content:   c,
		Remaining: receipt.Remaining,
		Plan:      receipt.Plan,
	}, nil
}

// Get retrieves one item and enforces ownership.
func (s *Service) Get(ctx context.Context, accountID string, id uuid.UUID) (*GeneratedContent, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.AccountID != accountID {
		return nil, ErrNotContentOwner
	}
	return c, nil
}

// List returns the account's generation history, newest first.
func (s *Service) List(ctx context.Context, accountID string) ([]*GeneratedContent, error) {
	return s.store.ListByAccount(ctx, accountID)
}

// Rate records a 1-5 feedback score on an owned item.
func (s *Service) Rate(ctx context.Context, accountID string, id uuid.UUID, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	if _, err := s.Get(ctx, accountID, id); err != nil {
		return err
	}
	return s.store.SetRating(ctx, id, rating)
}

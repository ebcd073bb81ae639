package entitlement

import (
	"context"
	"log/slog"

	"github.com/copymakerhq/copymaker/pkg/clock"
)

// ChargeReceipt is the result of a granted entitlement check. Remaining is
// the balance after the charge, or UnlimitedCredits for premium accounts.
type ChargeReceipt struct {
	Granted   bool
	Remaining int
	Plan      Plan
}

// Service composes the credit ledger and subscription state behind a single
// entry point for the content-generation flow. It never calls the generation
// collaborator itself; it only gates the caller's decision to do so.
type Service struct {
	store AccountStore
	clk   clock.Clock
	log   *slog.Logger
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

// NewService creates an entitlement Service.
// Panics if store is nil to fail fast during initialization.
func NewService(store AccountStore, opts ...ServiceOption) *Service {
	if store == nil {
		panic("entitlement: AccountStore is required")
	}

	s := &Service{
		store: store,
		clk:   clock.System(),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves an account by ID.
func (s *Service) Get(ctx context.Context, accountID string) (*Account, error) {
	return s.store.Get(ctx, accountID)
}

// GetByBillingCustomerID retrieves the account linked to a billing customer.
func (s *Service) GetByBillingCustomerID(ctx context.Context, customerID string) (*Account, error) {
	return s.store.GetByBillingCustomerID(ctx, customerID)
}

// GetOrCreate loads an account, provisioning a fresh free-tier record on
// first sight. Safe under concurrent first requests for the same account:
// the losing Create falls back to reading the winner's row.
func (s *Service) GetOrCreate(ctx context.Context, accountID string) (*Account, error) {
	acc, err := s.store.Get(ctx, accountID)
	if err == nil {
		return acc, nil
	}
	if err != ErrAccountNotFound {
		return nil, err
	}

	acc = NewAccount(accountID, s.clk.Now())
	if createErr := s.store.Create(ctx, acc); createErr != nil {
		if createErr == ErrAccountAlreadyExists {
			return s.store.Get(ctx, accountID)
		}
		return nil, createErr
	}

	s.log.InfoContext(ctx, "account provisioned",
		slog.String("account_id", accountID),
		slog.Int("credits", acc.CreditsRemaining))
	return acc, nil
}

// CheckAndCharge decides whether the account may run one metered generation
// and, for free accounts, commits the charge. Premium accounts bypass the
// ledger entirely. Returns ErrCreditsExhausted when the weekly allowance is
// used up; the caller must not proceed to content generation.
//
// The charge is committed before the generation attempt, and a failed
// generation is not refunded. Exhaustion is a legitimate outcome, not a
// transient fault, so nothing here retries.
func (s *Service) CheckAndCharge(ctx context.Context, accountID string) (*ChargeReceipt, error) {
	acc, err := s.store.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if acc.IsPremium() {
		return &ChargeReceipt{Granted: true, Remaining: UnlimitedCredits, Plan: PlanPremium}, nil
	}

	now := s.clk.Now()
	weekStart := clock.StartOfWeek(now)

	// The reset must be applied (or confirmed a no-op) before the consume so
	// low-traffic accounts catch up lazily. The pre-check just avoids a
	// write per request; the store's timestamp guard stays authoritative
	// against concurrent resets.
	if clock.StartOfWeek(acc.LastCreditsReset).Before(weekStart) {
		if acc, err = s.store.ResetCredits(ctx, accountID, FreeWeeklyCredits, now, weekStart); err != nil {
			return nil, err
		}
	}

	acc, err = s.store.ConsumeCredit(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &ChargeReceipt{Granted: true, Remaining: acc.CreditsRemaining, Plan: acc.Plan}, nil
}

// ActivatePremium transitions an account to the premium plan, recording both
// billing references and the unlimited balance in one atomic update.
func (s *Service) ActivatePremium(ctx context.Context, accountID, customerID, subscriptionID string) (*Account, error) {
	acc, err := s.store.SetSubscription(ctx, accountID, PlanPremium, UnlimitedCredits, customerID, subscriptionID)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "premium activated",
		slog.String("account_id", accountID),
		slog.String("billing_customer_id", customerID),
		slog.String("billing_subscription_id", subscriptionID))
	return acc, nil
}

// DowngradeToFree transitions an account back to the free plan: the
// subscription reference is cleared, the customer reference is preserved
// (the customer identity persists in the billing provider across
// cancellations), and the weekly allowance is re-provisioned.
func (s *Service) DowngradeToFree(ctx context.Context, accountID, customerID string) (*Account, error) {
	acc, err := s.store.SetSubscription(ctx, accountID, PlanFree, FreeWeeklyCredits, customerID, "")
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "downgraded to free",
		slog.String("account_id", accountID))
	return acc, nil
}

// LinkBillingCustomer records the billing customer reference, independent of
// any plan change.
func (s *Service) LinkBillingCustomer(ctx context.Context, accountID, customerID string) (*Account, error) {
	return s.store.LinkBillingCustomer(ctx, accountID, customerID)
}

package entitlement

import (
	"fmt"
	"time"
)

// Plan represents the subscription tier of an account.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

const (
	// FreeWeeklyCredits is the generation allowance provisioned to free
	// accounts at every weekly reset.
	FreeWeeklyCredits = 3

	// UnlimitedCredits marks a balance that is never consumed from.
	// Premium accounts bypass the ledger entirely; the sentinel exists so
	// the stored balance and API responses read as "no limit" rather than
	// as a stale leftover count (-1 chosen for SQL compatibility).
	UnlimitedCredits = -1
)

// ParsePlan validates a provider-sourced or client-sourced plan string.
// Plan values cross trust boundaries (billing webhooks, API payloads), so
// every write path goes through this instead of casting free-form strings.
func ParsePlan(s string) (Plan, error) {
	switch Plan(s) {
	case PlanFree:
		return PlanFree, nil
	case PlanPremium:
		return PlanPremium, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPlan, s)
	}
}

// Account is the persistent record under metering. The ID comes from the
// upstream auth provider and is opaque to this package.
type Account struct {
	ID                    string
	Plan                  Plan
	CreditsRemaining      int
	LastCreditsReset      time.Time
	BillingCustomerID     string // account's identity in the billing provider, empty until linked
	BillingSubscriptionID string // active subscription object, empty unless premium
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsPremium reports whether generation requests bypass the credit ledger.
func (a *Account) IsPremium() bool {
	return a.Plan == PlanPremium
}

// NewAccount returns a free-tier account provisioned with the weekly
// allowance, as created on first authentication.
func NewAccount(id string, now time.Time) *Account {
	now = now.UTC()
	return &Account{
		ID:               id,
		Plan:             PlanFree,
		CreditsRemaining: FreeWeeklyCredits,
		LastCreditsReset: now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

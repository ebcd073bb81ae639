package entitlement

import (
	"context"
	"time"
)

// AccountStore defines the persistence boundary for accounts.
//
// Every mutating operation must be applied as a single atomic conditional
// update in the backing store. The service layers no locking on top: a store
// implementation that reads, checks in application code, and writes back is
// racy and violates the contract.
type AccountStore interface {
	// Get retrieves an account by ID. Returns ErrAccountNotFound if missing.
	Get(ctx context.Context, id string) (*Account, error)

	// GetByBillingCustomerID retrieves the account linked to a billing
	// customer reference. Returns ErrAccountNotFound if no account is linked.
	GetByBillingCustomerID(ctx context.Context, customerID string) (*Account, error)

	// Create inserts a new account. Returns ErrAccountAlreadyExists if the
	// ID is taken.
	Create(ctx context.Context, account *Account) error

	// ConsumeCredit atomically decrements the balance by one if and only if
	// it is positive, and returns the updated account. Returns
	// ErrCreditsExhausted without mutating when the balance is zero or the
	// unlimited sentinel.
	ConsumeCredit(ctx context.Context, id string) (*Account, error)

	// ResetCredits sets the balance to credits and the reset timestamp to
	// now, but only if the stored reset timestamp is older than weekStart.
	// The guard makes the reset idempotent within a week and forward-only
	// under concurrent callers. Returns the current account either way.
	ResetCredits(ctx context.Context, id string, credits int, now, weekStart time.Time) (*Account, error)

	// SetSubscription applies a full subscription transition in one atomic
	// update: plan, credit balance, and both billing references change
	// together so a concurrent reader can never observe a half-applied
	// transition. An empty customerID preserves the stored customer
	// reference; an empty subscriptionID clears the stored one.
	SetSubscription(ctx context.Context, id string, plan Plan, credits int, customerID, subscriptionID string) (*Account, error)

	// LinkBillingCustomer records the billing customer reference for an
	// account, independent of plan.
	LinkBillingCustomer(ctx context.Context, id, customerID string) (*Account, error)
}

package billing

import (
	"context"

	"github.com/copymakerhq/copymaker/pkg/entitlement"
)

// Provider defines the minimal billing provider surface this service needs:
// webhook normalization plus hosted checkout. Hosted checkouts keep all
// payment detail handling on the provider's side.
type Provider interface {
	// ParseWebhook verifies the transport signature and maps the raw payload
	// to a normalized billing event. Returns (nil, nil) for event types the
	// entitlement core does not react to.
	ParseWebhook(ctx context.Context, payload []byte, signature string) (*entitlement.BillingEvent, error)

	// CreateCheckoutSession creates a hosted checkout for upgrading the
	// account to the premium plan.
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
}

// CheckoutRequest contains data needed to create a checkout session.
type CheckoutRequest struct {
	AccountID  string // local account ID, carried through provider metadata
	CustomerID string // provider customer ID, empty on first checkout
	Email      string // pre-fill billing email if known
	SuccessURL string
	CancelURL  string
}

// CheckoutSession represents a hosted checkout created at the provider.
type CheckoutSession struct {
	ID  string
	URL string
}

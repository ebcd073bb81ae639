package entitlement

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// Reconciler translates inbound billing events into subscription transitions.
//
// Transitions are expressed as "set to target state" rather than increments,
// so redelivering the same event is a no-op beyond redundant identical
// writes. Signature verification is the provider adapter's job; by the time
// an event reaches Handle it is trusted.
type Reconciler struct {
	svc *Service
	log *slog.Logger
}

// NewReconciler creates a Reconciler.
// Panics if svc is nil to fail fast during initialization.
func NewReconciler(svc *Service, log *slog.Logger) *Reconciler {
	if svc == nil {
		panic("entitlement: Service is required")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Reconciler{svc: svc, log: log}
}

// Handle applies one billing event. A nil event or one without any account
// reference is rejected with ErrMalformedBillingEvent before any state is
// touched. An event whose customer matches no local account is logged and
// dropped: the account may not exist yet, and the provider's own retry
// schedule covers the race without help from this side.
func (r *Reconciler) Handle(ctx context.Context, event *BillingEvent) error {
	if event == nil || (event.AccountID == "" && event.CustomerID == "") {
		return ErrMalformedBillingEvent
	}

	acc, err := r.resolve(ctx, event)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			r.log.WarnContext(ctx, "billing event for unknown account, dropping",
				slog.String("event_type", string(event.Type)),
				slog.String("provider_event", event.ProviderEvent),
				slog.String("billing_customer_id", event.CustomerID))
			return nil
		}
		return err
	}

	switch event.Type {
	case EventSubscriptionActivated:
		_, err = r.svc.ActivatePremium(ctx, acc.ID, event.CustomerID, event.SubscriptionID)

	case EventSubscriptionUpdated:
		if isActiveStatus(event.Status) {
			_, err = r.svc.ActivatePremium(ctx, acc.ID, event.CustomerID, event.SubscriptionID)
		} else {
			_, err = r.svc.DowngradeToFree(ctx, acc.ID, event.CustomerID)
		}

	case EventSubscriptionCanceled, EventPaymentFailed:
		_, err = r.svc.DowngradeToFree(ctx, acc.ID, event.CustomerID)

	default:
		return ErrMalformedBillingEvent
	}

	return err
}

// resolve prefers the account reference from provider metadata (present on
// checkout completion, before any customer linkage exists locally) and falls
// back to the billing customer lookup.
func (r *Reconciler) resolve(ctx context.Context, event *BillingEvent) (*Account, error) {
	if event.AccountID != "" {
		return r.svc.Get(ctx, event.AccountID)
	}
	return r.svc.GetByBillingCustomerID(ctx, event.CustomerID)
}

// isActiveStatus maps provider-reported statuses onto "entitled to premium".
// Trialing counts: the provider bills it as an active subscription.
func isActiveStatus(status string) bool {
	switch strings.ToLower(status) {
	case "active", "trialing":
		return true
	default:
		return false
	}
}

package entitlement

// BillingEventType is the normalized billing event variant consumed by the
// reconciler. Provider adapters map their raw event names onto these.
type BillingEventType string

const (
	EventSubscriptionActivated BillingEventType = "subscription_activated"
	EventSubscriptionUpdated   BillingEventType = "subscription_updated"
	EventSubscriptionCanceled  BillingEventType = "subscription_canceled"
	EventPaymentFailed         BillingEventType = "payment_failed"
)

// BillingEvent is a normalized event from the billing provider. Delivery is
// at-least-once and may be reordered, so handling must be idempotent with
// respect to the resulting state, not the event instance.
type BillingEvent struct {
	Type BillingEventType

	// AccountID is the local account reference carried in provider metadata
	// (set on checkout completion, where the customer may not be linked to a
	// local account yet). Empty for events resolved by customer reference.
	AccountID string

	// CustomerID is the account's identity in the billing provider.
	CustomerID string

	// SubscriptionID identifies the provider's subscription object, when the
	// event carries one.
	SubscriptionID string

	// Status is the provider-reported subscription status for update events.
	Status string

	// ProviderEvent preserves the raw provider event name for logging.
	ProviderEvent string
}

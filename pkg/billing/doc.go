// Package billing adapts the Stripe billing provider to the entitlement
// core: it verifies webhook signatures, normalizes raw provider events into
// entitlement.BillingEvent variants, and creates hosted checkout sessions for
// plan upgrades.
//
// The adapter owns everything provider-specific (event names, payload shapes,
// signature scheme) so the reconciler behind it only ever sees normalized,
// already-authenticated events.
//
// # Usage
//
//	provider, err := billing.NewStripeProvider(cfg)
//	if err != nil { ... }
//
//	event, err := provider.ParseWebhook(ctx, payload, signature)
//	if err != nil { ... }       // bad signature or unparseable payload
//	if event == nil { return }  // event type this service doesn't care about
//	err = reconciler.Handle(ctx, event)
package billing

// Package entitlement implements the usage metering core of the service: it
// tracks each account's subscription plan, the weekly free-credit allowance,
// and the billing-provider linkage, and decides whether an account may run a
// metered content generation right now.
//
// # Architecture
//
// The package is built around a small number of collaborators:
//
//   - Account: the persistent record under metering (plan, credits, reset
//     timestamp, billing references)
//   - AccountStore: persistence boundary exposing atomic conditional
//     mutations; Postgres and in-memory implementations are provided
//   - Service: single entry point for the generation flow (CheckAndCharge)
//     and for subscription transitions (ActivatePremium, DowngradeToFree)
//   - Reconciler: applies asynchronous billing events to subscription state
//     idempotently, tolerating duplicate and out-of-order delivery
//
// # Concurrency
//
// The service is expected to run as multiple stateless instances, so all
// mutation goes through the store's atomic primitives rather than in-process
// locks. Credit consumption is a single conditional decrement (grant only
// while the balance is positive) and the weekly reset is guarded by a
// forward-only timestamp comparison, which makes both operations safe under
// concurrent requests for the same account.
//
// # Usage
//
//	store := entitlement.NewPostgresStore(pool)
//	svc := entitlement.NewService(store)
//
//	receipt, err := svc.CheckAndCharge(ctx, accountID)
//	if errors.Is(err, entitlement.ErrCreditsExhausted) {
//		// deny the generation request, prompt an upgrade
//	}
//
// Billing webhooks are applied through the reconciler:
//
//	rec := entitlement.NewReconciler(svc, logger)
//	if err := rec.Handle(ctx, event); err != nil { ... }
package entitlement

package billing

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/copymakerhq/copymaker/pkg/entitlement"
)

// StripeConfig holds configuration for the Stripe billing provider.
type StripeConfig struct {
	SecretKey     string `env:"STRIPE_SECRET_KEY,required"`
	WebhookSecret string `env:"STRIPE_WEBHOOK_SECRET,required"`
	PremiumPrice  string `env:"STRIPE_PREMIUM_PRICE_ID,required"` // price ID of the premium plan
}

// StripeProvider implements Provider for Stripe.
type StripeProvider struct {
	api    *client.API
	config StripeConfig
}

// NewStripeProvider creates a Stripe billing provider.
func NewStripeProvider(config StripeConfig) (*StripeProvider, error) {
	if config.SecretKey == "" {
		return nil, ErrMissingSecretKey
	}
	if config.WebhookSecret == "" {
		return nil, ErrMissingWebhookSecret
	}

	api := &client.API{}
	api.Init(config.SecretKey, nil)

	return &StripeProvider{api: api, config: config}, nil
}

// CreateCheckoutSession creates a hosted Stripe checkout in subscription
// mode. The local account ID travels in session metadata so the completion
// webhook can resolve the account before any customer linkage exists.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(p.config.PremiumPrice),
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata(metadataAccountID, req.AccountID)

	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	} else if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	if sess.URL == "" {
		return nil, ErrNoCheckoutURL
	}

	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// metadataAccountID is the metadata key binding a checkout session to the
// local account.
const metadataAccountID = "account_id"

// stripeObject covers the payload fields this adapter reads, across the
// object types it handles. Expandable references (customer, subscription)
// arrive as plain string IDs in webhook payloads.
type stripeObject struct {
	ID           string            `json:"id"`
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	Status       string            `json:"status"`
	Metadata     map[string]string `json:"metadata"`
}

// ParseWebhook verifies the Stripe-Signature header and maps the event onto
// the normalized billing event variants. Events outside the subscription
// lifecycle return (nil, nil).
func (p *StripeProvider) ParseWebhook(ctx context.Context, payload []byte, signature string) (*entitlement.BillingEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.config.WebhookSecret)
	if err != nil {
		return nil, errors.Join(ErrWebhookVerificationFailed, err)
	}

	var obj stripeObject
	if err := json.Unmarshal(event.Data.Raw, &obj); err != nil {
		return nil, errors.Join(ErrMalformedPayload, err)
	}

	providerEvent := string(event.Type)

	switch providerEvent {
	case "checkout.session.completed":
		subID := obj.Subscription
		if subID == "" {
			// One-off payment sessions carry no subscription object; keep
			// the session ID as the reference so the link is still traceable.
			subID = obj.ID
		}
		return &entitlement.BillingEvent{
			Type:           entitlement.EventSubscriptionActivated,
			AccountID:      obj.Metadata[metadataAccountID],
			CustomerID:     obj.Customer,
			SubscriptionID: subID,
			ProviderEvent:  providerEvent,
		}, nil

	case "customer.subscription.created", "customer.subscription.updated":
		return &entitlement.BillingEvent{
			Type:           entitlement.EventSubscriptionUpdated,
			CustomerID:     obj.Customer,
			SubscriptionID: obj.ID,
			Status:         obj.Status,
			ProviderEvent:  providerEvent,
		}, nil

	case "customer.subscription.deleted":
		return &entitlement.BillingEvent{
			Type:           entitlement.EventSubscriptionCanceled,
			CustomerID:     obj.Customer,
			SubscriptionID: obj.ID,
			ProviderEvent:  providerEvent,
		}, nil

	case "invoice.payment_failed":
		return &entitlement.BillingEvent{
			Type:          entitlement.EventPaymentFailed,
			CustomerID:    obj.Customer,
			ProviderEvent: providerEvent,
		}, nil
	}

	return nil, nil
}

package billing

import "errors"

var (
	ErrMissingSecretKey     = errors.New("billing provider secret key is required")
	ErrMissingWebhookSecret = errors.New("billing provider webhook secret is required")

	ErrWebhookVerificationFailed = errors.New("webhook signature verification failed")
	ErrMalformedPayload          = errors.New("malformed webhook payload")

	ErrNoCheckoutURL = errors.New("no checkout URL returned from provider")
)

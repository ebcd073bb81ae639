package entitlement

import "errors"

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrCreditsExhausted means the free-tier allowance for the current week
	// is used up. It is an expected, user-facing condition: callers must not
	// proceed to content generation and should render an upgrade prompt.
	ErrCreditsExhausted = errors.New("generation credits exhausted")

	ErrInvalidPlan           = errors.New("invalid subscription plan")
	ErrMalformedBillingEvent = errors.New("malformed billing event")

	ErrFailedToStoreAccount = errors.New("failed to store account")
)

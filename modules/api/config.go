package api

import "time"

type Config struct {
	AccountHeader string `env:"API_ACCOUNT_HEADER" envDefault:"X-Account-ID"`

	GenerateRateLimit  int           `env:"API_GENERATE_RATE_LIMIT" envDefault:"10"`
	GenerateRateWindow time.Duration `env:"API_GENERATE_RATE_WINDOW" envDefault:"1m"`

	CheckoutSuccessURL string `env:"API_CHECKOUT_SUCCESS_URL" envDefault:"https://app.copymaker.io/billing/success"`
	CheckoutCancelURL  string `env:"API_CHECKOUT_CANCEL_URL" envDefault:"https://app.copymaker.io/billing/cancel"`
}

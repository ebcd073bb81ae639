package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/copymakerhq/copymaker/pkg/billing"
	"github.com/copymakerhq/copymaker/pkg/content"
	"github.com/copymakerhq/copymaker/pkg/entitlement"
	"github.com/copymakerhq/copymaker/pkg/profile"
	"github.com/copymakerhq/copymaker/pkg/ratelimit"
)

// Deps carries the services the API surfaces. Limiter is optional; without
// it the generation endpoints run unthrottled.
type Deps struct {
	Entitlements *entitlement.Service
	Reconciler   *entitlement.Reconciler
	Profiles     *profile.Service
	Content      *content.Service
	Billing      billing.Provider
	Limiter      ratelimit.Limiter
	Logger       *slog.Logger
}

// Router assembles the API routes.
// Panics if a required dependency is nil to fail fast during initialization.
func Router(cfg Config, deps Deps) chi.Router {
	if deps.Entitlements == nil {
		panic("api: entitlement.Service is required")
	}
	if deps.Reconciler == nil {
		panic("api: entitlement.Reconciler is required")
	}
	if deps.Profiles == nil {
		panic("api: profile.Service is required")
	}
	if deps.Content == nil {
		panic("api: content.Service is required")
	}
	if deps.Billing == nil {
		panic("api: billing.Provider is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	h := &handlers{
		cfg:          cfg,
		entitlements: deps.Entitlements,
		reconciler:   deps.Reconciler,
		profiles:     deps.Profiles,
		content:      deps.Content,
		billing:      deps.Billing,
		log:          deps.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// The provider authenticates with its signature, not an account header.
	r.Post("/webhooks/billing", h.billingWebhook)

	r.Group(func(r chi.Router) {
		r.Use(AccountAuth(cfg.AccountHeader))

		r.Get("/me", h.me)

		r.Route("/niche-profiles", func(r chi.Router) {
			r.Post("/", h.createProfile)
			r.Get("/", h.listProfiles)
			r.Get("/{id}", h.getProfile)
			r.Put("/{id}", h.updateProfile)
			r.Delete("/{id}", h.deleteProfile)
		})

		r.Group(func(r chi.Router) {
			if deps.Limiter != nil {
				accountKey := ratelimit.ByHeader(cfg.AccountHeader)
				r.Use(ratelimit.Middleware(deps.Limiter, ratelimit.WithPrefix("generate", accountKey)))
			}
			r.Post("/generate", h.generate)
			r.Post("/generate/variation", h.variation)
		})

		r.Get("/content", h.listContent)
		r.Get("/content/{id}", h.getContent)
		r.Patch("/content/{id}/rating", h.rateContent)

		r.Post("/billing/checkout", h.createCheckout)
	})

	return r
}

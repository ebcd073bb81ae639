package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/copymakerhq/copymaker/pkg/billing"
	"github.com/copymakerhq/copymaker/pkg/content"
	"github.com/copymakerhq/copymaker/pkg/entitlement"
	"github.com/copymakerhq/copymaker/pkg/profile"
)

// Webhook payloads are small; anything larger is hostile.
const maxWebhookBody = 1 << 20

type handlers struct {
	cfg          Config
	entitlements *entitlement.Service
	reconciler   *entitlement.Reconciler
	profiles     *profile.Service
	content      *content.Service
	billing      billing.Provider
	log          *slog.Logger
}

type accountResponse struct {
	ID               string    `json:"id"`
	Plan             string    `json:"plan"`
	CreditsRemaining int       `json:"credits_remaining"`
	LastCreditsReset time.Time `json:"last_credits_reset"`
}

func toAccountResponse(acc *entitlement.Account) accountResponse {
	return accountResponse{
		ID:               acc.ID,
		Plan:             string(acc.Plan),
		CreditsRemaining: acc.CreditsRemaining,
		LastCreditsReset: acc.LastCreditsReset,
	}
}

// me provisions the account on first sight, mirroring upsert-on-auth.
func (h *handlers) me(w http.ResponseWriter, r *http.Request) {
	acc, err := h.entitlements.GetOrCreate(r.Context(), accountIDFrom(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toAccountResponse(acc))
}

type profileRequest struct {
	Name           string `json:"name"`
	TargetAudience string `json:"target_audience"`
	ContentGoal    string `json:"content_goal"`
	ToneOfVoice    string `json:"tone_of_voice"`
	Keywords       string `json:"keywords"`
}

func (req profileRequest) toInput() profile.Input {
	return profile.Input{
		Name:           req.Name,
		TargetAudience: req.TargetAudience,
		ContentGoal:    req.ContentGoal,
		ToneOfVoice:    req.ToneOfVoice,
		Keywords:       req.Keywords,
	}
}

type profileResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	TargetAudience string    `json:"target_audience"`
	ContentGoal    string    `json:"content_goal"`
	ToneOfVoice    string    `json:"tone_of_voice"`
	Keywords       string    `json:"keywords,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toProfileResponse(p *profile.NicheProfile) profileResponse {
	return profileResponse{
		ID:             p.ID,
		Name:           p.Name,
		TargetAudience: p.TargetAudience,
		ContentGoal:    string(p.ContentGoal),
		ToneOfVoice:    string(p.ToneOfVoice),
		Keywords:       p.Keywords,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (h *handlers) createProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "malformed JSON body")
		return
	}

	p, err := h.profiles.Create(r.Context(), accountIDFrom(r.Context()), req.toInput())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toProfileResponse(p))
}

func (h *handlers) listProfiles(w http.ResponseWriter, r *http.Request) {
	list, err := h.profiles.List(r.Context(), accountIDFrom(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]profileResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProfileResponse(p))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *handlers) getProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "profile ID must be a UUID")
		return
	}

	p, err := h.profiles.Get(r.Context(), accountIDFrom(r.Context()), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProfileResponse(p))
}

func (h *handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "profile ID must be a UUID")
		return
	}

	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "malformed JSON body")
		return
	}

	p, err := h.profiles.Update(r.Context(), accountIDFrom(r.Context()), id, req.toInput())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProfileResponse(p))
}

func (h *handlers) deleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "profile ID must be a UUID")
		return
	}

	if err := h.profiles.Delete(r.Context(), accountIDFrom(r.Context()), id); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type generateRequest struct {
	ProfileID uuid.UUID         `json:"profile_id"`
	Type      string            `json:"type"`
	Input     map[string]string `json:"input"`
}

type contentResponse struct {
	ID        uuid.UUID         `json:"id"`
	ProfileID uuid.UUID         `json:"profile_id"`
	Type      string            `json:"type"`
	Input     map[string]string `json:"input"`
	Text      string            `json:"text"`
	Rating    *int              `json:"rating,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func toContentResponse(c *content.GeneratedContent) contentResponse {
	return contentResponse{
		ID:        c.ID,
		ProfileID: c.ProfileID,
		Type:      string(c.Type),
		Input:     c.Input,
		Text:      c.Text,
		Rating:    c.Rating,
		CreatedAt: c.CreatedAt,
	}
}

type generationResponse struct {
	Content          contentResponse `json:"content"`
	CreditsRemaining int             `json:"credits_remaining"`
	Plan             string          `json:"plan"`
}

func toGenerationResponse(result *content.GenerationResult) generationResponse {
	return generationResponse{
		Content:          toContentResponse(result.Content),
		CreditsRemaining: result.Remaining,
		Plan:             string(result.Plan),
	}
}

func (h *handlers) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "malformed JSON body")
		return
	}

	contentType, err := content.ParseContentType(req.Type)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	accountID := accountIDFrom(r.Context())
	if _, err := h.entitlements.GetOrCreate(r.Context(), accountID); err != nil {
		respondDomainError(w, err)
		return
	}

	result, err := h.content.Generate(r.Context(), accountID, content.GenerateInput{
		ProfileID: req.ProfileID,
		Type:      contentType,
		Input:     req.Input,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toGenerationResponse(result))
}

type variationRequest struct {
	ContentID uuid.UUID `json:"content_id"`
}

func (h *handlers) variation(w http.ResponseWriter, r *http.Request) {
	var req variationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "malformed JSON body")
		return
	}

	result, err := h.content.Variation(r.Context(), accountIDFrom(r.Context()), req.ContentID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toGenerationResponse(result))
}

func (h *handlers) listContent(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.List(r.Context(), accountIDFrom(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]contentResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toContentResponse(c))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *handlers) getContent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "content ID must be a UUID")
		return
	}

	c, err := h.content.Get(r.Context(), accountIDFrom(r.Context()), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toContentResponse(c))
}

type ratingRequest struct {
	Rating int `json:"rating"`
}

func (h *handlers) rateContent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "content ID must be a UUID")
		return
	}

	var req ratingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "malformed JSON body")
		return
	}

	if err := h.content.Rate(r.Context(), accountIDFrom(r.Context()), id, req.Rating); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type checkoutResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (h *handlers) createCheckout(w http.ResponseWriter, r *http.Request) {
	accountID := accountIDFrom(r.Context())
	acc, err := h.entitlements.GetOrCreate(r.Context(), accountID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	sess, err := h.billing.CreateCheckoutSession(r.Context(), billing.CheckoutRequest{
		AccountID:  accountID,
		CustomerID: acc.BillingCustomerID,
		SuccessURL: h.cfg.CheckoutSuccessURL,
		CancelURL:  h.cfg.CheckoutCancelURL,
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "checkout session creation failed",
			slog.String("account_id", accountID), slog.Any("error", err))
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, checkoutResponse{ID: sess.ID, URL: sess.URL})
}

// billingWebhook acknowledges with 200 whenever the event was either applied
// or deliberately dropped; only signature, parse, and storage failures make
// the provider redeliver.
func (h *handlers) billingWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "failed to read webhook payload")
		return
	}

	event, err := h.billing.ParseWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		h.log.WarnContext(r.Context(), "webhook rejected", slog.Any("error", err))
		respondError(w, http.StatusBadRequest, "invalid_webhook", "webhook verification or parsing failed")
		return
	}
	if event == nil {
		respondJSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	if err := h.reconciler.Handle(r.Context(), event); err != nil {
		if errors.Is(err, entitlement.ErrMalformedBillingEvent) {
			respondError(w, http.StatusBadRequest, "invalid_webhook", "billing event is missing required references")
			return
		}
		h.log.ErrorContext(r.Context(), "billing event reconciliation failed",
			slog.String("event_type", string(event.Type)), slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to apply billing event")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"received": true})
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/copymakerhq/copymaker/pkg/billing"
	"github.com/copymakerhq/copymaker/pkg/content"
	"github.com/copymakerhq/copymaker/pkg/entitlement"
	"github.com/copymakerhq/copymaker/pkg/profile"
)

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

// respondDomainError maps service errors to transport responses. Ownership
// mismatches answer 404 like missing resources so the API does not confirm
// that a foreign ID exists.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entitlement.ErrCreditsExhausted):
		respondError(w, http.StatusPaymentRequired, "credits_exhausted",
			"weekly credit allowance is used up, upgrade to premium for unlimited generations")
	case errors.Is(err, entitlement.ErrAccountNotFound),
		errors.Is(err, profile.ErrProfileNotFound),
		errors.Is(err, profile.ErrNotProfileOwner),
		errors.Is(err, content.ErrContentNotFound),
		errors.Is(err, content.ErrNotContentOwner):
		respondError(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, profile.ErrNameRequired),
		errors.Is(err, profile.ErrTargetAudienceRequired),
		errors.Is(err, profile.ErrInvalidContentGoal),
		errors.Is(err, profile.ErrInvalidToneOfVoice),
		errors.Is(err, content.ErrInvalidContentType),
		errors.Is(err, content.ErrInvalidRating):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, content.ErrGenerationFailed),
		errors.Is(err, content.ErrEmptyCompletion):
		respondError(w, http.StatusBadGateway, "generation_failed",
			"content generation failed, the spent credit is not refunded")
	case errors.Is(err, billing.ErrNoCheckoutURL):
		respondError(w, http.StatusBadGateway, "billing_unavailable", "checkout could not be created")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// decodeJSON parses a request body, rejecting unknown fields so client typos
// surface as errors instead of silently dropped settings.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

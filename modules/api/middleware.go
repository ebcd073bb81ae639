package api

import (
	"context"
	"net/http"
)

type ctxKey int

const accountIDKey ctxKey = iota

// AccountAuth extracts the authenticated account ID from the trusted header
// set by the upstream gateway. Requests without it are rejected; the API
// never serves anonymous traffic.
func AccountAuth(header string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountID := r.Header.Get(header)
			if accountID == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized", "missing account identity")
				return
			}
			ctx := context.WithValue(r.Context(), accountIDKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func accountIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(accountIDKey).(string)
	return id
}

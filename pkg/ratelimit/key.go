package ratelimit

import "net/http"

// KeyFunc extracts the rate limit key from a request. An empty key skips
// limiting for that request.
type KeyFunc func(r *http.Request) string

// ByHeader keys requests by a header value, typically the authenticated
// account identifier.
func ByHeader(name string) KeyFunc {
	return func(r *http.Request) string {
		return r.Header.Get(name)
	}
}

// WithPrefix namespaces the keys of another KeyFunc so separate endpoints get
// independent windows.
func WithPrefix(prefix string, fn KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		key := fn(r)
		if key == "" {
			return ""
		}
		return prefix + ":" + key
	}
}

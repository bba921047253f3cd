package middleware

import (
	"context"
	"net/http"

	"roomly/pkg/sanitizer"
)

const IdentityHeader = "X-Requested-By"

const identityKey contextKey = "acting_identity"

// Identity extracts the acting identity from the request header and stores
// it on the context. The service never authenticates, it only attributes:
// the header value is an opaque id issued by the auth collaborator upstream.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := sanitizer.SanitizeIdentity(r.Header.Get(IdentityHeader))
			if identity != "" {
				ctx := context.WithValue(r.Context(), identityKey, identity)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromContext returns the acting identity, or "" when the request
// carried none.
func IdentityFromContext(ctx context.Context) string {
	if v := ctx.Value(identityKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/rendezvous/pkg/authz"
	"github.com/aussiebroadwan/rendezvous/pkg/slogx"
)

// Authenticator turns a raw bearer token into a verified principal.
type Authenticator interface {
	Authenticate(token string) (authz.Principal, error)
}

// AuthnMiddleware rejects requests without a valid bearer token and places
// the principal into the request context.
func AuthnMiddleware(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get("Authorization")
			scheme, raw, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
				writeBearerError(w, "missing bearer token")
				return
			}

			p, err := a.Authenticate(strings.TrimSpace(raw))
			if err != nil {
				slogx.FromContext(ctx).Warn("jwt verify failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			ctx = WithPrincipal(ctx, p)
			ctx = slogx.With(ctx, "user_id", p.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthnMiddleware places the principal into the request context
// when a valid bearer token is present. Requests without one, or with a
// token that fails verification, continue anonymously.
func OptionalAuthnMiddleware(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			scheme, raw, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if ok && strings.EqualFold(scheme, "Bearer") && strings.TrimSpace(raw) != "" {
				if p, err := a.Authenticate(strings.TrimSpace(raw)); err == nil {
					ctx = WithPrincipal(ctx, p)
					ctx = slogx.With(ctx, "user_id", p.ID)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type bearerError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// RFC 6750 error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, bearerError{Error: "invalid_token", ErrorDescription: desc})
}

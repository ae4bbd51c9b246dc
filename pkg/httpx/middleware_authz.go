package httpx

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/rendezvous/pkg/authz"
	"github.com/aussiebroadwan/rendezvous/pkg/slogx"
)

// RequirePolicy admits the request only when the principal satisfies policy.
// It must run after AuthnMiddleware.
func RequirePolicy(policy authz.Policy) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			if authz.Evaluate(p, policy) == authz.Deny {
				slogx.FromContext(r.Context()).Info("authorization denied", "policy", policy.String())
				writeForbidden(w, "requires "+policy.String())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSelf admits the request only when the principal's id equals the
// numeric path value named param.
func RequireSelf(param string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			ownerID, err := strconv.ParseInt(r.PathValue(param), 10, 64)
			if err != nil || authz.EvaluateOwner(p, ownerID) == authz.Deny {
				writeForbidden(w, "only the account owner may do this")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeForbidden(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope"`)
	WriteJSON(w, http.StatusForbidden, bearerError{Error: "access_denied", ErrorDescription: desc})
}

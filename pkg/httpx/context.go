package httpx

import (
	"context"

	"github.com/aussiebroadwan/rendezvous/pkg/authz"
)

type ctxKey string

const ctxKeyPrincipal ctxKey = "principal"

// WithPrincipal stores the verified caller in ctx.
func WithPrincipal(ctx context.Context, p authz.Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

// PrincipalFromContext returns the caller placed by AuthnMiddleware.
func PrincipalFromContext(ctx context.Context) (authz.Principal, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal).(authz.Principal)
	return p, ok
}

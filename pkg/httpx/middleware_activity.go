package httpx

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/rendezvous/pkg/slogx"
)

// ActivityRecorder notes that a user made a request.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, userID int64) error
}

// ActivityMiddleware records the authenticated principal as active once the
// handler has finished. It must run after AuthnMiddleware. Failures are
// logged and never change the response.
func ActivityMiddleware(rec ActivityRecorder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				return
			}
			ctx := context.WithoutCancel(r.Context())
			if err := rec.RecordActivity(ctx, p.ID); err != nil {
				slogx.FromContext(ctx).Warn("failed to record activity", "err", err)
			}
		})
	}
}

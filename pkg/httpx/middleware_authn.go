package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/clearlens/camwatch/pkg/api"
	"github.com/clearlens/camwatch/pkg/slogx"
)

// Authenticator resolves a raw bearer token into a caller identity.
// Authentication failures of any cause must wrap api.ErrUnauthorized; any
// other error is treated as an infrastructure fault.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*api.Account, error)
}

// AuthnMiddleware guards a route with bearer authentication. Every
// authentication failure produces the same opaque 401 so a caller cannot
// tell a bad signature from an expired or revoked token. Infrastructure
// failures are reported as 503, never as 401.
func AuthnMiddleware(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				api.ErrCouldNotValidateCredentials.WriteError(w)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			acct, err := a.Authenticate(ctx, raw)
			if err != nil {
				if errors.Is(err, api.ErrUnauthorized) {
					log.Warn("bearer authentication failed", "err", err)
					api.ErrCouldNotValidateCredentials.WriteError(w)
					return
				}
				log.Error("authenticator backend failure", "err", err)
				api.ErrStoreUnavailable.WriteError(w)
				return
			}

			// Inject into context for downstream handlers.
			ctx = ContextWithAccount(ctx, acct)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

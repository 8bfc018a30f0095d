package httpx

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/lotusloft/studio/pkg/jwtx"
	"github.com/lotusloft/studio/pkg/slogx"
)

// PrincipalResolver loads the account behind a token subject and exposes
// its authenticated-principal view.
type PrincipalResolver interface {
	Resolve(ctx context.Context, subject string) (Principal, error)
}

const bearerPrefix = "Bearer "

// AuthnMiddleware is the request authentication filter. It runs once per
// request: extract the bearer token, decode it, resolve the principal and
// attach it to the request context.
//
// It never writes a response. Every failure path (missing header, wrong
// scheme, malformed/forged/expired token, unknown subject) degrades to "no
// principal attached" and the request continues anonymously; RequireAuth is
// the gate that rejects anonymous requests on protected routes. Keeping the
// two apart lets public routes share the same filter.
func AuthnMiddleware(codec *jwtx.Codec, resolver PrincipalResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, bearerPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			subject, err := codec.Decode(strings.TrimPrefix(authz, bearerPrefix), time.Now())
			if err != nil {
				// Reason stays in the logs; the caller only ever sees a
				// generic rejection from the gate.
				slogx.FromContext(ctx).Warn("bearer token rejected", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			principal, err := resolver.Resolve(ctx, subject)
			if err != nil {
				slogx.FromContext(ctx).Warn("principal resolution failed", "subject", subject, "err", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(ctx, principal)))
		})
	}
}

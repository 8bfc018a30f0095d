package httpx

import "context"

// Principal is the authenticated identity attached to a request. It is a
// request-scoped projection of an account: the password hash never crosses
// this boundary.
type Principal struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Admin     bool
}

type ctxKey struct{}

// ContextWithPrincipal returns a copy of ctx carrying p.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFromContext reports the principal attached by the authentication
// filter, if any. Absence means the request is anonymous.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}

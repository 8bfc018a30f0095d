package httpx

import "net/http"

// RequireAuth rejects requests that carry no principal with a generic 401.
// Expired, forged and unknown-user tokens are indistinguishable here, so a
// probing client learns nothing about why it was rejected.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFromContext(r.Context()); !ok {
			WriteError(w, r, http.StatusUnauthorized, "Full authentication is required to access this resource")
			return
		}
		next.ServeHTTP(w, r)
	})
}

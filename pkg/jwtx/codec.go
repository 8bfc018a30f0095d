package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the default access token lifetime. The app re-authenticates
// daily, so a day-long token keeps the login flow out of the way.
const DefaultTTL = 24 * time.Hour

var (
	// ErrMalformed reports a token whose structure cannot be parsed.
	ErrMalformed = errors.New("jwtx: malformed token")

	// ErrInvalidSignature reports a token whose signature does not verify
	// against the configured secret.
	ErrInvalidSignature = errors.New("jwtx: invalid signature")

	// ErrExpired reports a structurally valid, correctly signed token whose
	// expiry has passed.
	ErrExpired = errors.New("jwtx: token expired")
)

// Codec issues and decodes signed bearer tokens carrying a single claim:
// the subject (the user's login email). Tokens are HS512-signed with a
// symmetric secret held only by the server process, which keeps
// verification stateless.
//
// The secret is injected at construction; there is no ambient key state.
type Codec struct {
	// Secret is the HMAC signing key. Must be non-empty.
	Secret []byte

	// TTL is the token lifetime. Zero means DefaultTTL.
	TTL time.Duration
}

func (c *Codec) ttl() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return DefaultTTL
}

// Issue produces a signed token for subject with issued-at = now and
// expiry = now + TTL. Deterministic given secret, subject and clock.
func (c *Codec) Issue(subject string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl())),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(c.Secret)
}

// Decode validates raw against the codec's secret at the given instant and
// returns the subject unchanged from what was issued.
//
// Failures map onto exactly one of ErrMalformed, ErrInvalidSignature or
// ErrExpired. A token signed with a different key always yields
// ErrInvalidSignature, regardless of its expiry.
func (c *Codec) Decode(raw string, now time.Time) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)

	var claims jwt.RegisteredClaims
	_, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return c.Secret, nil
	})
	if err != nil {
		// Signature checked before expiry so a forged token never leaks
		// whether its claimed expiry has passed.
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpired
		default:
			return "", ErrMalformed
		}
	}

	return claims.Subject, nil
}

package jwtx

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func testCodec() *Codec {
	return &Codec{Secret: []byte("test-secret"), TTL: time.Hour}
}

func TestIssueDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	c := testCodec()

	for _, subject := range []string{"u1", "yoga@studio.com", "UPPER@Case.Org"} {
		token, err := c.Issue(subject, testNow)
		require.NoError(t, err)

		got, err := c.Decode(token, testNow)
		require.NoError(t, err)
		require.Equal(t, subject, got)
	}
}

func TestDecodeExpiry(t *testing.T) {
	t.Parallel()

	c := testCodec()
	token, err := c.Issue("u1", testNow)
	require.NoError(t, err)

	t.Run("valid just before expiry", func(t *testing.T) {
		got, err := c.Decode(token, testNow.Add(c.TTL-time.Second))
		require.NoError(t, err)
		require.Equal(t, "u1", got)
	})

	t.Run("expired just after expiry", func(t *testing.T) {
		_, err := c.Decode(token, testNow.Add(c.TTL+time.Second))
		require.ErrorIs(t, err, ErrExpired)
	})

	t.Run("expired exactly at expiry", func(t *testing.T) {
		_, err := c.Decode(token, testNow.Add(c.TTL))
		require.ErrorIs(t, err, ErrExpired)
	})
}

func TestDecodeWrongKeyIsAlwaysInvalidSignature(t *testing.T) {
	t.Parallel()

	c := testCodec()
	other := &Codec{Secret: []byte("a-different-secret"), TTL: time.Hour}

	token, err := other.Issue("u1", testNow)
	require.NoError(t, err)

	_, err = c.Decode(token, testNow)
	require.ErrorIs(t, err, ErrInvalidSignature)

	// Even when the foreign token is also expired, the signature failure
	// wins so error kinds never depend on a forged payload.
	_, err = c.Decode(token, testNow.Add(48*time.Hour))
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestDecodeMalformed(t *testing.T) {
	t.Parallel()

	c := testCodec()

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d", "header.payload.sig"} {
		_, err := c.Decode(raw, testNow)
		require.ErrorIs(t, err, ErrMalformed)
	}
}

func TestDecodeRejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	c := testCodec()

	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		IssuedAt:  jwt.NewNumericDate(testNow),
		ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
	}
	hs256, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.Secret)
	require.NoError(t, err)

	_, err = c.Decode(hs256, testNow)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestDecodeRequiresExpiry(t *testing.T) {
	t.Parallel()

	c := testCodec()

	// A token without an exp claim must not be accepted as immortal.
	claims := jwt.RegisteredClaims{Subject: "u1", IssuedAt: jwt.NewNumericDate(testNow)}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(c.Secret)
	require.NoError(t, err)

	_, err = c.Decode(token, testNow)
	require.Error(t, err)
}

func TestDefaultTTLApplied(t *testing.T) {
	t.Parallel()

	c := &Codec{Secret: []byte("test-secret")}
	token, err := c.Issue("u1", testNow)
	require.NoError(t, err)

	_, err = c.Decode(token, testNow.Add(DefaultTTL-time.Minute))
	require.NoError(t, err)

	_, err = c.Decode(token, testNow.Add(DefaultTTL+time.Minute))
	require.ErrorIs(t, err, ErrExpired)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lotusloft/studio/internal/studio/store"
)

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc := &AuthService{Store: newTestStore(t), Codec: newTestCodec()}

	err := svc.Register(ctx, RegisterParams{
		Email:     "yogi@studio.com",
		FirstName: "New",
		LastName:  "Yogi",
		Password:  "password123",
	})
	require.NoError(t, err)

	result, err := svc.Login(ctx, "yogi@studio.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, "yogi@studio.com", result.User.Email)
	require.False(t, result.User.Admin)

	// The token subject round-trips back to the email.
	subject, err := svc.Codec.Decode(result.Token, time.Now())
	require.NoError(t, err)
	require.Equal(t, "yogi@studio.com", subject)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := &AuthService{Store: newTestStore(t), Codec: newTestCodec()}

	params := RegisterParams{
		Email:     "yogi@studio.com",
		FirstName: "First",
		LastName:  "Claim",
		Password:  "password123",
	}
	require.NoError(t, svc.Register(ctx, params))
	require.ErrorIs(t, svc.Register(ctx, params), ErrEmailTaken)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AuthService{Store: st, Codec: newTestCodec()}

	seedUser(t, st, "known@studio.com", "right-password", false)

	_, err := svc.Login(ctx, "known@studio.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "unknown@studio.com", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginEmailIsExactMatch(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AuthService{Store: st, Codec: newTestCodec()}

	seedUser(t, st, "Cased@Studio.com", "password123", false)

	_, err := svc.Login(ctx, "Cased@Studio.com", "password123")
	require.NoError(t, err)

	// No normalization is applied; a different casing is a different account.
	_, err = svc.Login(ctx, "cased@studio.com", "password123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolvePrincipal(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AuthService{Store: st, Codec: newTestCodec()}

	u := seedUser(t, st, "admin@studio.com", "password123", true)

	p, err := svc.Resolve(ctx, "admin@studio.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, p.ID)
	require.Equal(t, "admin@studio.com", p.Email)
	require.Equal(t, "Test", p.FirstName)
	require.Equal(t, "User", p.LastName)
	require.True(t, p.Admin)
}

func TestResolveUnknownSubject(t *testing.T) {
	ctx := context.Background()
	svc := &AuthService{Store: newTestStore(t), Codec: newTestCodec()}

	_, err := svc.Resolve(ctx, "ghost@studio.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

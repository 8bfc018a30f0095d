package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lotusloft/studio/internal/studio/domain"
	"github.com/lotusloft/studio/internal/studio/store"
	"github.com/lotusloft/studio/internal/studio/store/drivers/sqlite"
	"github.com/lotusloft/studio/pkg/cryptox"
	"github.com/lotusloft/studio/pkg/idx"
	"github.com/lotusloft/studio/pkg/jwtx"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestCodec() *jwtx.Codec {
	return &jwtx.Codec{Secret: []byte("test-secret"), TTL: time.Hour}
}

func seedUser(t *testing.T, st store.Store, email, password string, admin bool) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: hash,
		Admin:        admin,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))

	stored, err := st.Users().GetUserByEmail(context.Background(), email)
	require.NoError(t, err)
	return stored
}

func seedTeacher(t *testing.T, st store.Store) domain.Teacher {
	t.Helper()

	tch := domain.Teacher{
		ID:        idx.New().String(),
		FirstName: "Margot",
		LastName:  "DELAHAYE",
	}
	require.NoError(t, st.Teachers().CreateTeacher(context.Background(), tch))

	stored, err := st.Teachers().GetTeacherByID(context.Background(), tch.ID)
	require.NoError(t, err)
	return stored
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lotusloft/studio/internal/studio/store"
)

func testSessionParams(teacherID string) SessionParams {
	return SessionParams{
		Name:        "Yoga session",
		Date:        time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC),
		Description: "A relaxing yoga session",
		TeacherID:   teacherID,
	}
}

func TestSessionCRUD(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &SessionService{Store: st}
	teacher := seedTeacher(t, st)

	created, err := svc.CreateSession(ctx, testSessionParams(teacher.ID))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Yoga session", created.Name)
	require.Equal(t, teacher.ID, created.TeacherID)
	require.Empty(t, created.UserIDs)
	require.False(t, created.CreatedAt.IsZero())

	got, err := svc.GetSessionByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.True(t, got.Date.Equal(created.Date))

	updated, err := svc.UpdateSession(ctx, created.ID, SessionParams{
		Name:        "Evening flow",
		Date:        created.Date.Add(24 * time.Hour),
		Description: "Slower pace",
		TeacherID:   teacher.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "Evening flow", updated.Name)
	require.Equal(t, "Slower pace", updated.Description)

	require.NoError(t, svc.DeleteSession(ctx, created.ID))
	_, err = svc.GetSessionByID(ctx, created.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSessionUnknownIDs(t *testing.T) {
	ctx := context.Background()
	svc := &SessionService{Store: newTestStore(t)}

	_, err := svc.GetSessionByID(ctx, "01JYZYZYZYZYZYZYZYZYZYZYZY")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.UpdateSession(ctx, "01JYZYZYZYZYZYZYZYZYZYZYZY", testSessionParams(""))
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, svc.DeleteSession(ctx, "01JYZYZYZYZYZYZYZYZYZYZYZY"), store.ErrNotFound)
}

func TestCreateSessionWithUnknownTeacherStoresNoTeacher(t *testing.T) {
	ctx := context.Background()
	svc := &SessionService{Store: newTestStore(t)}

	created, err := svc.CreateSession(ctx, testSessionParams("01JYZYZYZYZYZYZYZYZYZYZYZY"))
	require.NoError(t, err)
	require.Empty(t, created.TeacherID)
}

func TestListSessions(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &SessionService{Store: st}
	teacher := seedTeacher(t, st)

	sessions, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	require.Empty(t, sessions)

	first, err := svc.CreateSession(ctx, testSessionParams(teacher.ID))
	require.NoError(t, err)
	second, err := svc.CreateSession(ctx, testSessionParams(""))
	require.NoError(t, err)

	user := seedUser(t, st, "yogi@studio.com", "password123", false)
	require.NoError(t, svc.Participate(ctx, first.ID, user.ID))

	sessions, err = svc.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, []string{user.ID}, sessions[0].UserIDs)
	require.Empty(t, sessions[1].UserIDs)
	require.Equal(t, second.ID, sessions[1].ID)
}

func TestParticipate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &SessionService{Store: st}

	sess, err := svc.CreateSession(ctx, testSessionParams(""))
	require.NoError(t, err)
	user := seedUser(t, st, "yogi@studio.com", "password123", false)

	require.NoError(t, svc.Participate(ctx, sess.ID, user.ID))

	got, err := svc.GetSessionByID(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, []string{user.ID}, got.UserIDs)

	t.Run("already participating", func(t *testing.T) {
		require.ErrorIs(t, svc.Participate(ctx, sess.ID, user.ID), ErrAlreadyParticipating)
	})

	t.Run("unknown session", func(t *testing.T) {
		err := svc.Participate(ctx, "01JYZYZYZYZYZYZYZYZYZYZYZY", user.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.Participate(ctx, sess.ID, "01JYZYZYZYZYZYZYZYZYZYZYZY")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestNoLongerParticipate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &SessionService{Store: st}

	sess, err := svc.CreateSession(ctx, testSessionParams(""))
	require.NoError(t, err)
	user := seedUser(t, st, "yogi@studio.com", "password123", false)

	t.Run("not participating", func(t *testing.T) {
		require.ErrorIs(t, svc.NoLongerParticipate(ctx, sess.ID, user.ID), ErrNotParticipating)
	})

	require.NoError(t, svc.Participate(ctx, sess.ID, user.ID))
	require.NoError(t, svc.NoLongerParticipate(ctx, sess.ID, user.ID))

	got, err := svc.GetSessionByID(ctx, sess.ID)
	require.NoError(t, err)
	require.Empty(t, got.UserIDs)

	t.Run("unknown session", func(t *testing.T) {
		err := svc.NoLongerParticipate(ctx, "01JYZYZYZYZYZYZYZYZYZYZYZY", user.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestDeleteUserCascadesParticipations(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	sessions := &SessionService{Store: st}
	users := &UserService{Store: st}

	sess, err := sessions.CreateSession(ctx, testSessionParams(""))
	require.NoError(t, err)
	user := seedUser(t, st, "yogi@studio.com", "password123", false)
	require.NoError(t, sessions.Participate(ctx, sess.ID, user.ID))

	require.NoError(t, users.DeleteUser(ctx, user.ID))

	got, err := sessions.GetSessionByID(ctx, sess.ID)
	require.NoError(t, err)
	require.Empty(t, got.UserIDs)
}

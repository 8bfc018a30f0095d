package service

import (
	"context"
	"errors"
	"time"

	"github.com/lotusloft/studio/internal/studio/domain"
	"github.com/lotusloft/studio/internal/studio/store"
	"github.com/lotusloft/studio/pkg/idx"
	"github.com/lotusloft/studio/pkg/slogx"
)

var (
	ErrAlreadyParticipating = errors.New("already_participating")
	ErrNotParticipating     = errors.New("not_participating")
)

type SessionService struct {
	Store store.Store
}

// SessionParams are the writable fields of a session.
type SessionParams struct {
	Name        string
	Date        time.Time
	Description string
	TeacherID   string
}

// ListSessions returns all sessions with participants loaded.
func (s *SessionService) ListSessions(ctx context.Context) ([]domain.Session, error) {
	return s.Store.Sessions().ListSessions(ctx)
}

// GetSessionByID fetches a session by id.
func (s *SessionService) GetSessionByID(ctx context.Context, sessionID string) (domain.Session, error) {
	return s.Store.Sessions().GetSessionByID(ctx, sessionID)
}

// CreateSession inserts a new session and returns it fully loaded.
func (s *SessionService) CreateSession(ctx context.Context, p SessionParams) (domain.Session, error) {
	sess := domain.Session{
		ID:          idx.New().String(),
		Name:        p.Name,
		Date:        p.Date,
		Description: p.Description,
		TeacherID:   s.resolveTeacher(ctx, p.TeacherID),
	}
	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		return domain.Session{}, err
	}
	return s.Store.Sessions().GetSessionByID(ctx, sess.ID)
}

// UpdateSession rewrites the writable fields of an existing session and
// returns the updated record. Returns store.ErrNotFound for unknown ids.
func (s *SessionService) UpdateSession(ctx context.Context, sessionID string, p SessionParams) (domain.Session, error) {
	err := s.Store.Sessions().UpdateSession(ctx, domain.Session{
		ID:          sessionID,
		Name:        p.Name,
		Date:        p.Date,
		Description: p.Description,
		TeacherID:   s.resolveTeacher(ctx, p.TeacherID),
	})
	if err != nil {
		return domain.Session{}, err
	}
	return s.Store.Sessions().GetSessionByID(ctx, sessionID)
}

// DeleteSession removes a session. Returns store.ErrNotFound for unknown ids.
func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	if _, err := s.Store.Sessions().GetSessionByID(ctx, sessionID); err != nil {
		return err
	}
	return s.Store.Sessions().DeleteSession(ctx, sessionID)
}

// Participate signs a user up for a session. The membership check and the
// insert run in one transaction so concurrent signups cannot double-book.
func (s *SessionService) Participate(ctx context.Context, sessionID, userID string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Sessions().GetSessionByID(ctx, sessionID); err != nil {
			return err
		}
		if _, err := tx.Users().GetUserByID(ctx, userID); err != nil {
			return err
		}

		joined, err := tx.Sessions().IsParticipant(ctx, sessionID, userID)
		if err != nil {
			return err
		}
		if joined {
			return ErrAlreadyParticipating
		}

		return tx.Sessions().AddParticipant(ctx, sessionID, userID)
	})
}

// NoLongerParticipate takes a user off a session they are signed up for.
func (s *SessionService) NoLongerParticipate(ctx context.Context, sessionID, userID string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Sessions().GetSessionByID(ctx, sessionID); err != nil {
			return err
		}

		joined, err := tx.Sessions().IsParticipant(ctx, sessionID, userID)
		if err != nil {
			return err
		}
		if !joined {
			return ErrNotParticipating
		}

		return tx.Sessions().RemoveParticipant(ctx, sessionID, userID)
	})
}

// resolveTeacher keeps only teacher ids that reference an existing teacher.
// An unknown id stores no teacher rather than failing the write.
func (s *SessionService) resolveTeacher(ctx context.Context, teacherID string) string {
	if teacherID == "" {
		return ""
	}
	if _, err := s.Store.Teachers().GetTeacherByID(ctx, teacherID); err != nil {
		slogx.FromContext(ctx).Warn("session references unknown teacher", "teacher_id", teacherID)
		return ""
	}
	return teacherID
}

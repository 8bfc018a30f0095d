package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/lotusloft/studio/internal/studio/domain"
	"github.com/lotusloft/studio/internal/studio/store"
)

type sessionsRepo struct {
	q dbtx
}

const sessionColumns = `id, name, date, description, teacher_id, created_at, updated_at`

func scanSession(row interface{ Scan(...any) error }) (domain.Session, error) {
	var s domain.Session
	var teacherID sql.NullString
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Date,
		&s.Description,
		&teacherID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	s.TeacherID = mapNullString(teacherID)
	return s, err
}

func (r *sessionsRepo) GetSessionByID(ctx context.Context, id string) (domain.Session, error) {
	s, err := scanSession(r.q.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id))
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}

	s.UserIDs, err = r.participantIDs(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	return s, nil
}

func (r *sessionsRepo) ListSessions(ctx context.Context) ([]domain.Session, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []domain.Session{}
	index := map[string]int{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		s.UserIDs = []string{}
		index[s.ID] = len(sessions)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Load all participants in one pass instead of a query per session.
	prows, err := r.q.QueryContext(ctx,
		`SELECT session_id, user_id FROM session_users ORDER BY created_at, user_id`)
	if err != nil {
		return nil, err
	}
	defer prows.Close()

	for prows.Next() {
		var sessionID, userID string
		if err := prows.Scan(&sessionID, &userID); err != nil {
			return nil, err
		}
		if i, ok := index[sessionID]; ok {
			sessions[i].UserIDs = append(sessions[i].UserIDs, userID)
		}
	}
	return sessions, prows.Err()
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO sessions (id, name, date, description, teacher_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.Date.UTC(), s.Description, mapStringNull(s.TeacherID), now, now,
	)
	return mapConstraint(err)
}

func (r *sessionsRepo) UpdateSession(ctx context.Context, s domain.Session) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE sessions SET name = ?, date = ?, description = ?, teacher_id = ?, updated_at = ?
		 WHERE id = ?`,
		s.Name, s.Date.UTC(), s.Description, mapStringNull(s.TeacherID), time.Now().UTC(), s.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID)
	return err
}

func (r *sessionsRepo) IsParticipant(ctx context.Context, sessionID, userID string) (bool, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM session_users WHERE session_id = ? AND user_id = ?`,
		sessionID, userID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *sessionsRepo) AddParticipant(ctx context.Context, sessionID, userID string) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO session_users (session_id, user_id, created_at) VALUES (?, ?, ?)`,
		sessionID, userID, time.Now().UTC(),
	)
	return mapConstraint(err)
}

func (r *sessionsRepo) RemoveParticipant(ctx context.Context, sessionID, userID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM session_users WHERE session_id = ? AND user_id = ?`,
		sessionID, userID,
	)
	return err
}

func (r *sessionsRepo) participantIDs(ctx context.Context, sessionID string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT user_id FROM session_users WHERE session_id = ? ORDER BY created_at, user_id`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

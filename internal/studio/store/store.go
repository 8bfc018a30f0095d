package store

import (
	"context"
	"errors"

	"github.com/lotusloft/studio/internal/studio/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. It exposes sub-repositories to keep concerns tidy
// and testable.
type Store interface {
	Users() Users
	Teachers() Teachers
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used at login and by the principal resolver. The
	// match is exact, as stored; no normalization is applied.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ExistsByEmail reports whether an account already uses email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// DeleteUser cascades to session participations (per schema).
	DeleteUser(ctx context.Context, userID string) error
}

type Teachers interface {
	// GetTeacherByID returns a teacher by id.
	GetTeacherByID(ctx context.Context, id string) (domain.Teacher, error)

	// ListTeachers returns all teachers ordered by creation date.
	ListTeachers(ctx context.Context) ([]domain.Teacher, error)

	// CreateTeacher inserts a new teacher (id is ULID).
	CreateTeacher(ctx context.Context, t domain.Teacher) error
}

type Sessions interface {
	// GetSessionByID returns a session with its participant ids loaded.
	GetSessionByID(ctx context.Context, id string) (domain.Session, error)

	// ListSessions returns all sessions (participants loaded) ordered by
	// creation date.
	ListSessions(ctx context.Context) ([]domain.Session, error)

	// CreateSession inserts a new session (id is ULID).
	CreateSession(ctx context.Context, s domain.Session) error

	// UpdateSession rewrites name, date, description and teacher_id and
	// bumps updated_at. Participants are managed separately.
	UpdateSession(ctx context.Context, s domain.Session) error

	// DeleteSession cascades to participations (per schema).
	DeleteSession(ctx context.Context, sessionID string) error

	// IsParticipant reports whether the user is signed up for the session.
	IsParticipant(ctx context.Context, sessionID, userID string) (bool, error)

	// AddParticipant signs a user up for a session.
	AddParticipant(ctx context.Context, sessionID, userID string) error

	// RemoveParticipant takes a user off a session.
	RemoveParticipant(ctx context.Context, sessionID, userID string) error
}

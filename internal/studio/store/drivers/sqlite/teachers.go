package sqlite

import (
	"context"
	"time"

	"github.com/lotusloft/studio/internal/studio/domain"
)

type teachersRepo struct {
	q dbtx
}

const teacherColumns = `id, first_name, last_name, created_at, updated_at`

func (r *teachersRepo) GetTeacherByID(ctx context.Context, id string) (domain.Teacher, error) {
	var t domain.Teacher
	err := r.q.QueryRowContext(ctx,
		`SELECT `+teacherColumns+` FROM teachers WHERE id = ?`, id).
		Scan(&t.ID, &t.FirstName, &t.LastName, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Teacher{}, mapNotFound(err)
	}
	return t, nil
}

func (r *teachersRepo) ListTeachers(ctx context.Context) ([]domain.Teacher, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+teacherColumns+` FROM teachers ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := []domain.Teacher{}
	for rows.Next() {
		var t domain.Teacher
		if err := rows.Scan(&t.ID, &t.FirstName, &t.LastName, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

func (r *teachersRepo) CreateTeacher(ctx context.Context, t domain.Teacher) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO teachers (id, first_name, last_name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.FirstName, t.LastName, now, now,
	)
	return mapConstraint(err)
}

package service

import (
	"context"

	"github.com/lotusloft/studio/internal/studio/domain"
	"github.com/lotusloft/studio/internal/studio/store"
	"github.com/lotusloft/studio/pkg/idx"
)

type TeacherService struct {
	Store store.Store
}

// ListTeachers returns all teachers.
func (s *TeacherService) ListTeachers(ctx context.Context) ([]domain.Teacher, error) {
	return s.Store.Teachers().ListTeachers(ctx)
}

// GetTeacherByID fetches a teacher by id.
func (s *TeacherService) GetTeacherByID(ctx context.Context, teacherID string) (domain.Teacher, error) {
	return s.Store.Teachers().GetTeacherByID(ctx, teacherID)
}

// CreateTeacher inserts a new teacher and returns it with its generated id.
func (s *TeacherService) CreateTeacher(ctx context.Context, firstName, lastName string) (domain.Teacher, error) {
	t := domain.Teacher{
		ID:        idx.New().String(),
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := s.Store.Teachers().CreateTeacher(ctx, t); err != nil {
		return domain.Teacher{}, err
	}
	return s.Store.Teachers().GetTeacherByID(ctx, t.ID)
}

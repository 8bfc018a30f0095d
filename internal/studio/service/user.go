package service

import (
	"context"

	"github.com/lotusloft/studio/internal/studio/domain"
	"github.com/lotusloft/studio/internal/studio/store"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// DeleteUser removes an account. Returns store.ErrNotFound when no such
// account exists. Participations cascade per schema.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		return err
	}
	return s.Store.Users().DeleteUser(ctx, userID)
}

package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// IsAdmin reports whether the user holds the ADMIN role. Used as the
// admin-override hook by the comment service.
func (s *UserService) IsAdmin(ctx context.Context, id string) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user.Role == models.RoleAdmin, nil
}

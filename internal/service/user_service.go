package service

import (
	"context"
	"errors"
	"strings"

	"nocturne/internal/models"
	"nocturne/internal/repository"

	"gorm.io/gorm"
)

// UserService reads and syncs identity profiles from the OAuth gateway.
type UserService struct {
	userRepo repository.UserRepository
}

type SyncProfileInput struct {
	UserID    uint
	Name      string
	AvatarURL string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", userID)
		}
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// SyncProfile upserts the display name and avatar the identity gateway hands
// us after login, so comment listings can annotate authors.
func (s *UserService) SyncProfile(ctx context.Context, in SyncProfileInput) (*models.User, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthorizedError("Sign in to update your profile")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}

	user := &models.User{
		ID:        in.UserID,
		Name:      name,
		AvatarURL: strings.TrimSpace(in.AvatarURL),
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

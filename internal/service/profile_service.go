package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"
)

// ProfileService exposes the authenticated user's profile.
type ProfileService interface {
	Get(ctx context.Context, userID uint) (*model.User, error)
	Update(ctx context.Context, userID uint, username, email, pictureURL string) (*model.User, error)
}

type profileService struct {
	userRepo repository.UserRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(userRepo repository.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) Get(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Update applies the non-empty fields and returns the stored profile.
func (s *profileService) Update(ctx context.Context, userID uint, username, email, pictureURL string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if pictureURL != "" {
		user.PictureURL = pictureURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tamarandofir/travelsync_backend/internal/apperrors"
	"github.com/tamarandofir/travelsync_backend/internal/core/domain"
	portsrepo "github.com/tamarandofir/travelsync_backend/internal/core/ports/repositories"
	portssvc "github.com/tamarandofir/travelsync_backend/internal/core/ports/services"
	"github.com/tamarandofir/travelsync_backend/internal/dto"
)

type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	files    portssvc.FileStorageSvc
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, files portssvc.FileStorageSvc) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, files: files}
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies a profile update. Only the user themselves may update;
// the not-found check runs before the ownership verdict. When a new profile
// picture path is supplied, the previous file is removed after a successful
// persist.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, profilePicturePath string, requestingUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}
	if user.UserID != requestingUserID {
		return nil, fmt.Errorf("cannot update another user's profile: %w", apperrors.ErrForbidden)
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	previousPicture := ""
	if profilePicturePath != "" {
		previousPicture = user.ProfilePicture
		user.ProfilePicture = profilePicturePath
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if previousPicture != "" && previousPicture != profilePicturePath {
		_ = s.files.Remove(previousPicture)
	}

	return user, nil
}

// DeleteUser removes the user's own account along with their profile picture file.
func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user for deletion: %w", err)
	}
	if user.UserID != requestingUserID {
		return fmt.Errorf("cannot delete another user's account: %w", apperrors.ErrForbidden)
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if user.ProfilePicture != "" {
		_ = s.files.Remove(user.ProfilePicture)
	}
	return nil
}

// CreateOAuthUser finds a user by provider identity, falling back to email so
// an existing local account is reused rather than duplicated, and creates a
// fresh account on first sign-in.
func (s *userService) CreateOAuthUser(ctx context.Context, provider string, providerUserID string, email string, name string, picture string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderDetails(ctx, provider, providerUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up provider identity: %w", err)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	user, err = s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	now := time.Now()
	newUser := domain.User{
		UserID:         uuid.NewString(),
		Email:          email,
		Username:       name,
		ProfilePicture: picture,
		AuthProvider:   provider,
		ProviderUserID: providerUserID,
		RefreshTokens:  []string{},
		Timestamps:     domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create oauth user: %w", err)
	}
	return &newUser, nil
}

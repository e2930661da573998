package services

import (
	"context"

	"github.com/tamarandofir/travelsync_backend/internal/core/domain"
	"github.com/tamarandofir/travelsync_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// UpdateUser updates a user's own profile. requestingUserID must equal
	// userID; otherwise apperrors.ErrForbidden.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, profilePicturePath string, requestingUserID string) (*domain.User, error)

	// DeleteUser removes a user's own account.
	DeleteUser(ctx context.Context, userID string, requestingUserID string) error

	// CreateOAuthUser finds or creates a user from an external provider identity.
	CreateOAuthUser(ctx context.Context, provider string, providerUserID string, email string, name string, picture string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}

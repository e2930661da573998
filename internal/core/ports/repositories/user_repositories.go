package repositories

import (
	"context"

	"github.com/tamarandofir/travelsync_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their (lowercase) email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByProviderDetails retrieves a user by external auth provider identity.
	FindUserByProviderDetails(ctx context.Context, authProvider string, providerUserID string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// email is already taken.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error

	// DeleteUser removes a user.
	DeleteUser(ctx context.Context, userID string) error
}

// RefreshTokenWriter mutates the refresh-token set stored inline on a user.
type RefreshTokenWriter interface {
	// AppendRefreshToken adds a token value to the user's stored set.
	AppendRefreshToken(ctx context.Context, userID string, refreshToken string) error

	// RotateRefreshToken atomically removes oldToken and appends newToken.
	RotateRefreshToken(ctx context.Context, userID string, oldToken string, newToken string) error

	// RemoveRefreshToken removes a single token value from the user's stored set.
	RemoveRefreshToken(ctx context.Context, userID string, refreshToken string) error

	// ClearRefreshTokens empties the user's stored set, revoking every session.
	ClearRefreshTokens(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	RefreshTokenWriter
}

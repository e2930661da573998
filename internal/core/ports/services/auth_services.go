package services

import (
	"context"
	"mime/multipart"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"github.com/tamarandofir/travelsync_backend/internal/core/domain"
	"github.com/tamarandofir/travelsync_backend/internal/dto"
)

// TokenSvcFacade is the token issuer: it mints access/refresh pairs and
// verifies individual tokens.
type TokenSvcFacade interface {
	// IssueTokenPair signs an access token and a refresh token for the user.
	// Both carry only the user identity; they differ in expiry.
	IssueTokenPair(ctx context.Context, userID string) (*dto.TokenPairResponse, error)

	// VerifyToken validates signature and expiry and returns the user ID the
	// token was issued for. Any failure is apperrors.ErrUnauthorized.
	VerifyToken(ctx context.Context, tokenString string) (string, error)
}

// SessionSvcFacade orchestrates registration, login, refresh rotation and
// logout against the user store and the token issuer.
type SessionSvcFacade interface {
	// Register creates a user and returns a first token pair. On any failure
	// a previously stored profile picture is deleted as a compensating action.
	Register(ctx context.Context, req dto.RegisterRequest, profilePicturePath string) (*dto.TokenPairResponse, error)

	// Login verifies credentials and appends a fresh refresh token to the
	// user's stored set. Unknown email and wrong password are indistinguishable.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenPairResponse, error)

	// Refresh exchanges a refresh token for a new pair, enforcing single use.
	// A verified token missing from the stored set revokes every session.
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error)

	// Logout removes exactly the supplied refresh token from the stored set.
	Logout(ctx context.Context, refreshToken string) error

	// LoginWithGoogle signs in (or registers) a user from a verified Google
	// ID token and issues a token pair.
	LoginWithGoogle(ctx context.Context, idTokenString string) (*dto.TokenPairResponse, error)

	// LoginWithGoogleProfile signs in (or registers) a user from profile data
	// already fetched from Google (redirect callback flow) and issues a token
	// pair.
	LoginWithGoogleProfile(ctx context.Context, info *domain.GoogleUserInfo) (*dto.TokenPairResponse, error)
}

// GoogleOAuthSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// GetUserInfo uses the access token to get user information from Google.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}

// FileStorageSvc abstracts uploaded-photo persistence so services can run the
// compensating deletes without knowing the filesystem layout.
type FileStorageSvc interface {
	SaveProfilePicture(userID string, file *multipart.FileHeader) (string, error)
	SavePostPhotos(postID string, files []*multipart.FileHeader) ([]string, error)
	Remove(path string) error
	RemoveAll(paths []string)
}

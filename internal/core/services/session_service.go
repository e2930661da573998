package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tamarandofir/travelsync_backend/internal/apperrors"
	"github.com/tamarandofir/travelsync_backend/internal/core/domain"
	portsrepo "github.com/tamarandofir/travelsync_backend/internal/core/ports/repositories"
	portssvc "github.com/tamarandofir/travelsync_backend/internal/core/ports/services"
	"github.com/tamarandofir/travelsync_backend/internal/dto"
	"github.com/tamarandofir/travelsync_backend/internal/utils"
)

// sessionService implements SessionSvcFacade. Session state is implicit in
// the refresh-token set stored on the user row: every login and refresh
// appends a token, every refresh and logout removes one, and detecting reuse
// of an already-consumed token clears the whole set.
type sessionService struct {
	userRepo    portsrepo.UserRepositoryFacade
	tokens      portssvc.TokenSvcFacade
	users       portssvc.UserSvcFacade
	googleOAuth portssvc.GoogleOAuthSvcFacade
	files       portssvc.FileStorageSvc
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(
	userRepo portsrepo.UserRepositoryFacade,
	tokens portssvc.TokenSvcFacade,
	users portssvc.UserSvcFacade,
	googleOAuth portssvc.GoogleOAuthSvcFacade,
	files portssvc.FileStorageSvc,
) portssvc.SessionSvcFacade {
	return &sessionService{
		userRepo:    userRepo,
		tokens:      tokens,
		users:       users,
		googleOAuth: googleOAuth,
		files:       files,
	}
}

// Register creates a user with an empty refresh-token set, issues a first
// token pair and stores the refresh token. On any failure the uploaded
// profile picture (if any) is deleted so no orphaned file remains.
func (s *sessionService) Register(ctx context.Context, req dto.RegisterRequest, profilePicturePath string) (*dto.TokenPairResponse, error) {
	pair, err := s.register(ctx, req, profilePicturePath)
	if err != nil && profilePicturePath != "" {
		_ = s.files.Remove(profilePicturePath)
	}
	return pair, err
}

func (s *sessionService) register(ctx context.Context, req dto.RegisterRequest, profilePicturePath string) (*dto.TokenPairResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:         uuid.NewString(),
		Email:          email,
		Username:       req.Username,
		PasswordHash:   passwordHash,
		ProfilePicture: profilePicturePath,
		AuthProvider:   "local",
		RefreshTokens:  []string{},
		Timestamps:     domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	pair, err := s.tokens.IssueTokenPair(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token pair: %w", err)
	}
	if err := s.userRepo.AppendRefreshToken(ctx, user.UserID, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return pair, nil
}

// Login verifies credentials and issues a new token pair. Unknown email and
// wrong password produce the same ErrUnauthorized so callers cannot tell
// which field was wrong.
func (s *sessionService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenPairResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthorized)
	}

	pair, err := s.tokens.IssueTokenPair(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token pair: %w", err)
	}
	if err := s.userRepo.AppendRefreshToken(ctx, user.UserID, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return pair, nil
}

// Refresh exchanges a refresh token for a new pair. The used token is removed
// from the stored set so it can never be replayed. A token that verifies but
// is not in the set is treated as a compromise signal: the whole set is
// cleared, revoking every active session for that user.
func (s *sessionService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	user, err := s.resolveRefreshTokenUser(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(user.RefreshTokens, refreshToken) {
		if err := s.userRepo.ClearRefreshTokens(ctx, user.UserID); err != nil {
			return nil, fmt.Errorf("failed to revoke sessions: %w", err)
		}
		return nil, fmt.Errorf("refresh token already used: %w", apperrors.ErrUnauthorized)
	}

	pair, err := s.tokens.IssueTokenPair(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token pair: %w", err)
	}
	if err := s.userRepo.RotateRefreshToken(ctx, user.UserID, refreshToken, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return pair, nil
}

// Logout removes exactly the supplied refresh token from the stored set.
// An unknown token fails with ErrUnauthorized but does not clear the set:
// logout is not a compromise signal.
func (s *sessionService) Logout(ctx context.Context, refreshToken string) error {
	user, err := s.resolveRefreshTokenUser(ctx, refreshToken)
	if err != nil {
		return err
	}

	if !slices.Contains(user.RefreshTokens, refreshToken) {
		return fmt.Errorf("refresh token not active: %w", apperrors.ErrUnauthorized)
	}

	if err := s.userRepo.RemoveRefreshToken(ctx, user.UserID, refreshToken); err != nil {
		return fmt.Errorf("failed to remove refresh token: %w", err)
	}
	return nil
}

// resolveRefreshTokenUser verifies the token cryptographically and loads the
// claimed user. Both failure modes collapse into ErrUnauthorized.
func (s *sessionService) resolveRefreshTokenUser(ctx context.Context, refreshToken string) (*domain.User, error) {
	userID, err := s.tokens.VerifyToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid refresh token: %w", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

// LoginWithGoogle validates a Google ID token, finds or creates the matching
// user and issues a token pair through the normal session flow.
func (s *sessionService) LoginWithGoogle(ctx context.Context, idTokenString string) (*dto.TokenPairResponse, error) {
	payload, err := s.googleOAuth.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		return nil, fmt.Errorf("invalid google ID token: %w", apperrors.ErrUnauthorized)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	return s.LoginWithGoogleProfile(ctx, &domain.GoogleUserInfo{
		ID:      payload.Subject,
		Email:   email,
		Name:    name,
		Picture: picture,
	})
}

// LoginWithGoogleProfile signs in a user from Google profile data, as
// obtained either from a validated ID token or from the userinfo endpoint
// during the redirect callback flow.
func (s *sessionService) LoginWithGoogleProfile(ctx context.Context, info *domain.GoogleUserInfo) (*dto.TokenPairResponse, error) {
	if info == nil || info.Email == "" || info.ID == "" {
		return nil, fmt.Errorf("essential claims missing from google token: %w", apperrors.ErrUnauthorized)
	}

	user, err := s.users.CreateOAuthUser(ctx, "google", info.ID, info.Email, info.Name, info.Picture)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve google user: %w", err)
	}

	pair, err := s.tokens.IssueTokenPair(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token pair: %w", err)
	}
	if err := s.userRepo.AppendRefreshToken(ctx, user.UserID, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return pair, nil
}

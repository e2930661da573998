package services

import (
	"context"
	"fmt"

	"github.com/tamarandofir/travelsync_backend/internal/apperrors"
	portssvc "github.com/tamarandofir/travelsync_backend/internal/core/ports/services"
	"github.com/tamarandofir/travelsync_backend/internal/dto"
	"github.com/tamarandofir/travelsync_backend/internal/platform/config"
	"github.com/tamarandofir/travelsync_backend/internal/utils"
)

// tokenService implements TokenSvcFacade. Access and refresh tokens are both
// HS256 JWTs signed with the same secret; only the expiry differs, so
// rotating the secret invalidates every outstanding token at once.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// IssueTokenPair signs an access token and a refresh token for the given user.
func (s *tokenService) IssueTokenPair(ctx context.Context, userID string) (*dto.TokenPairResponse, error) {
	accessToken, err := utils.GenerateJWT(userID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := utils.GenerateJWT(userID, s.cfg.JWTSecret, s.cfg.RefreshTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &dto.TokenPairResponse{Token: accessToken, RefreshToken: refreshToken}, nil
}

// VerifyToken validates signature and expiry and returns the subject user ID.
// Signature mismatch, malformed input and expiry all collapse into
// apperrors.ErrUnauthorized; callers must not leak which one it was.
func (s *tokenService) VerifyToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", apperrors.ErrUnauthorized)
	}
	return claims.Subject, nil
}

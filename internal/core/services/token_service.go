package services

import (
	"errors"
	"fmt"

	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	portssvc "github.com/placementpro/enrollment_crm_app/internal/core/ports/services"
	"github.com/placementpro/enrollment_crm_app/internal/platform/config"
	"github.com/placementpro/enrollment_crm_app/internal/utils"
)

var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// tokenService issues the access and refresh JWTs. Access tokens carry the
// user's role so the middleware can gate routes without a DB lookup.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new token service.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) GenerateAccessToken(user *domain.User) (string, error) {
	token, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, nil
}

func (s *tokenService) GenerateRefreshToken(user *domain.User) (string, error) {
	token, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return token, nil
}

func (s *tokenService) ValidateRefreshToken(tokenString string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.RefreshTokenSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
	}
	return claims.Subject, nil
}

package services

import (
	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
)

// TokenSvcFacade issues and validates the bearer tokens carried by every
// authenticated request.
type TokenSvcFacade interface {
	// GenerateAccessToken issues a short-lived JWT carrying the user's ID and role.
	GenerateAccessToken(user *domain.User) (string, error)

	// GenerateRefreshToken issues a long-lived refresh JWT.
	GenerateRefreshToken(user *domain.User) (string, error)

	// ValidateRefreshToken checks a refresh JWT and returns the user ID it names.
	ValidateRefreshToken(tokenString string) (string, error)
}

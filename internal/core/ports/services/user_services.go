package services

import (
	"context"

	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	"github.com/placementpro/enrollment_crm_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves one user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser creates a new user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, actorUserID string) (*domain.User, error)

	// DeactivateUser soft-deletes a user.
	DeactivateUser(ctx context.Context, userID string, actorUserID string) error
}

// UserAuthenticatorSvc defines credential verification for login.
type UserAuthenticatorSvc interface {
	// Authenticate verifies the email/password pair and returns the user.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}

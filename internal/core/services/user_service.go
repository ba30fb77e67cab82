package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/placementpro/enrollment_crm_app/internal/apperrors"
	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	portsrepo "github.com/placementpro/enrollment_crm_app/internal/core/ports/repositories"
	portssvc "github.com/placementpro/enrollment_crm_app/internal/core/ports/services"
	"github.com/placementpro/enrollment_crm_app/internal/dto"
	"github.com/placementpro/enrollment_crm_app/internal/middleware"
	"github.com/placementpro/enrollment_crm_app/internal/utils"
)

var (
	ErrUnknownRole        = errors.New("unknown user role")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// userService manages user accounts and login credential checks.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error) {
	var role *domain.UserRole
	if params.Role != "" {
		r := domain.UserRole(params.Role)
		if !domain.ValidUserRole(r) {
			return nil, fmt.Errorf("%w: %w %q", apperrors.ErrValidation, ErrUnknownRole, params.Role)
		}
		role = &r
	}
	users, err := s.userRepo.FindUsers(ctx, params.Limit, params.Offset, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	if !domain.ValidUserRole(req.Role) {
		return nil, fmt.Errorf("%w: %w %q", apperrors.ErrValidation, ErrUnknownRole, req.Role)
	}
	if _, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicate, req.Email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
		Subrole:      req.Subrole,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()), slog.String("email", req.Email))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	logger.Info("User created", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, actorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.DepartmentID != nil {
		user.DepartmentID = req.DepartmentID
	}
	if req.Subrole != nil {
		user.Subrole = req.Subrole
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.LastUpdatedAt = now
	user.LastUpdatedBy = actorUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) DeactivateUser(ctx context.Context, userID string, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, now, actorUserID); err != nil {
		logger.Error("Failed to deactivate user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	logger.Info("User deactivated", slog.String("user_id", userID), slog.String("actor_id", actorUserID))
	return nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error for unknown email and wrong password.
			return nil, fmt.Errorf("%w: %w", apperrors.ErrForbidden, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if !user.IsActive || user.DeletedAt != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrForbidden, ErrInvalidCredentials)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrForbidden, ErrInvalidCredentials)
	}
	return user, nil
}

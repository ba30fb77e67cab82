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
)

// permissionService manages the RBAC reference data.
type permissionService struct {
	permissionRepo portsrepo.PermissionRepositoryFacade
}

// NewPermissionService creates a new permission service.
func NewPermissionService(permissionRepo portsrepo.PermissionRepositoryFacade) portssvc.PermissionSvcFacade {
	return &permissionService{permissionRepo: permissionRepo}
}

var _ portssvc.PermissionSvcFacade = (*permissionService)(nil)

func (s *permissionService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	departments, err := s.permissionRepo.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

func (s *permissionService) ListActivitiesByDepartment(ctx context.Context, departmentID string) ([]domain.Activity, error) {
	activities, err := s.permissionRepo.ListActivitiesByDepartment(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities for department %s: %w", departmentID, err)
	}
	return activities, nil
}

func (s *permissionService) ListPermissions(ctx context.Context) ([]domain.RolePermission, error) {
	permissions, err := s.permissionRepo.ListRolePermissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return permissions, nil
}

func (s *permissionService) ListPermissionsByDepartment(ctx context.Context, departmentID string) ([]domain.RolePermission, error) {
	permissions, err := s.permissionRepo.ListRolePermissionsByDepartment(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions for department %s: %w", departmentID, err)
	}
	return permissions, nil
}

func (s *permissionService) UpsertPermission(ctx context.Context, req dto.UpsertRolePermissionRequest, actorUserID string) (*domain.RolePermission, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	permission := domain.RolePermission{
		ActivityID:   req.ActivityID,
		DepartmentID: req.DepartmentID,
		Subrole:      req.Subrole,
		CanView:      req.CanView,
		CanAdd:       req.CanAdd,
		CanEdit:      req.CanEdit,
		CanDelete:    req.CanDelete,
	}

	existing, err := s.permissionRepo.FindRolePermission(ctx, req.ActivityID, req.DepartmentID, req.Subrole)
	switch {
	case err == nil:
		permission.PermissionID = existing.PermissionID
		permission.CreatedAt = existing.CreatedAt
		permission.CreatedBy = existing.CreatedBy
	case errors.Is(err, apperrors.ErrNotFound):
		permission.PermissionID = uuid.NewString()
		permission.CreatedAt = now
		permission.CreatedBy = actorUserID
	default:
		return nil, fmt.Errorf("failed to resolve permission tuple: %w", err)
	}
	permission.LastUpdatedAt = now
	permission.LastUpdatedBy = actorUserID

	if err := s.permissionRepo.UpsertRolePermission(ctx, permission); err != nil {
		logger.Error("Failed to upsert permission", slog.String("error", err.Error()), slog.String("activity_id", req.ActivityID), slog.String("subrole", req.Subrole))
		return nil, fmt.Errorf("failed to upsert permission: %w", err)
	}
	logger.Info("Permission upserted", slog.String("permission_id", permission.PermissionID), slog.String("activity_id", req.ActivityID))
	return &permission, nil
}

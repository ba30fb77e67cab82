package services

import (
	"context"

	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	"github.com/placementpro/enrollment_crm_app/internal/dto"
)

// PermissionReaderSvc defines read operations for RBAC data
type PermissionReaderSvc interface {
	// ListDepartments retrieves all departments.
	ListDepartments(ctx context.Context) ([]domain.Department, error)

	// ListActivitiesByDepartment retrieves the activities of one department.
	ListActivitiesByDepartment(ctx context.Context, departmentID string) ([]domain.Activity, error)

	// ListPermissions retrieves all role permission tuples.
	ListPermissions(ctx context.Context) ([]domain.RolePermission, error)

	// ListPermissionsByDepartment retrieves the permission tuples of one department.
	ListPermissionsByDepartment(ctx context.Context, departmentID string) ([]domain.RolePermission, error)
}

// PermissionWriterSvc defines write operations for RBAC data
type PermissionWriterSvc interface {
	// UpsertPermission creates or replaces the flags for a permission tuple.
	UpsertPermission(ctx context.Context, req dto.UpsertRolePermissionRequest, actorUserID string) (*domain.RolePermission, error)
}

// PermissionSvcFacade combines all RBAC service interfaces
type PermissionSvcFacade interface {
	PermissionReaderSvc
	PermissionWriterSvc
}

package repositories

import (
	"context"

	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
)

// PermissionReader defines read operations for RBAC reference data
type PermissionReader interface {
	// ListDepartments retrieves all departments.
	ListDepartments(ctx context.Context) ([]domain.Department, error)

	// ListActivitiesByDepartment retrieves the activities of one department.
	ListActivitiesByDepartment(ctx context.Context, departmentID string) ([]domain.Activity, error)

	// ListRolePermissions retrieves all role permission tuples.
	ListRolePermissions(ctx context.Context) ([]domain.RolePermission, error)

	// ListRolePermissionsByDepartment retrieves the permission tuples of one department.
	ListRolePermissionsByDepartment(ctx context.Context, departmentID string) ([]domain.RolePermission, error)

	// FindRolePermission resolves the flags for one (activity, department, subrole)
	// tuple; ErrNotFound when no tuple exists.
	FindRolePermission(ctx context.Context, activityID, departmentID, subrole string) (*domain.RolePermission, error)
}

// PermissionWriter defines write operations for RBAC data
type PermissionWriter interface {
	// UpsertRolePermission creates or replaces the flags for a permission tuple.
	UpsertRolePermission(ctx context.Context, permission domain.RolePermission) error
}

// PermissionRepositoryFacade combines all RBAC repository interfaces
type PermissionRepositoryFacade interface {
	PermissionReader
	PermissionWriter
}

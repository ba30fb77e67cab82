package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placementpro/enrollment_crm_app/internal/apperrors"
	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	portsrepo "github.com/placementpro/enrollment_crm_app/internal/core/ports/repositories"
	"github.com/placementpro/enrollment_crm_app/internal/models"
	"github.com/placementpro/enrollment_crm_app/internal/utils/mapping"
)

type PgxPermissionRepository struct {
	BaseRepository
}

// newPgxPermissionRepository creates a new repository for RBAC reference data.
func newPgxPermissionRepository(pool *pgxpool.Pool) portsrepo.PermissionRepositoryFacade {
	return &PgxPermissionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PermissionRepositoryFacade = (*PgxPermissionRepository)(nil)

const permissionColumns = `
	permission_id, activity_id, dept_id, subrole,
	can_view, can_add, can_edit, can_delete,
	created_at, created_by, last_updated_at, last_updated_by`

func scanRolePermission(row pgx.Row) (*models.RolePermission, error) {
	var m models.RolePermission
	err := row.Scan(
		&m.PermissionID,
		&m.ActivityID,
		&m.DepartmentID,
		&m.Subrole,
		&m.CanView,
		&m.CanAdd,
		&m.CanEdit,
		&m.CanDelete,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxPermissionRepository) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	query := `SELECT dept_id, name, created_at, created_by, last_updated_at, last_updated_by FROM departments ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query departments", err)
	}
	defer rows.Close()

	departments := []domain.Department{}
	for rows.Next() {
		var m models.Department
		if err := rows.Scan(&m.DepartmentID, &m.Name, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan department row", err)
		}
		departments = append(departments, mapping.ToDomainDepartment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating department rows", err)
	}
	return departments, nil
}

func (r *PgxPermissionRepository) ListActivitiesByDepartment(ctx context.Context, departmentID string) ([]domain.Activity, error) {
	query := `
		SELECT activity_id, dept_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM activities
		WHERE dept_id = $1
		ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, departmentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query activities for department "+departmentID, err)
	}
	defer rows.Close()

	activities := []domain.Activity{}
	for rows.Next() {
		var m models.Activity
		if err := rows.Scan(&m.ActivityID, &m.DepartmentID, &m.Name, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan activity row", err)
		}
		activities = append(activities, mapping.ToDomainActivity(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating activity rows", err)
	}
	return activities, nil
}

func (r *PgxPermissionRepository) ListRolePermissions(ctx context.Context) ([]domain.RolePermission, error) {
	query := `SELECT ` + permissionColumns + ` FROM role_permissions ORDER BY dept_id, subrole;`
	return r.queryPermissions(ctx, query)
}

func (r *PgxPermissionRepository) ListRolePermissionsByDepartment(ctx context.Context, departmentID string) ([]domain.RolePermission, error) {
	query := `SELECT ` + permissionColumns + ` FROM role_permissions WHERE dept_id = $1 ORDER BY subrole;`
	return r.queryPermissions(ctx, query, departmentID)
}

func (r *PgxPermissionRepository) queryPermissions(ctx context.Context, query string, args ...interface{}) ([]domain.RolePermission, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query role permissions", err)
	}
	defer rows.Close()

	permissions := []domain.RolePermission{}
	for rows.Next() {
		m, err := scanRolePermission(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan role permission row", err)
		}
		permissions = append(permissions, mapping.ToDomainRolePermission(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating role permission rows", err)
	}
	return permissions, nil
}

func (r *PgxPermissionRepository) FindRolePermission(ctx context.Context, activityID, departmentID, subrole string) (*domain.RolePermission, error) {
	query := `SELECT ` + permissionColumns + ` FROM role_permissions WHERE activity_id = $1 AND dept_id = $2 AND subrole = $3;`
	m, err := scanRolePermission(r.Pool.QueryRow(ctx, query, activityID, departmentID, subrole))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find role permission", err)
	}
	d := mapping.ToDomainRolePermission(*m)
	return &d, nil
}

func (r *PgxPermissionRepository) UpsertRolePermission(ctx context.Context, permission domain.RolePermission) error {
	m := mapping.ToModelRolePermission(permission)
	query := `
		INSERT INTO role_permissions (
			permission_id, activity_id, dept_id, subrole,
			can_view, can_add, can_edit, can_delete,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (activity_id, dept_id, subrole) DO UPDATE SET
			can_view = EXCLUDED.can_view,
			can_add = EXCLUDED.can_add,
			can_edit = EXCLUDED.can_edit,
			can_delete = EXCLUDED.can_delete,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;`
	_, err := r.Pool.Exec(ctx, query,
		m.PermissionID,
		m.ActivityID,
		m.DepartmentID,
		m.Subrole,
		m.CanView,
		m.CanAdd,
		m.CanEdit,
		m.CanDelete,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert role permission "+m.PermissionID, err)
	}
	return nil
}

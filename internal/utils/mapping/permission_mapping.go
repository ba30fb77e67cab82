package mapping

import (
	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	"github.com/placementpro/enrollment_crm_app/internal/models"
)

// ToModelRolePermission converts a domain RolePermission to a model RolePermission
func ToModelRolePermission(d domain.RolePermission) models.RolePermission {
	return models.RolePermission{
		PermissionID: d.PermissionID,
		ActivityID:   d.ActivityID,
		DepartmentID: d.DepartmentID,
		Subrole:      d.Subrole,
		CanView:      d.CanView,
		CanAdd:       d.CanAdd,
		CanEdit:      d.CanEdit,
		CanDelete:    d.CanDelete,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRolePermission converts a model RolePermission to a domain RolePermission
func ToDomainRolePermission(m models.RolePermission) domain.RolePermission {
	return domain.RolePermission{
		PermissionID: m.PermissionID,
		ActivityID:   m.ActivityID,
		DepartmentID: m.DepartmentID,
		Subrole:      m.Subrole,
		CanView:      m.CanView,
		CanAdd:       m.CanAdd,
		CanEdit:      m.CanEdit,
		CanDelete:    m.CanDelete,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDepartment converts a model Department to a domain Department
func ToDomainDepartment(m models.Department) domain.Department {
	return domain.Department{
		DepartmentID: m.DepartmentID,
		Name:         m.Name,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainActivity converts a model Activity to a domain Activity
func ToDomainActivity(m models.Activity) domain.Activity {
	return domain.Activity{
		ActivityID:   m.ActivityID,
		DepartmentID: m.DepartmentID,
		Name:         m.Name,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

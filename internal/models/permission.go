package models

// Department groups activities and subroles for access control.
type Department struct {
	DepartmentID string `json:"departmentID"` // Primary Key (UUID)
	Name         string `json:"name"`
	AuditFields
}

// Activity is a permission-gated unit of functionality within a department.
type Activity struct {
	ActivityID   string `json:"activityID"` // Primary Key (UUID)
	DepartmentID string `json:"departmentID"`
	Name         string `json:"name"`
	AuditFields
}

// RolePermission maps (activity, department, subrole) to CRUD flags.
type RolePermission struct {
	PermissionID string `json:"permissionID"` // Primary Key (UUID)
	ActivityID   string `json:"activityID"`
	DepartmentID string `json:"departmentID"`
	Subrole      string `json:"subrole"`
	CanView      bool   `json:"canView"`
	CanAdd       bool   `json:"canAdd"`
	CanEdit      bool   `json:"canEdit"`
	CanDelete    bool   `json:"canDelete"`
	AuditFields
}

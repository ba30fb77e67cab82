package domain

// Department groups activities and subroles for access control.
type Department struct {
	DepartmentID string `json:"departmentID"`
	Name         string `json:"name"`
	AuditFields
}

// Activity is a permission-gated unit of functionality within a department
// (e.g. "enrollment approval", "payment control").
type Activity struct {
	ActivityID   string `json:"activityID"`
	DepartmentID string `json:"departmentID"`
	Name         string `json:"name"`
	AuditFields
}

// RolePermission maps (activity, department, subrole) to the CRUD flags that
// gate the corresponding UI actions.
type RolePermission struct {
	PermissionID string `json:"permissionID"`
	ActivityID   string `json:"activityID"`
	DepartmentID string `json:"departmentID"`
	Subrole      string `json:"subrole"`
	CanView      bool   `json:"canView"`
	CanAdd       bool   `json:"canAdd"`
	CanEdit      bool   `json:"canEdit"`
	CanDelete    bool   `json:"canDelete"`
	AuditFields
}

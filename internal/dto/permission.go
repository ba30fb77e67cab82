package dto

import "github.com/placementpro/enrollment_crm_app/internal/core/domain"

// UpsertRolePermissionRequest creates or replaces the permission flags for a
// (activity, department, subrole) tuple.
type UpsertRolePermissionRequest struct {
	ActivityID   string `json:"activity_id" binding:"required"`
	DepartmentID string `json:"dept_id" binding:"required"`
	Subrole      string `json:"subrole" binding:"required"`
	CanView      bool   `json:"canView"`
	CanAdd       bool   `json:"canAdd"`
	CanEdit      bool   `json:"canEdit"`
	CanDelete    bool   `json:"canDelete"`
}

// RolePermissionResponse is the wire format for one permission tuple.
type RolePermissionResponse struct {
	PermissionID string `json:"id"`
	ActivityID   string `json:"activity_id"`
	DepartmentID string `json:"dept_id"`
	Subrole      string `json:"subrole"`
	CanView      bool   `json:"canView"`
	CanAdd       bool   `json:"canAdd"`
	CanEdit      bool   `json:"canEdit"`
	CanDelete    bool   `json:"canDelete"`
}

// DepartmentResponse is the wire format for a department.
type DepartmentResponse struct {
	DepartmentID string `json:"id"`
	Name         string `json:"name"`
}

// ActivityResponse is the wire format for an activity.
type ActivityResponse struct {
	ActivityID   string `json:"id"`
	DepartmentID string `json:"dept_id"`
	Name         string `json:"name"`
}

// ToRolePermissionResponse converts a domain.RolePermission.
func ToRolePermissionResponse(p *domain.RolePermission) RolePermissionResponse {
	return RolePermissionResponse{
		PermissionID: p.PermissionID,
		ActivityID:   p.ActivityID,
		DepartmentID: p.DepartmentID,
		Subrole:      p.Subrole,
		CanView:      p.CanView,
		CanAdd:       p.CanAdd,
		CanEdit:      p.CanEdit,
		CanDelete:    p.CanDelete,
	}
}

// ToRolePermissionResponses converts a slice of domain permissions.
func ToRolePermissionResponses(perms []domain.RolePermission) []RolePermissionResponse {
	responses := make([]RolePermissionResponse, len(perms))
	for i := range perms {
		responses[i] = ToRolePermissionResponse(&perms[i])
	}
	return responses
}

// ToDepartmentResponses converts a slice of domain departments.
func ToDepartmentResponses(departments []domain.Department) []DepartmentResponse {
	responses := make([]DepartmentResponse, len(departments))
	for i, d := range departments {
		responses[i] = DepartmentResponse{DepartmentID: d.DepartmentID, Name: d.Name}
	}
	return responses
}

// ToActivityResponses converts a slice of domain activities.
func ToActivityResponses(activities []domain.Activity) []ActivityResponse {
	responses := make([]ActivityResponse, len(activities))
	for i, a := range activities {
		responses[i] = ActivityResponse{ActivityID: a.ActivityID, DepartmentID: a.DepartmentID, Name: a.Name}
	}
	return responses
}

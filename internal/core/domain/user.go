package domain

import "time"

// UserRole defines the workflow role of a user.
type UserRole string

const (
	RoleSales         UserRole = "SALES"
	RoleAdmin         UserRole = "ADMIN"
	RoleFinance       UserRole = "FINANCE"
	RoleMarketingLead UserRole = "MARKETING_TEAM_LEAD"
)

// ValidUserRole reports whether r is one of the known workflow roles.
func ValidUserRole(r UserRole) bool {
	switch r {
	case RoleSales, RoleAdmin, RoleFinance, RoleMarketingLead:
		return true
	}
	return false
}

// User represents a user of the application in the domain.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (e.g., UUID)
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	DepartmentID *string  `json:"departmentID"`
	Subrole      *string  `json:"subrole"`
	IsActive     bool     `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

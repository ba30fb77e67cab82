package models

import "time"

// User represents a user of the application.
type User struct {
	UserID       string  `json:"userID"`
	Name         string  `json:"name"`
	Email        string  `json:"email" db:"email"`
	PasswordHash string  `json:"-" db:"password_hash"`
	Role         string  `json:"role"`
	DepartmentID *string `json:"departmentID" db:"dept_id"`
	Subrole      *string `json:"subrole"`
	IsActive     bool    `json:"isActive" db:"is_active"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}

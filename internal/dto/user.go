package dto

import (
	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
)

// CreateUserRequest defines the data required to create a user.
type CreateUserRequest struct {
	Name         string          `json:"name" binding:"required"`
	Email        string          `json:"email" binding:"required,email"`
	Password     string          `json:"password" binding:"required,min=8"`
	Role         domain.UserRole `json:"role" binding:"required"`
	DepartmentID *string         `json:"departmentID"`
	Subrole      *string         `json:"subrole"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name         *string `json:"name"`
	DepartmentID *string `json:"departmentID"`
	Subrole      *string `json:"subrole"`
	IsActive     *bool   `json:"isActive"`
}

// UserResponse is the wire format for a user.
type UserResponse struct {
	UserID       string  `json:"userID"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	DepartmentID *string `json:"departmentID"`
	Subrole      *string `json:"subrole"`
	IsActive     bool    `json:"isActive"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
	Role   string `form:"role"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		DepartmentID: u.DepartmentID,
		Subrole:      u.Subrole,
		IsActive:     u.IsActive,
	}
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO.
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = ToUserResponse(&user)
	}
	return ListUsersResponse{Users: userResponses}
}

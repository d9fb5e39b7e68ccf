package dto

import "time"

// CreateUserRequest payload.
type CreateUserRequest struct {
	UserName       string `json:"user_name" validate:"required,min=3,max=20"`
	Password       string `json:"password" validate:"required,min=6"`
	Role           string `json:"role" validate:"required"`
	DepartmentName string `json:"department_name" validate:"required"`
	SubRole        string `json:"sub_role"`
}

// UpdateUserRequest payload. An empty password keeps the current one.
type UpdateUserRequest struct {
	Role           string `json:"role" validate:"required"`
	DepartmentName string `json:"department_name" validate:"required"`
	SubRole        string `json:"sub_role"`
	Password       string `json:"password" validate:"omitempty,min=6"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID             string    `json:"id"`
	UserName       string    `json:"user_name"`
	Role           string    `json:"role"`
	DepartmentID   string    `json:"department_id"`
	DepartmentName string    `json:"department_name"`
	SubRole        string    `json:"sub_role,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// DepartmentResponse is a department picker entry.
type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

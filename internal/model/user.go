package model

import "time"

// Role represents a user's role in the school.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
	RoleFinance Role = "finance"
)

// User represents an account: admins, teachers, parents and finance staff.
type User struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name"`
	Phone        string     `json:"phone"`
	Role         Role       `json:"role"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=2,max=120"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateUserRequest is the payload for creating an account.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=2,max=120"`
	Email    string `json:"email" binding:"required,email,max=120"`
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	Role     Role   `json:"role" binding:"required,oneof=admin teacher parent finance"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// UpdateUserRequest is the payload for updating an account.
type UpdateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=120"`
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	IsActive *bool  `json:"is_active" binding:"required"`
	Password string `json:"password" binding:"omitempty,min=6,max=128"`
}

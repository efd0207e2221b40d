package dto

import (
	"time"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

// CreateUserRequest is the input for creating a user (admin only).
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Role     string `json:"role" validate:"required,oneof=admin accountant seller"`
}

// UpdateUserRequest is the input for a partial user update. A nil Password
// keeps the current hash.
type UpdateUserRequest struct {
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin accountant seller"`
	IsActive *bool   `json:"isActive"`
}

// UserResponse is the user output shape. Never carries the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToUserResponse(u *entity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// LoginRequest is the credentials body for /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the authenticated user plus a Bearer token for
// non-browser clients. Browser clients rely on the session cookie instead.
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

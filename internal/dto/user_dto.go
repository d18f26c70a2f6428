package dto

import (
	"time"

	"github.com/docuvia/docuvia-api/internal/models"
)

// RegisterUserRequest captures the payload for user registration.
type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=1,max=255"`
	Role     string `json:"role" validate:"omitempty,oneof=Solicitante Aprobador Admin"`
}

// LoginRequest captures login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateRoleRequest captures a role change for an existing user.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=Solicitante Aprobador Admin"`
}

// UserResponse serializes a user without credential material.
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse carries the identity claims returned after a successful login.
type LoginResponse struct {
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// NewUserResponse maps a user model to its response shape.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}

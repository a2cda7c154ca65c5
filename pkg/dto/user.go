package dto

import "github.com/google/uuid"

type UpdateUserRequest struct {
	Name string `json:"name" validate:"required"`
}

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Plan     string    `json:"plan"`
}

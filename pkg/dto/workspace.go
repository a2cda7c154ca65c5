package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type CreateWorkspaceRequest struct {
	Name     string          `json:"name" validate:"required,max=255"`
	Status   string          `json:"status" validate:"omitempty,oneof=active paused archived deleted"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

func (r *CreateWorkspaceRequest) Normalize() {
	if r.Status == "" {
		r.Status = "active"
	}
}

type UpdateWorkspaceRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=active paused archived deleted"`
}

type WorkspaceResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	OwnerID uuid.UUID `json:"owner_id"`
	Status  string    `json:"status"`
	Role    string    `json:"role,omitempty"`
}

type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role" validate:"omitempty,oneof=owner admin editor viewer"`
}

func (r *AddMemberRequest) Normalize() {
	if r.Role == "" {
		r.Role = "viewer"
	}
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=owner admin editor viewer"`
}

type WorkspaceMemberResponse struct {
	ID     uuid.UUID    `json:"id"`
	UserID uuid.UUID    `json:"user_id"`
	Role   string       `json:"role"`
	User   UserResponse `json:"user"`
}

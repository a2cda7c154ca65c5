package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	WorkspaceStatusActive   = "active"
	WorkspaceStatusPaused   = "paused"
	WorkspaceStatusArchived = "archived"
	WorkspaceStatusDeleted  = "deleted"
)

// Workspace member roles, ordered by privilege
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

var roleRank = map[string]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleAdmin:  3,
	RoleOwner:  4,
}

// RoleAtLeast reports whether role carries at least the privilege of required.
// Unknown roles rank below viewer.
func RoleAtLeast(role, required string) bool {
	return roleRank[role] >= roleRank[required]
}

type Workspace struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	OwnerID      uuid.UUID       `json:"owner_id"`
	Status       string          `json:"status"`
	LastActivity time.Time       `json:"last_activity"`
	Settings     json.RawMessage `json:"settings,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type WorkspaceMember struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
	User        *User     `json:"user,omitempty"`
}

func (m *WorkspaceMember) HasRole(required string) bool {
	return RoleAtLeast(m.Role, required)
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/instacontent/instacontent-api/internal/database"
	"github.com/instacontent/instacontent-api/internal/models"
)

var (
	ErrWorkspaceNotFound   = errors.New("workspace not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrCannotRemoveOwner   = errors.New("cannot remove workspace owner")
	ErrDuplicateMembership = errors.New("user is already a workspace member")
)

type WorkspaceService struct {
	db *database.DB
}

func NewWorkspaceService(db *database.DB) *WorkspaceService {
	return &WorkspaceService{db: db}
}

// Create inserts the workspace and adds the owner as a member with the owner
// role in one transaction.
func (s *WorkspaceService) Create(ctx context.Context, name, status string, settings []byte, ownerID uuid.UUID) (*models.Workspace, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var workspace models.Workspace
	err = tx.QueryRow(ctx, `
		INSERT INTO workspaces (name, owner_id, status, settings)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, owner_id, status, last_activity, settings, created_at
	`, name, ownerID, status, settings).Scan(
		&workspace.ID, &workspace.Name, &workspace.OwnerID, &workspace.Status,
		&workspace.LastActivity, &workspace.Settings, &workspace.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO workspace_members (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
	`, workspace.ID, ownerID, models.RoleOwner)
	if err != nil {
		return nil, fmt.Errorf("failed to add owner as member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &workspace, nil
}

func (s *WorkspaceService) GetByID(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error) {
	var workspace models.Workspace
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, owner_id, status, last_activity, settings, created_at
		FROM workspaces WHERE id = $1
	`, workspaceID).Scan(
		&workspace.ID, &workspace.Name, &workspace.OwnerID, &workspace.Status,
		&workspace.LastActivity, &workspace.Settings, &workspace.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (s *WorkspaceService) GetUserWorkspaces(ctx context.Context, userID uuid.UUID) ([]models.Workspace, []string, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT w.id, w.name, w.owner_id, w.status, w.last_activity, w.settings, w.created_at, wm.role
		FROM workspaces w
		JOIN workspace_members wm ON w.id = wm.workspace_id
		WHERE wm.user_id = $1 AND w.status != 'deleted'
		ORDER BY w.created_at DESC
	`, userID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var workspaces []models.Workspace
	var roles []string
	for rows.Next() {
		var w models.Workspace
		var role string
		if err := rows.Scan(&w.ID, &w.Name, &w.OwnerID, &w.Status, &w.LastActivity, &w.Settings, &w.CreatedAt, &role); err != nil {
			return nil, nil, err
		}
		workspaces = append(workspaces, w)
		roles = append(roles, role)
	}
	return workspaces, roles, nil
}

func (s *WorkspaceService) Update(ctx context.Context, workspaceID uuid.UUID, name, status *string) (*models.Workspace, error) {
	workspace, err := s.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, ErrWorkspaceNotFound
	}

	if name != nil {
		workspace.Name = *name
	}
	if status != nil {
		workspace.Status = *status
	}

	err = s.db.Pool.QueryRow(ctx, `
		UPDATE workspaces SET name = $1, status = $2
		WHERE id = $3
		RETURNING id, name, owner_id, status, last_activity, settings, created_at
	`, workspace.Name, workspace.Status, workspaceID).Scan(
		&workspace.ID, &workspace.Name, &workspace.OwnerID, &workspace.Status,
		&workspace.LastActivity, &workspace.Settings, &workspace.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return workspace, nil
}

// Delete soft-deletes the workspace; rows stay behind the status filter.
func (s *WorkspaceService) Delete(ctx context.Context, workspaceID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE workspaces SET status = 'deleted' WHERE id = $1
	`, workspaceID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrWorkspaceNotFound
	}
	return nil
}

func (s *WorkspaceService) IsOwner(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	var ownerID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `SELECT owner_id FROM workspaces WHERE id = $1`, workspaceID).Scan(&ownerID)
	if err != nil {
		return false, err
	}
	return ownerID == userID, nil
}

func (s *WorkspaceService) IsMember(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM workspace_members WHERE workspace_id = $1 AND user_id = $2)
	`, workspaceID, userID).Scan(&exists)
	return exists, err
}

// GetMemberRole returns the caller's role in the workspace, or
// ErrMemberNotFound when they have none.
func (s *WorkspaceService) GetMemberRole(ctx context.Context, workspaceID, userID uuid.UUID) (string, error) {
	var role string
	err := s.db.Pool.QueryRow(ctx, `
		SELECT role FROM workspace_members WHERE workspace_id = $1 AND user_id = $2
	`, workspaceID, userID).Scan(&role)
	if err != nil {
		return "", ErrMemberNotFound
	}
	return role, nil
}

// HasRole reports whether the user holds at least the required role in the
// workspace per the owner > admin > editor > viewer ordering.
func (s *WorkspaceService) HasRole(ctx context.Context, workspaceID, userID uuid.UUID, required string) (bool, error) {
	role, err := s.GetMemberRole(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return false, nil
		}
		return false, err
	}
	return models.RoleAtLeast(role, required), nil
}

func (s *WorkspaceService) GetMembers(ctx context.Context, workspaceID uuid.UUID) ([]models.WorkspaceMember, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT wm.id, wm.workspace_id, wm.user_id, wm.role, wm.joined_at,
		       u.id, u.email, u.username, u.name, u.plan, u.created_at, u.updated_at
		FROM workspace_members wm
		JOIN users u ON wm.user_id = u.id
		WHERE wm.workspace_id = $1
		ORDER BY wm.joined_at
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.WorkspaceMember
	for rows.Next() {
		var member models.WorkspaceMember
		var user models.User
		if err := rows.Scan(
			&member.ID, &member.WorkspaceID, &member.UserID, &member.Role, &member.JoinedAt,
			&user.ID, &user.Email, &user.Username, &user.Name, &user.Plan, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		member.User = &user
		members = append(members, member)
	}
	return members, nil
}

// AddMember inserts the membership row. A second row for the same
// (workspace, user) pair violates the composite unique constraint and is
// surfaced as ErrDuplicateMembership.
func (s *WorkspaceService) AddMember(ctx context.Context, workspaceID, userID uuid.UUID, role string) (*models.WorkspaceMember, error) {
	var member models.WorkspaceMember
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO workspace_members (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, workspace_id, user_id, role, joined_at
	`, workspaceID, userID, role).Scan(
		&member.ID, &member.WorkspaceID, &member.UserID, &member.Role, &member.JoinedAt,
	)
	if err != nil {
		if database.UniqueViolation(err, "workspace_members_workspace_id_user_id_key") {
			return nil, ErrDuplicateMembership
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	return &member, nil
}

func (s *WorkspaceService) UpdateMemberRole(ctx context.Context, workspaceID, userID uuid.UUID, role string) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE workspace_members SET role = $1
		WHERE workspace_id = $2 AND user_id = $3
	`, role, workspaceID, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (s *WorkspaceService) RemoveMember(ctx context.Context, workspaceID, userID uuid.UUID) error {
	role, err := s.GetMemberRole(ctx, workspaceID, userID)
	if err != nil {
		return err
	}

	if role == models.RoleOwner {
		return ErrCannotRemoveOwner
	}

	_, err = s.db.Pool.Exec(ctx, `
		DELETE FROM workspace_members WHERE workspace_id = $1 AND user_id = $2
	`, workspaceID, userID)
	return err
}

// TouchActivity bumps last_activity, used by content writes.
func (s *WorkspaceService) TouchActivity(ctx context.Context, workspaceID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `
		UPDATE workspaces SET last_activity = NOW() WHERE id = $1
	`, workspaceID)
	return err
}

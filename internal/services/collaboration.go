package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/instacontent/instacontent-api/internal/database"
	"github.com/instacontent/instacontent-api/internal/models"
)

var ErrSessionNotFound = errors.New("collaboration session not found")

type CollaborationService struct {
	db *database.DB
}

func NewCollaborationService(db *database.DB) *CollaborationService {
	return &CollaborationService{db: db}
}

// Join opens (or reopens) the caller's session on a content item. One row
// per (content, user) pair; rejoining reactivates it and clears any stale
// cursor.
func (s *CollaborationService) Join(ctx context.Context, contentID, userID uuid.UUID) (*models.CollaborationSession, error) {
	var session models.CollaborationSession
	var cursor []byte
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO collaboration_sessions (content_id, user_id, is_active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (content_id, user_id) DO UPDATE SET
			is_active = TRUE,
			last_activity = NOW(),
			cursor = NULL
		RETURNING id, content_id, user_id, is_active, last_activity, cursor
	`, contentID, userID).Scan(
		&session.ID, &session.ContentID, &session.UserID,
		&session.IsActive, &session.LastActivity, &cursor,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to join session: %w", err)
	}
	if err := unmarshalCursor(cursor, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Heartbeat refreshes last_activity and optionally moves the cursor.
func (s *CollaborationService) Heartbeat(ctx context.Context, contentID, userID uuid.UUID, cursor *models.CursorPosition) error {
	var cursorJSON []byte
	if cursor != nil {
		var err error
		cursorJSON, err = json.Marshal(cursor)
		if err != nil {
			return fmt.Errorf("failed to marshal cursor: %w", err)
		}
	}

	result, err := s.db.Pool.Exec(ctx, `
		UPDATE collaboration_sessions
		SET last_activity = NOW(), cursor = COALESCE($3, cursor)
		WHERE content_id = $1 AND user_id = $2 AND is_active
	`, contentID, userID, cursorJSON)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *CollaborationService) Leave(ctx context.Context, contentID, userID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE collaboration_sessions SET is_active = FALSE
		WHERE content_id = $1 AND user_id = $2 AND is_active
	`, contentID, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *CollaborationService) ListActive(ctx context.Context, contentID uuid.UUID) ([]models.CollaborationSession, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT cs.id, cs.content_id, cs.user_id, cs.is_active, cs.last_activity, cs.cursor,
		       u.id, u.email, u.username, u.name, u.plan, u.created_at, u.updated_at
		FROM collaboration_sessions cs
		JOIN users u ON cs.user_id = u.id
		WHERE cs.content_id = $1 AND cs.is_active
		ORDER BY cs.last_activity DESC
	`, contentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.CollaborationSession
	for rows.Next() {
		var session models.CollaborationSession
		var user models.User
		var cursor []byte
		if err := rows.Scan(
			&session.ID, &session.ContentID, &session.UserID,
			&session.IsActive, &session.LastActivity, &cursor,
			&user.ID, &user.Email, &user.Username, &user.Name, &user.Plan,
			&user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := unmarshalCursor(cursor, &session); err != nil {
			return nil, err
		}
		session.User = &user
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// ReapIdle deactivates sessions with no heartbeat since the cutoff and
// returns how many were closed.
func (s *CollaborationService) ReapIdle(ctx context.Context, idleTimeout time.Duration) (int64, error) {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE collaboration_sessions SET is_active = FALSE
		WHERE is_active AND last_activity < NOW() - make_interval(secs => $1)
	`, idleTimeout.Seconds())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func unmarshalCursor(raw []byte, session *models.CollaborationSession) error {
	if len(raw) == 0 {
		return nil
	}
	var cursor models.CursorPosition
	if err := json.Unmarshal(raw, &cursor); err != nil {
		return fmt.Errorf("failed to unmarshal cursor: %w", err)
	}
	session.Cursor = &cursor
	return nil
}

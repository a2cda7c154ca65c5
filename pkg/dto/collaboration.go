package dto

import (
	"github.com/google/uuid"
	"github.com/instacontent/instacontent-api/internal/models"
)

type HeartbeatRequest struct {
	Cursor *models.CursorPosition `json:"cursor,omitempty"`
}

type SessionResponse struct {
	ID           uuid.UUID              `json:"id"`
	ContentID    uuid.UUID              `json:"content_id"`
	UserID       uuid.UUID              `json:"user_id"`
	IsActive     bool                   `json:"is_active"`
	Cursor       *models.CursorPosition `json:"cursor,omitempty"`
	User         *UserResponse          `json:"user,omitempty"`
	LastActivity string                 `json:"last_activity"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// CursorPosition is the in-editor position of a collaborator.
type CursorPosition struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Element string  `json:"element,omitempty"`
}

type CollaborationSession struct {
	ID           uuid.UUID       `json:"id"`
	ContentID    uuid.UUID       `json:"content_id"`
	UserID       uuid.UUID       `json:"user_id"`
	IsActive     bool            `json:"is_active"`
	LastActivity time.Time       `json:"last_activity"`
	Cursor       *CursorPosition `json:"cursor,omitempty"`
	User         *User           `json:"user,omitempty"`
}

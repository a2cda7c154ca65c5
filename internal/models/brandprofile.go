package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BrandProfile holds the voice and identity configuration for a workspace.
// A workspace has at most one profile.
type BrandProfile struct {
	ID             uuid.UUID       `json:"id"`
	WorkspaceID    uuid.UUID       `json:"workspace_id"`
	BusinessType   string          `json:"business_type"`
	TargetAudience string          `json:"target_audience"`
	BrandVoice     string          `json:"brand_voice"`
	BrandValues    json.RawMessage `json:"brand_values,omitempty"`
	ContentGoals   json.RawMessage `json:"content_goals,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

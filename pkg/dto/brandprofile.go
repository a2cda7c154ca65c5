package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type UpsertBrandProfileRequest struct {
	BusinessType   string          `json:"business_type" validate:"required,max=100"`
	TargetAudience string          `json:"target_audience" validate:"required"`
	BrandVoice     string          `json:"brand_voice" validate:"required,max=100"`
	BrandValues    json.RawMessage `json:"brand_values,omitempty"`
	ContentGoals   json.RawMessage `json:"content_goals,omitempty"`
}

type BrandProfileResponse struct {
	ID             uuid.UUID       `json:"id"`
	WorkspaceID    uuid.UUID       `json:"workspace_id"`
	BusinessType   string          `json:"business_type"`
	TargetAudience string          `json:"target_audience"`
	BrandVoice     string          `json:"brand_voice"`
	BrandValues    json.RawMessage `json:"brand_values,omitempty"`
	ContentGoals   json.RawMessage `json:"content_goals,omitempty"`
}

package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type CreateContentRequest struct {
	Type                  string          `json:"type" validate:"required,oneof=post story carousel"`
	Caption               string          `json:"caption" validate:"required"`
	Hashtags              json.RawMessage `json:"hashtags,omitempty"`
	VisualRecommendations json.RawMessage `json:"visual_recommendations,omitempty"`
	PerformancePrediction json.RawMessage `json:"performance_prediction,omitempty"`
	Status                string          `json:"status" validate:"omitempty,oneof=draft published archived"`
	AIGenerated           *bool           `json:"ai_generated,omitempty"`
}

func (r *CreateContentRequest) Normalize() {
	if r.Status == "" {
		r.Status = "draft"
	}
	if r.AIGenerated == nil {
		t := true
		r.AIGenerated = &t
	}
}

type UpdateContentRequest struct {
	Caption               *string         `json:"caption,omitempty"`
	Hashtags              json.RawMessage `json:"hashtags,omitempty"`
	VisualRecommendations json.RawMessage `json:"visual_recommendations,omitempty"`
	PerformancePrediction json.RawMessage `json:"performance_prediction,omitempty"`
	Status                *string         `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
}

type ContentResponse struct {
	ID                    uuid.UUID       `json:"id"`
	WorkspaceID           uuid.UUID       `json:"workspace_id"`
	Type                  string          `json:"type"`
	Caption               string          `json:"caption"`
	Hashtags              json.RawMessage `json:"hashtags,omitempty"`
	VisualRecommendations json.RawMessage `json:"visual_recommendations,omitempty"`
	PerformancePrediction json.RawMessage `json:"performance_prediction,omitempty"`
	Status                string          `json:"status"`
	AIGenerated           bool            `json:"ai_generated"`
	CreatedAt             string          `json:"created_at"`
}

type WorkspaceAnalyticsResponse struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	ByType   map[string]int `json:"by_type"`
}

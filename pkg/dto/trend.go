package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type CreateTrendRequest struct {
	Hashtag         string          `json:"hashtag" validate:"required,max=255"`
	ViralityScore   *int            `json:"virality_score" validate:"required,gte=0,lte=100"`
	SafetyScore     *int            `json:"safety_score" validate:"required,gte=0,lte=100"`
	EngagementBoost string          `json:"engagement_boost" validate:"required"`
	Lifespan        string          `json:"lifespan" validate:"required"`
	Sources         json.RawMessage `json:"sources,omitempty"`
	Status          string          `json:"status" validate:"omitempty,oneof=safe review blocked"`
}

func (r *CreateTrendRequest) Normalize() {
	if r.Status == "" {
		r.Status = "safe"
	}
}

type UpdateTrendStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=safe review blocked"`
}

type TrendResponse struct {
	ID              uuid.UUID       `json:"id"`
	Hashtag         string          `json:"hashtag"`
	ViralityScore   int             `json:"virality_score"`
	SafetyScore     int             `json:"safety_score"`
	EngagementBoost string          `json:"engagement_boost"`
	Lifespan        string          `json:"lifespan"`
	Sources         json.RawMessage `json:"sources,omitempty"`
	Status          string          `json:"status"`
}

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	ContentTypePost     = "post"
	ContentTypeStory    = "story"
	ContentTypeCarousel = "carousel"
)

const (
	ContentStatusDraft     = "draft"
	ContentStatusPublished = "published"
	ContentStatusArchived  = "archived"
)

type ContentItem struct {
	ID                    uuid.UUID       `json:"id"`
	WorkspaceID           uuid.UUID       `json:"workspace_id"`
	Type                  string          `json:"type"`
	Caption               string          `json:"caption"`
	Hashtags              json.RawMessage `json:"hashtags,omitempty"`
	VisualRecommendations json.RawMessage `json:"visual_recommendations,omitempty"`
	PerformancePrediction json.RawMessage `json:"performance_prediction,omitempty"`
	Status                string          `json:"status"`
	AIGenerated           bool            `json:"ai_generated"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// ContentStats aggregates a workspace's library for the analytics view.
type ContentStats struct {
	Total     int            `json:"total"`
	ByStatus  map[string]int `json:"by_status"`
	ByType    map[string]int `json:"by_type"`
}

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	TrendStatusSafe    = "safe"
	TrendStatusReview  = "review"
	TrendStatusBlocked = "blocked"
)

// Virality and safety scores are percentages.
const (
	TrendScoreMin = 0
	TrendScoreMax = 100
)

type Trend struct {
	ID              uuid.UUID       `json:"id"`
	Hashtag         string          `json:"hashtag"`
	ViralityScore   int             `json:"virality_score"`
	SafetyScore     int             `json:"safety_score"`
	EngagementBoost string          `json:"engagement_boost"`
	Lifespan        string          `json:"lifespan"`
	Sources         json.RawMessage `json:"sources,omitempty"`
	Status          string          `json:"status"`
	DetectedAt      time.Time       `json:"detected_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

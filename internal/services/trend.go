package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/instacontent/instacontent-api/internal/database"
	"github.com/instacontent/instacontent-api/internal/models"
)

var ErrTrendNotFound = errors.New("trend not found")

type TrendService struct {
	db *database.DB
}

func NewTrendService(db *database.DB) *TrendService {
	return &TrendService{db: db}
}

type TrendInput struct {
	Hashtag         string
	ViralityScore   int
	SafetyScore     int
	EngagementBoost string
	Lifespan        string
	Sources         []byte
	Status          string
}

func (s *TrendService) Create(ctx context.Context, input TrendInput) (*models.Trend, error) {
	var trend models.Trend
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO trends (hashtag, virality_score, safety_score, engagement_boost, lifespan, sources, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, hashtag, virality_score, safety_score, engagement_boost, lifespan, sources, status, detected_at, updated_at
	`, input.Hashtag, input.ViralityScore, input.SafetyScore, input.EngagementBoost,
		input.Lifespan, input.Sources, input.Status).Scan(
		&trend.ID, &trend.Hashtag, &trend.ViralityScore, &trend.SafetyScore,
		&trend.EngagementBoost, &trend.Lifespan, &trend.Sources, &trend.Status,
		&trend.DetectedAt, &trend.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trend: %w", err)
	}
	return &trend, nil
}

// List returns trends ordered by virality, optionally filtered by status.
func (s *TrendService) List(ctx context.Context, status string) ([]models.Trend, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, hashtag, virality_score, safety_score, engagement_boost, lifespan, sources, status, detected_at, updated_at
		FROM trends
		WHERE ($1 = '' OR status = $1)
		ORDER BY virality_score DESC, detected_at DESC
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []models.Trend
	for rows.Next() {
		var trend models.Trend
		if err := rows.Scan(
			&trend.ID, &trend.Hashtag, &trend.ViralityScore, &trend.SafetyScore,
			&trend.EngagementBoost, &trend.Lifespan, &trend.Sources, &trend.Status,
			&trend.DetectedAt, &trend.UpdatedAt,
		); err != nil {
			return nil, err
		}
		trends = append(trends, trend)
	}
	return trends, nil
}

func (s *TrendService) UpdateStatus(ctx context.Context, trendID uuid.UUID, status string) (*models.Trend, error) {
	var trend models.Trend
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE trends SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, hashtag, virality_score, safety_score, engagement_boost, lifespan, sources, status, detected_at, updated_at
	`, status, trendID).Scan(
		&trend.ID, &trend.Hashtag, &trend.ViralityScore, &trend.SafetyScore,
		&trend.EngagementBoost, &trend.Lifespan, &trend.Sources, &trend.Status,
		&trend.DetectedAt, &trend.UpdatedAt,
	)
	if err != nil {
		return nil, ErrTrendNotFound
	}
	return &trend, nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/instacontent/instacontent-api/internal/database"
	"github.com/instacontent/instacontent-api/internal/models"
)

var ErrBrandProfileNotFound = errors.New("brand profile not found")

type BrandProfileService struct {
	db *database.DB
}

func NewBrandProfileService(db *database.DB) *BrandProfileService {
	return &BrandProfileService{db: db}
}

// Upsert creates or replaces the workspace's brand profile. The unique
// constraint on workspace_id keeps it at one profile per workspace.
func (s *BrandProfileService) Upsert(ctx context.Context, workspaceID uuid.UUID, businessType, targetAudience, brandVoice string, brandValues, contentGoals []byte) (*models.BrandProfile, error) {
	var profile models.BrandProfile
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO brand_profiles (workspace_id, business_type, target_audience, brand_voice, brand_values, content_goals)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (workspace_id) DO UPDATE SET
			business_type = EXCLUDED.business_type,
			target_audience = EXCLUDED.target_audience,
			brand_voice = EXCLUDED.brand_voice,
			brand_values = EXCLUDED.brand_values,
			content_goals = EXCLUDED.content_goals
		RETURNING id, workspace_id, business_type, target_audience, brand_voice, brand_values, content_goals, created_at
	`, workspaceID, businessType, targetAudience, brandVoice, brandValues, contentGoals).Scan(
		&profile.ID, &profile.WorkspaceID, &profile.BusinessType, &profile.TargetAudience,
		&profile.BrandVoice, &profile.BrandValues, &profile.ContentGoals, &profile.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert brand profile: %w", err)
	}
	return &profile, nil
}

func (s *BrandProfileService) GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) (*models.BrandProfile, error) {
	var profile models.BrandProfile
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, workspace_id, business_type, target_audience, brand_voice, brand_values, content_goals, created_at
		FROM brand_profiles WHERE workspace_id = $1
	`, workspaceID).Scan(
		&profile.ID, &profile.WorkspaceID, &profile.BusinessType, &profile.TargetAudience,
		&profile.BrandVoice, &profile.BrandValues, &profile.ContentGoals, &profile.CreatedAt,
	)
	if err != nil {
		return nil, ErrBrandProfileNotFound
	}
	return &profile, nil
}

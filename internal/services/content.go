package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/instacontent/instacontent-api/internal/database"
	"github.com/instacontent/instacontent-api/internal/models"
)

var (
	ErrContentNotFound = errors.New("content item not found")
	ErrQuotaExceeded   = errors.New("monthly content quota exceeded")
)

type ContentService struct {
	db *database.DB
}

func NewContentService(db *database.DB) *ContentService {
	return &ContentService{db: db}
}

// ContentInput carries the validated insert payload for a content item.
type ContentInput struct {
	Type                  string
	Caption               string
	Hashtags              []byte
	VisualRecommendations []byte
	PerformancePrediction []byte
	Status                string
	AIGenerated           bool
}

// Generate creates a content item for the workspace. When the workspace is
// managed as an agency client the client's monthly quota is consumed first,
// in the same transaction, via a conditional update so that concurrent
// requests at the quota boundary cannot both succeed.
func (s *ContentService) Generate(ctx context.Context, workspaceID uuid.UUID, input ContentInput) (*models.ContentItem, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var clientID uuid.UUID
	err = tx.QueryRow(ctx, `
		UPDATE agency_clients
		SET used_content_this_month = used_content_this_month + 1, updated_at = NOW()
		WHERE workspace_id = $1
		  AND status = 'active'
		  AND used_content_this_month < monthly_content_quota
		RETURNING id
	`, workspaceID).Scan(&clientID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("failed to consume quota: %w", err)
		}
		// No row updated: either the workspace is not an agency client
		// (fine), or its quota is exhausted / the client is not active.
		var managed bool
		if err := tx.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM agency_clients WHERE workspace_id = $1)
		`, workspaceID).Scan(&managed); err != nil {
			return nil, fmt.Errorf("failed to check agency client: %w", err)
		}
		if managed {
			return nil, ErrQuotaExceeded
		}
	}

	var item models.ContentItem
	err = tx.QueryRow(ctx, `
		INSERT INTO content_items (workspace_id, type, caption, hashtags, visual_recommendations, performance_prediction, status, ai_generated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, workspace_id, type, caption, hashtags, visual_recommendations, performance_prediction, status, ai_generated, created_at, updated_at
	`, workspaceID, input.Type, input.Caption, input.Hashtags, input.VisualRecommendations,
		input.PerformancePrediction, input.Status, input.AIGenerated).Scan(
		&item.ID, &item.WorkspaceID, &item.Type, &item.Caption, &item.Hashtags,
		&item.VisualRecommendations, &item.PerformancePrediction, &item.Status,
		&item.AIGenerated, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create content item: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE workspaces SET last_activity = NOW() WHERE id = $1
	`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to update workspace activity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &item, nil
}

func (s *ContentService) GetByID(ctx context.Context, contentID uuid.UUID) (*models.ContentItem, error) {
	var item models.ContentItem
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, workspace_id, type, caption, hashtags, visual_recommendations, performance_prediction, status, ai_generated, created_at, updated_at
		FROM content_items WHERE id = $1
	`, contentID).Scan(
		&item.ID, &item.WorkspaceID, &item.Type, &item.Caption, &item.Hashtags,
		&item.VisualRecommendations, &item.PerformancePrediction, &item.Status,
		&item.AIGenerated, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, ErrContentNotFound
	}
	return &item, nil
}

// GetByWorkspace lists the workspace library, optionally filtered by status
// and type. Empty filters match everything.
func (s *ContentService) GetByWorkspace(ctx context.Context, workspaceID uuid.UUID, status, contentType string) ([]models.ContentItem, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, workspace_id, type, caption, hashtags, visual_recommendations, performance_prediction, status, ai_generated, created_at, updated_at
		FROM content_items
		WHERE workspace_id = $1
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR type = $3)
		ORDER BY created_at DESC
	`, workspaceID, status, contentType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ContentItem
	for rows.Next() {
		var item models.ContentItem
		if err := rows.Scan(
			&item.ID, &item.WorkspaceID, &item.Type, &item.Caption, &item.Hashtags,
			&item.VisualRecommendations, &item.PerformancePrediction, &item.Status,
			&item.AIGenerated, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ContentUpdate carries the optional fields of an update; nil fields are
// left untouched.
type ContentUpdate struct {
	Caption               *string
	Hashtags              []byte
	VisualRecommendations []byte
	PerformancePrediction []byte
	Status                *string
}

func (s *ContentService) Update(ctx context.Context, contentID uuid.UUID, update ContentUpdate) (*models.ContentItem, error) {
	item, err := s.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}

	if update.Caption != nil {
		item.Caption = *update.Caption
	}
	if update.Hashtags != nil {
		item.Hashtags = update.Hashtags
	}
	if update.VisualRecommendations != nil {
		item.VisualRecommendations = update.VisualRecommendations
	}
	if update.PerformancePrediction != nil {
		item.PerformancePrediction = update.PerformancePrediction
	}
	if update.Status != nil {
		item.Status = *update.Status
	}

	err = s.db.Pool.QueryRow(ctx, `
		UPDATE content_items
		SET caption = $1, hashtags = $2, visual_recommendations = $3, performance_prediction = $4, status = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING id, workspace_id, type, caption, hashtags, visual_recommendations, performance_prediction, status, ai_generated, created_at, updated_at
	`, item.Caption, item.Hashtags, item.VisualRecommendations, item.PerformancePrediction, item.Status, contentID).Scan(
		&item.ID, &item.WorkspaceID, &item.Type, &item.Caption, &item.Hashtags,
		&item.VisualRecommendations, &item.PerformancePrediction, &item.Status,
		&item.AIGenerated, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update content item: %w", err)
	}
	return item, nil
}

func (s *ContentService) Delete(ctx context.Context, contentID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM content_items WHERE id = $1`, contentID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrContentNotFound
	}
	return nil
}

// WorkspaceStats aggregates the library for the analytics view.
func (s *ContentService) WorkspaceStats(ctx context.Context, workspaceID uuid.UUID) (*models.ContentStats, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT status, type, COUNT(*)
		FROM content_items
		WHERE workspace_id = $1
		GROUP BY status, type
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &models.ContentStats{
		ByStatus: make(map[string]int),
		ByType:   make(map[string]int),
	}
	for rows.Next() {
		var status, contentType string
		var count int
		if err := rows.Scan(&status, &contentType, &count); err != nil {
			return nil, err
		}
		stats.Total += count
		stats.ByStatus[status] += count
		stats.ByType[contentType] += count
	}
	return stats, nil
}

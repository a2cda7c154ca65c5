package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/instacontent/instacontent-api/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupContentService(t *testing.T) (*ContentService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewContentService(db), mock
}

func contentRows(id, workspaceID uuid.UUID, caption string, now time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "workspace_id", "type", "caption", "hashtags",
		"visual_recommendations", "performance_prediction", "status", "ai_generated",
		"created_at", "updated_at",
	}).AddRow(id, workspaceID, "post", caption, []byte(nil), []byte(nil), []byte(nil), "draft", true, now, now)
}

func TestContentService_Generate_UnmanagedWorkspace(t *testing.T) {
	svc, mock := setupContentService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	contentID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()

	// Quota update touches no row, and no agency client exists for this
	// workspace, so generation proceeds unmetered.
	mock.ExpectQuery(`UPDATE agency_clients`).
		WithArgs(workspaceID).
		WillReturnError(pgx.ErrNoRows)

	managed := pgxmock.NewRows([]string{"exists"}).AddRow(false)
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM agency_clients`).
		WithArgs(workspaceID).
		WillReturnRows(managed)

	mock.ExpectQuery(`INSERT INTO content_items`).
		WithArgs(workspaceID, "post", "Fresh drop", []byte(nil), []byte(nil), []byte(nil), "draft", true).
		WillReturnRows(contentRows(contentID, workspaceID, "Fresh drop", now))

	mock.ExpectExec(`UPDATE workspaces SET last_activity`).
		WithArgs(workspaceID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	mock.ExpectCommit()

	item, err := svc.Generate(ctx, workspaceID, ContentInput{
		Type:        "post",
		Caption:     "Fresh drop",
		Status:      "draft",
		AIGenerated: true,
	})

	require.NoError(t, err)
	assert.Equal(t, contentID, item.ID)
	assert.Equal(t, workspaceID, item.WorkspaceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentService_Generate_ConsumesQuota(t *testing.T) {
	svc, mock := setupContentService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	clientID := uuid.New()
	contentID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()

	quotaRows := pgxmock.NewRows([]string{"id"}).AddRow(clientID)
	mock.ExpectQuery(`UPDATE agency_clients`).
		WithArgs(workspaceID).
		WillReturnRows(quotaRows)

	mock.ExpectQuery(`INSERT INTO content_items`).
		WithArgs(workspaceID, "post", "Client post", []byte(nil), []byte(nil), []byte(nil), "draft", true).
		WillReturnRows(contentRows(contentID, workspaceID, "Client post", now))

	mock.ExpectExec(`UPDATE workspaces SET last_activity`).
		WithArgs(workspaceID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	mock.ExpectCommit()

	item, err := svc.Generate(ctx, workspaceID, ContentInput{
		Type:        "post",
		Caption:     "Client post",
		Status:      "draft",
		AIGenerated: true,
	})

	require.NoError(t, err)
	assert.Equal(t, contentID, item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentService_Generate_QuotaExhausted(t *testing.T) {
	svc, mock := setupContentService(t)
	ctx := context.Background()
	workspaceID := uuid.New()

	mock.ExpectBegin()

	mock.ExpectQuery(`UPDATE agency_clients`).
		WithArgs(workspaceID).
		WillReturnError(pgx.ErrNoRows)

	managed := pgxmock.NewRows([]string{"exists"}).AddRow(true)
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM agency_clients`).
		WithArgs(workspaceID).
		WillReturnRows(managed)

	mock.ExpectRollback()

	_, err := svc.Generate(ctx, workspaceID, ContentInput{
		Type:        "post",
		Caption:     "One too many",
		Status:      "draft",
		AIGenerated: true,
	})

	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentService_GetByID_NotFound(t *testing.T) {
	svc, mock := setupContentService(t)
	ctx := context.Background()
	contentID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM content_items WHERE id`).
		WithArgs(contentID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetByID(ctx, contentID)

	assert.ErrorIs(t, err, ErrContentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentService_GetByWorkspace_Filters(t *testing.T) {
	svc, mock := setupContentService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM content_items\s+WHERE workspace_id`).
		WithArgs(workspaceID, "draft", "post").
		WillReturnRows(contentRows(uuid.New(), workspaceID, "Draft post", now))

	items, err := svc.GetByWorkspace(ctx, workspaceID, "draft", "post")

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Draft post", items[0].Caption)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentService_Delete_NotFound(t *testing.T) {
	svc, mock := setupContentService(t)
	ctx := context.Background()
	contentID := uuid.New()

	mock.ExpectExec(`DELETE FROM content_items WHERE id`).
		WithArgs(contentID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := svc.Delete(ctx, contentID)

	assert.ErrorIs(t, err, ErrContentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentService_WorkspaceStats(t *testing.T) {
	svc, mock := setupContentService(t)
	ctx := context.Background()
	workspaceID := uuid.New()

	rows := pgxmock.NewRows([]string{"status", "type", "count"}).
		AddRow("draft", "post", 3).
		AddRow("published", "post", 2).
		AddRow("published", "story", 1)

	mock.ExpectQuery(`SELECT status, type, COUNT\(\*\)`).
		WithArgs(workspaceID).
		WillReturnRows(rows)

	stats, err := svc.WorkspaceStats(ctx, workspaceID)

	require.NoError(t, err)
	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 3, stats.ByStatus["draft"])
	assert.Equal(t, 3, stats.ByStatus["published"])
	assert.Equal(t, 5, stats.ByType["post"])
	assert.Equal(t, 1, stats.ByType["story"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

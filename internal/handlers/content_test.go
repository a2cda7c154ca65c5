package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/instacontent/instacontent-api/internal/middleware"
	"github.com/instacontent/instacontent-api/internal/models"
	"github.com/instacontent/instacontent-api/internal/services"
	"github.com/instacontent/instacontent-api/internal/validation"
	"github.com/instacontent/instacontent-api/pkg/dto"
	"github.com/instacontent/instacontent-api/tests/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupContentTest(t *testing.T) (*testutil.MockContentService, *testutil.MockWorkspaceService, *ContentHandler, *services.JWTService) {
	t.Helper()
	mockContentService := new(testutil.MockContentService)
	mockWorkspaceService := new(testutil.MockWorkspaceService)
	handler := NewContentHandler(mockContentService, mockWorkspaceService, validation.New())
	jwtSvc := services.NewJWTService("test-secret-key", 15*time.Minute, 24*time.Hour)
	return mockContentService, mockWorkspaceService, handler, jwtSvc
}

func TestContentHandler_Generate_Success(t *testing.T) {
	mockContentService, mockWorkspaceService, handler, jwtSvc := setupContentTest(t)

	userID := uuid.New()
	workspaceID := uuid.New()
	item := &models.ContentItem{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Type:        models.ContentTypePost,
		Caption:     "Summer collection drop",
		Status:      models.ContentStatusDraft,
		AIGenerated: true,
		CreatedAt:   time.Now(),
	}

	mockWorkspaceService.On("HasRole", mock.Anything, workspaceID, userID, models.RoleEditor).Return(true, nil)
	mockContentService.On("Generate", mock.Anything, workspaceID, services.ContentInput{
		Type:        "post",
		Caption:     "Summer collection drop",
		Status:      "draft",
		AIGenerated: true,
	}).Return(item, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/workspaces/:workspaceId/content", handler.Generate)

	body := dto.CreateContentRequest{Type: "post", Caption: "Summer collection drop"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodPost, "/workspaces/"+workspaceID.String()+"/content", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response dto.ContentResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, item.ID, response.ID)
	assert.Equal(t, "post", response.Type)
	assert.True(t, response.AIGenerated)

	mockContentService.AssertExpectations(t)
	mockWorkspaceService.AssertExpectations(t)
}

func TestContentHandler_Generate_QuotaExhausted(t *testing.T) {
	mockContentService, mockWorkspaceService, handler, jwtSvc := setupContentTest(t)

	userID := uuid.New()
	workspaceID := uuid.New()

	mockWorkspaceService.On("HasRole", mock.Anything, workspaceID, userID, models.RoleEditor).Return(true, nil)
	mockContentService.On("Generate", mock.Anything, workspaceID, mock.Anything).
		Return(nil, services.ErrQuotaExceeded)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/workspaces/:workspaceId/content", handler.Generate)

	body := dto.CreateContentRequest{Type: "post", Caption: "One too many"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodPost, "/workspaces/"+workspaceID.String()+"/content", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "quota exhausted")

	mockContentService.AssertExpectations(t)
}

func TestContentHandler_Generate_ViewerForbidden(t *testing.T) {
	_, mockWorkspaceService, handler, jwtSvc := setupContentTest(t)

	userID := uuid.New()
	workspaceID := uuid.New()

	mockWorkspaceService.On("HasRole", mock.Anything, workspaceID, userID, models.RoleEditor).Return(false, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/workspaces/:workspaceId/content", handler.Generate)

	body := dto.CreateContentRequest{Type: "story", Caption: "Viewer attempt"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodPost, "/workspaces/"+workspaceID.String()+"/content", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "editor role required")

	mockWorkspaceService.AssertExpectations(t)
}

func TestContentHandler_Generate_InvalidType(t *testing.T) {
	_, _, handler, jwtSvc := setupContentTest(t)

	workspaceID := uuid.New()

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/workspaces/:workspaceId/content", handler.Generate)

	body := dto.CreateContentRequest{Type: "reel", Caption: "Unsupported"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, uuid.New(), "test@example.com")
	req := httptest.NewRequest(http.MethodPost, "/workspaces/"+workspaceID.String()+"/content", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be one of: post story carousel")
}

func TestContentHandler_List_PassesFilters(t *testing.T) {
	mockContentService, mockWorkspaceService, handler, jwtSvc := setupContentTest(t)

	userID := uuid.New()
	workspaceID := uuid.New()
	items := []models.ContentItem{
		{ID: uuid.New(), WorkspaceID: workspaceID, Type: "post", Caption: "Draft one", Status: "draft", CreatedAt: time.Now()},
	}

	mockWorkspaceService.On("IsMember", mock.Anything, workspaceID, userID).Return(true, nil)
	mockContentService.On("GetByWorkspace", mock.Anything, workspaceID, "draft", "post").Return(items, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/workspaces/:workspaceId/content", handler.List)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodGet, "/workspaces/"+workspaceID.String()+"/content?status=draft&type=post", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.ContentResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	require.Len(t, response, 1)
	assert.Equal(t, "Draft one", response[0].Caption)

	mockContentService.AssertExpectations(t)
	mockWorkspaceService.AssertExpectations(t)
}

func TestContentHandler_Get_NotFound(t *testing.T) {
	mockContentService, _, handler, jwtSvc := setupContentTest(t)

	contentID := uuid.New()
	mockContentService.On("GetByID", mock.Anything, contentID).Return(nil, services.ErrContentNotFound)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/content/:contentId", handler.Get)

	token := generateTestToken(t, jwtSvc, uuid.New(), "test@example.com")
	req := httptest.NewRequest(http.MethodGet, "/content/"+contentID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	mockContentService.AssertExpectations(t)
}

func TestContentHandler_Update_Success(t *testing.T) {
	mockContentService, mockWorkspaceService, handler, jwtSvc := setupContentTest(t)

	userID := uuid.New()
	workspaceID := uuid.New()
	contentID := uuid.New()
	existing := &models.ContentItem{ID: contentID, WorkspaceID: workspaceID, Type: "post", Caption: "Old", Status: "draft", CreatedAt: time.Now()}

	status := "published"
	updated := &models.ContentItem{ID: contentID, WorkspaceID: workspaceID, Type: "post", Caption: "Old", Status: "published", CreatedAt: existing.CreatedAt}

	mockContentService.On("GetByID", mock.Anything, contentID).Return(existing, nil)
	mockWorkspaceService.On("HasRole", mock.Anything, workspaceID, userID, models.RoleEditor).Return(true, nil)
	mockContentService.On("Update", mock.Anything, contentID, services.ContentUpdate{Status: &status}).Return(updated, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Patch("/content/:contentId", handler.Update)

	body := dto.UpdateContentRequest{Status: &status}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodPatch, "/content/"+contentID.String(), bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.ContentResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "published", response.Status)

	mockContentService.AssertExpectations(t)
	mockWorkspaceService.AssertExpectations(t)
}

func TestContentHandler_Delete_CrossWorkspaceForbidden(t *testing.T) {
	mockContentService, mockWorkspaceService, handler, jwtSvc := setupContentTest(t)

	userID := uuid.New()
	workspaceID := uuid.New()
	contentID := uuid.New()
	item := &models.ContentItem{ID: contentID, WorkspaceID: workspaceID, Type: "post", Caption: "Private", Status: "draft", CreatedAt: time.Now()}

	mockContentService.On("GetByID", mock.Anything, contentID).Return(item, nil)
	mockWorkspaceService.On("HasRole", mock.Anything, workspaceID, userID, models.RoleEditor).Return(false, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Delete("/content/:contentId", handler.Delete)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodDelete, "/content/"+contentID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	mockContentService.AssertExpectations(t)
	mockWorkspaceService.AssertExpectations(t)
}

func TestContentHandler_Analytics_Success(t *testing.T) {
	mockContentService, mockWorkspaceService, handler, jwtSvc := setupContentTest(t)

	userID := uuid.New()
	workspaceID := uuid.New()
	stats := &models.ContentStats{
		Total:    6,
		ByStatus: map[string]int{"draft": 4, "published": 2},
		ByType:   map[string]int{"post": 3, "story": 2, "carousel": 1},
	}

	mockWorkspaceService.On("IsMember", mock.Anything, workspaceID, userID).Return(true, nil)
	mockContentService.On("WorkspaceStats", mock.Anything, workspaceID).Return(stats, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/workspaces/:workspaceId/analytics", handler.Analytics)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodGet, "/workspaces/"+workspaceID.String()+"/analytics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.WorkspaceAnalyticsResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, 6, response.Total)
	assert.Equal(t, 2, response.ByStatus["published"])

	mockContentService.AssertExpectations(t)
	mockWorkspaceService.AssertExpectations(t)
}

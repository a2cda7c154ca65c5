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

func generateTestToken(t *testing.T, jwtSvc *services.JWTService, userID uuid.UUID, email string) string {
	t.Helper()
	pair, err := jwtSvc.GenerateTokenPair(userID, email)
	require.NoError(t, err)
	return pair.AccessToken
}

func setupUserTest(t *testing.T) (*testutil.MockUserService, *UserHandler, *services.JWTService) {
	t.Helper()
	mockUserService := new(testutil.MockUserService)
	handler := NewUserHandler(mockUserService, validation.New())
	jwtSvc := services.NewJWTService("test-secret-key", 15*time.Minute, 24*time.Hour)
	return mockUserService, handler, jwtSvc
}

func TestUserHandler_Me_Success(t *testing.T) {
	mockUserService, handler, jwtSvc := setupUserTest(t)

	userID := uuid.New()
	email := "test@example.com"
	user := &models.User{
		ID:       userID,
		Email:    email,
		Username: "tester",
		Name:     "Test User",
		Plan:     models.PlanStarter,
	}

	mockUserService.On("GetByID", mock.Anything, userID).Return(user, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/users/me", handler.Me)

	token := generateTestToken(t, jwtSvc, userID, email)
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.UserResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, userID, response.ID)
	assert.Equal(t, "tester", response.Username)
	assert.Equal(t, "starter", response.Plan)

	mockUserService.AssertExpectations(t)
}

func TestUserHandler_Me_NoToken(t *testing.T) {
	_, handler, jwtSvc := setupUserTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/users/me", handler.Me)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserHandler_UpdateMe_Success(t *testing.T) {
	mockUserService, handler, jwtSvc := setupUserTest(t)

	userID := uuid.New()
	email := "test@example.com"
	updated := &models.User{
		ID:       userID,
		Email:    email,
		Username: "tester",
		Name:     "New Name",
		Plan:     models.PlanPro,
	}

	mockUserService.On("Update", mock.Anything, userID, "New Name").Return(updated, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Patch("/users/me", handler.UpdateMe)

	body := dto.UpdateUserRequest{Name: "New Name"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, email)
	req := httptest.NewRequest(http.MethodPatch, "/users/me", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.UserResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "New Name", response.Name)

	mockUserService.AssertExpectations(t)
}

func TestUserHandler_UpdateMe_EmptyName(t *testing.T) {
	_, handler, jwtSvc := setupUserTest(t)

	userID := uuid.New()

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Patch("/users/me", handler.UpdateMe)

	body := dto.UpdateUserRequest{Name: ""}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodPatch, "/users/me", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "is required")
}

func TestToUserResponse_OmitsPasswordHash(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "test@example.com",
		Username:     "tester",
		PasswordHash: "secret-hash",
		Name:         "Test User",
		Plan:         models.PlanStarter,
	}

	response := toUserResponse(user)
	data, err := json.Marshal(response)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret-hash")
}

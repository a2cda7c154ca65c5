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
	"github.com/jackc/pgx/v5"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAuthTest(t *testing.T) (*testutil.MockUserService, *testutil.MockTokenService, *AuthHandler, *services.JWTService) {
	t.Helper()
	mockUserService := new(testutil.MockUserService)
	mockTokenService := new(testutil.MockTokenService)
	jwtSvc := services.NewJWTService("test-secret-key", 15*time.Minute, 24*time.Hour)
	handler := NewAuthHandler(mockUserService, mockTokenService, jwtSvc, validation.New())
	return mockUserService, mockTokenService, handler, jwtSvc
}

func TestAuthHandler_Register_Success(t *testing.T) {
	mockUserService, mockTokenService, handler, _ := setupAuthTest(t)

	userID := uuid.New()
	user := &models.User{
		ID:       userID,
		Email:    "new@example.com",
		Username: "newuser",
		Name:     "New User",
		Plan:     models.PlanStarter,
	}

	mockUserService.On("Register", mock.Anything, "new@example.com", "newuser", "password123", "New User", "starter").Return(user, nil)
	mockTokenService.On("StoreRefreshToken", mock.Anything, userID, mock.Anything, mock.Anything).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/register", handler.Register)

	body := dto.RegisterRequest{
		Email:    "new@example.com",
		Username: "newuser",
		Password: "password123",
		Name:     "New User",
	}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response dto.AuthResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.Equal(t, int64(15*60), response.ExpiresIn)
	assert.Equal(t, "newuser", response.User.Username)

	mockUserService.AssertExpectations(t)
	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	mockUserService, _, handler, _ := setupAuthTest(t)

	mockUserService.On("Register", mock.Anything, "taken@example.com", "newuser", "password123", "New User", "starter").
		Return(nil, services.ErrEmailTaken)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/register", handler.Register)

	body := dto.RegisterRequest{
		Email:    "taken@example.com",
		Username: "newuser",
		Password: "password123",
		Name:     "New User",
	}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already registered")

	mockUserService.AssertExpectations(t)
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	_, _, handler, _ := setupAuthTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/register", handler.Register)

	body := dto.RegisterRequest{
		Email:    "not-an-email",
		Username: "ab",
		Password: "short",
		Name:     "",
	}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")
	assert.Contains(t, rec.Body.String(), "username")
	assert.Contains(t, rec.Body.String(), "password")
	assert.Contains(t, rec.Body.String(), "name")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mockUserService, mockTokenService, handler, _ := setupAuthTest(t)

	userID := uuid.New()
	user := &models.User{
		ID:       userID,
		Email:    "test@example.com",
		Username: "tester",
		Name:     "Test User",
		Plan:     models.PlanStarter,
	}

	mockUserService.On("Authenticate", mock.Anything, "test@example.com", "password123").Return(user, nil)
	mockTokenService.On("StoreRefreshToken", mock.Anything, userID, mock.Anything, mock.Anything).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/login", handler.Login)

	body := dto.LoginRequest{Email: "test@example.com", Password: "password123"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.AuthResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)

	mockUserService.AssertExpectations(t)
	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	mockUserService, _, handler, _ := setupAuthTest(t)

	mockUserService.On("Authenticate", mock.Anything, "test@example.com", "wrong-password").
		Return(nil, services.ErrInvalidCredentials)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/login", handler.Login)

	body := dto.LoginRequest{Email: "test@example.com", Password: "wrong-password"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email or password")

	mockUserService.AssertExpectations(t)
}

func TestAuthHandler_Refresh_RotatesToken(t *testing.T) {
	mockUserService, mockTokenService, handler, jwtSvc := setupAuthTest(t)

	userID := uuid.New()
	email := "test@example.com"
	user := &models.User{ID: userID, Email: email, Username: "tester", Name: "Test User", Plan: models.PlanStarter}

	pair, err := jwtSvc.GenerateTokenPair(userID, email)
	require.NoError(t, err)
	oldHash := services.HashToken(pair.RefreshToken)

	mockTokenService.On("ValidateRefreshToken", mock.Anything, oldHash).Return(userID, nil)
	mockUserService.On("GetByID", mock.Anything, userID).Return(user, nil)
	mockTokenService.On("RevokeRefreshToken", mock.Anything, oldHash).Return(nil)
	mockTokenService.On("StoreRefreshToken", mock.Anything, userID, mock.Anything, mock.Anything).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/refresh", handler.Refresh)

	body := dto.RefreshRequest{RefreshToken: pair.RefreshToken}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.AuthResponse
	err = json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)

	mockUserService.AssertExpectations(t)
	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_Refresh_Revoked(t *testing.T) {
	_, mockTokenService, handler, jwtSvc := setupAuthTest(t)

	userID := uuid.New()
	pair, err := jwtSvc.GenerateTokenPair(userID, "test@example.com")
	require.NoError(t, err)

	mockTokenService.On("ValidateRefreshToken", mock.Anything, services.HashToken(pair.RefreshToken)).
		Return(uuid.Nil, pgx.ErrNoRows)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/refresh", handler.Refresh)

	body := dto.RefreshRequest{RefreshToken: pair.RefreshToken}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "revoked or expired")

	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_Refresh_GarbageToken(t *testing.T) {
	_, _, handler, _ := setupAuthTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/refresh", handler.Refresh)

	body := dto.RefreshRequest{RefreshToken: "not-a-jwt"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Logout_RevokesToken(t *testing.T) {
	_, mockTokenService, handler, jwtSvc := setupAuthTest(t)

	pair, err := jwtSvc.GenerateTokenPair(uuid.New(), "test@example.com")
	require.NoError(t, err)

	mockTokenService.On("RevokeRefreshToken", mock.Anything, services.HashToken(pair.RefreshToken)).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/logout", handler.Logout)

	body := dto.RefreshRequest{RefreshToken: pair.RefreshToken}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "logged out")

	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_LogoutAll_Success(t *testing.T) {
	_, mockTokenService, handler, jwtSvc := setupAuthTest(t)

	userID := uuid.New()
	mockTokenService.On("RevokeAllUserTokens", mock.Anything, userID).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/auth/logout-all", handler.LogoutAll)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodPost, "/auth/logout-all", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "logged out everywhere")

	mockTokenService.AssertExpectations(t)
}

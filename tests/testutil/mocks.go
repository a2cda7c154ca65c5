package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/instacontent/instacontent-api/internal/models"
	"github.com/instacontent/instacontent-api/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, email, username, password, name, plan string) (*models.User, error) {
	args := m.Called(ctx, email, username, password, name, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockWorkspaceService mocks the WorkspaceService
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) Create(ctx context.Context, name, status string, settings []byte, ownerID uuid.UUID) (*models.Workspace, error) {
	args := m.Called(ctx, name, status, settings, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) GetByID(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) GetUserWorkspaces(ctx context.Context, userID uuid.UUID) ([]models.Workspace, []string, error) {
	args := m.Called(ctx, userID)
	var workspaces []models.Workspace
	var roles []string
	if args.Get(0) != nil {
		workspaces = args.Get(0).([]models.Workspace)
	}
	if args.Get(1) != nil {
		roles = args.Get(1).([]string)
	}
	return workspaces, roles, args.Error(2)
}

func (m *MockWorkspaceService) Update(ctx context.Context, workspaceID uuid.UUID, name, status *string) (*models.Workspace, error) {
	args := m.Called(ctx, workspaceID, name, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) Delete(ctx context.Context, workspaceID uuid.UUID) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

func (m *MockWorkspaceService) IsOwner(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, workspaceID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkspaceService) IsMember(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, workspaceID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkspaceService) GetMemberRole(ctx context.Context, workspaceID, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, workspaceID, userID)
	return args.String(0), args.Error(1)
}

func (m *MockWorkspaceService) HasRole(ctx context.Context, workspaceID, userID uuid.UUID, required string) (bool, error) {
	args := m.Called(ctx, workspaceID, userID, required)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkspaceService) GetMembers(ctx context.Context, workspaceID uuid.UUID) ([]models.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceService) AddMember(ctx context.Context, workspaceID, userID uuid.UUID, role string) (*models.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceService) UpdateMemberRole(ctx context.Context, workspaceID, userID uuid.UUID, role string) error {
	args := m.Called(ctx, workspaceID, userID, role)
	return args.Error(0)
}

func (m *MockWorkspaceService) RemoveMember(ctx context.Context, workspaceID, userID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, userID)
	return args.Error(0)
}

func (m *MockWorkspaceService) TouchActivity(ctx context.Context, workspaceID uuid.UUID) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

// MockBrandProfileService mocks the BrandProfileService
type MockBrandProfileService struct {
	mock.Mock
}

func (m *MockBrandProfileService) Upsert(ctx context.Context, workspaceID uuid.UUID, businessType, targetAudience, brandVoice string, brandValues, contentGoals []byte) (*models.BrandProfile, error) {
	args := m.Called(ctx, workspaceID, businessType, targetAudience, brandVoice, brandValues, contentGoals)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BrandProfile), args.Error(1)
}

func (m *MockBrandProfileService) GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) (*models.BrandProfile, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BrandProfile), args.Error(1)
}

// MockContentService mocks the ContentService
type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) Generate(ctx context.Context, workspaceID uuid.UUID, input services.ContentInput) (*models.ContentItem, error) {
	args := m.Called(ctx, workspaceID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentItem), args.Error(1)
}

func (m *MockContentService) GetByID(ctx context.Context, contentID uuid.UUID) (*models.ContentItem, error) {
	args := m.Called(ctx, contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentItem), args.Error(1)
}

func (m *MockContentService) GetByWorkspace(ctx context.Context, workspaceID uuid.UUID, status, contentType string) ([]models.ContentItem, error) {
	args := m.Called(ctx, workspaceID, status, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContentItem), args.Error(1)
}

func (m *MockContentService) Update(ctx context.Context, contentID uuid.UUID, update services.ContentUpdate) (*models.ContentItem, error) {
	args := m.Called(ctx, contentID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentItem), args.Error(1)
}

func (m *MockContentService) Delete(ctx context.Context, contentID uuid.UUID) error {
	args := m.Called(ctx, contentID)
	return args.Error(0)
}

func (m *MockContentService) WorkspaceStats(ctx context.Context, workspaceID uuid.UUID) (*models.ContentStats, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentStats), args.Error(1)
}

// MockTrendService mocks the TrendService
type MockTrendService struct {
	mock.Mock
}

func (m *MockTrendService) Create(ctx context.Context, input services.TrendInput) (*models.Trend, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trend), args.Error(1)
}

func (m *MockTrendService) List(ctx context.Context, status string) ([]models.Trend, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Trend), args.Error(1)
}

func (m *MockTrendService) UpdateStatus(ctx context.Context, trendID uuid.UUID, status string) (*models.Trend, error) {
	args := m.Called(ctx, trendID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trend), args.Error(1)
}

// MockCollaborationService mocks the CollaborationService
type MockCollaborationService struct {
	mock.Mock
}

func (m *MockCollaborationService) Join(ctx context.Context, contentID, userID uuid.UUID) (*models.CollaborationSession, error) {
	args := m.Called(ctx, contentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollaborationSession), args.Error(1)
}

func (m *MockCollaborationService) Heartbeat(ctx context.Context, contentID, userID uuid.UUID, cursor *models.CursorPosition) error {
	args := m.Called(ctx, contentID, userID, cursor)
	return args.Error(0)
}

func (m *MockCollaborationService) Leave(ctx context.Context, contentID, userID uuid.UUID) error {
	args := m.Called(ctx, contentID, userID)
	return args.Error(0)
}

func (m *MockCollaborationService) ListActive(ctx context.Context, contentID uuid.UUID) ([]models.CollaborationSession, error) {
	args := m.Called(ctx, contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CollaborationSession), args.Error(1)
}

// MockAgencyService mocks the AgencyService
type MockAgencyService struct {
	mock.Mock
}

func (m *MockAgencyService) Create(ctx context.Context, input services.AgencyInput) (*models.Agency, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agency), args.Error(1)
}

func (m *MockAgencyService) GetByID(ctx context.Context, agencyID uuid.UUID) (*models.Agency, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agency), args.Error(1)
}

func (m *MockAgencyService) GetBySlug(ctx context.Context, slug string) (*models.Agency, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agency), args.Error(1)
}

func (m *MockAgencyService) UpdateBranding(ctx context.Context, agencyID uuid.UUID, update services.BrandingUpdate) (*models.Agency, error) {
	args := m.Called(ctx, agencyID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agency), args.Error(1)
}

func (m *MockAgencyService) AddClient(ctx context.Context, agencyID uuid.UUID, input services.ClientInput) (*models.AgencyClient, error) {
	args := m.Called(ctx, agencyID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AgencyClient), args.Error(1)
}

func (m *MockAgencyService) GetClientByID(ctx context.Context, clientID uuid.UUID) (*models.AgencyClient, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AgencyClient), args.Error(1)
}

func (m *MockAgencyService) GetClients(ctx context.Context, agencyID uuid.UUID) ([]models.AgencyClient, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AgencyClient), args.Error(1)
}

func (m *MockAgencyService) UpdateClientStatus(ctx context.Context, clientID uuid.UUID, status string) error {
	args := m.Called(ctx, clientID, status)
	return args.Error(0)
}

func (m *MockAgencyService) GetUsage(ctx context.Context, agencyID uuid.UUID) (*services.Usage, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Usage), args.Error(1)
}

func (m *MockAgencyService) CreateInvite(ctx context.Context, agencyID uuid.UUID, email, role string, invitedBy uuid.UUID, expiry time.Duration) (*models.AgencyInvite, error) {
	args := m.Called(ctx, agencyID, email, role, invitedBy, expiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AgencyInvite), args.Error(1)
}

func (m *MockAgencyService) GetInviteByToken(ctx context.Context, token string) (*models.AgencyInvite, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AgencyInvite), args.Error(1)
}

func (m *MockAgencyService) AcceptInvite(ctx context.Context, token string, userID uuid.UUID, now time.Time) (*models.AgencyInvite, error) {
	args := m.Called(ctx, token, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AgencyInvite), args.Error(1)
}

func (m *MockAgencyService) GetPendingInvites(ctx context.Context, agencyID uuid.UUID) ([]models.AgencyInvite, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AgencyInvite), args.Error(1)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendAgencyInvite(to, agencyName, inviterName, inviteURL string) error {
	args := m.Called(to, agencyName, inviterName, inviteURL)
	return args.Error(0)
}

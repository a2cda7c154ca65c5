package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/instacontent/instacontent-api/internal/models"
	"github.com/instacontent/instacontent-api/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Register(ctx context.Context, email, username, password, name, plan string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error)
}

// WorkspaceServiceInterface defines the methods used by handlers from WorkspaceService
type WorkspaceServiceInterface interface {
	Create(ctx context.Context, name, status string, settings []byte, ownerID uuid.UUID) (*models.Workspace, error)
	GetByID(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error)
	GetUserWorkspaces(ctx context.Context, userID uuid.UUID) ([]models.Workspace, []string, error)
	Update(ctx context.Context, workspaceID uuid.UUID, name, status *string) (*models.Workspace, error)
	Delete(ctx context.Context, workspaceID uuid.UUID) error
	IsOwner(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error)
	IsMember(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error)
	GetMemberRole(ctx context.Context, workspaceID, userID uuid.UUID) (string, error)
	HasRole(ctx context.Context, workspaceID, userID uuid.UUID, required string) (bool, error)
	GetMembers(ctx context.Context, workspaceID uuid.UUID) ([]models.WorkspaceMember, error)
	AddMember(ctx context.Context, workspaceID, userID uuid.UUID, role string) (*models.WorkspaceMember, error)
	UpdateMemberRole(ctx context.Context, workspaceID, userID uuid.UUID, role string) error
	RemoveMember(ctx context.Context, workspaceID, userID uuid.UUID) error
	TouchActivity(ctx context.Context, workspaceID uuid.UUID) error
}

// BrandProfileServiceInterface defines the methods used by handlers from BrandProfileService
type BrandProfileServiceInterface interface {
	Upsert(ctx context.Context, workspaceID uuid.UUID, businessType, targetAudience, brandVoice string, brandValues, contentGoals []byte) (*models.BrandProfile, error)
	GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) (*models.BrandProfile, error)
}

// ContentServiceInterface defines the methods used by handlers from ContentService
type ContentServiceInterface interface {
	Generate(ctx context.Context, workspaceID uuid.UUID, input services.ContentInput) (*models.ContentItem, error)
	GetByID(ctx context.Context, contentID uuid.UUID) (*models.ContentItem, error)
	GetByWorkspace(ctx context.Context, workspaceID uuid.UUID, status, contentType string) ([]models.ContentItem, error)
	Update(ctx context.Context, contentID uuid.UUID, update services.ContentUpdate) (*models.ContentItem, error)
	Delete(ctx context.Context, contentID uuid.UUID) error
	WorkspaceStats(ctx context.Context, workspaceID uuid.UUID) (*models.ContentStats, error)
}

// TrendServiceInterface defines the methods used by handlers from TrendService
type TrendServiceInterface interface {
	Create(ctx context.Context, input services.TrendInput) (*models.Trend, error)
	List(ctx context.Context, status string) ([]models.Trend, error)
	UpdateStatus(ctx context.Context, trendID uuid.UUID, status string) (*models.Trend, error)
}

// CollaborationServiceInterface defines the methods used by handlers from CollaborationService
type CollaborationServiceInterface interface {
	Join(ctx context.Context, contentID, userID uuid.UUID) (*models.CollaborationSession, error)
	Heartbeat(ctx context.Context, contentID, userID uuid.UUID, cursor *models.CursorPosition) error
	Leave(ctx context.Context, contentID, userID uuid.UUID) error
	ListActive(ctx context.Context, contentID uuid.UUID) ([]models.CollaborationSession, error)
}

// AgencyServiceInterface defines the methods used by handlers from AgencyService
type AgencyServiceInterface interface {
	Create(ctx context.Context, input services.AgencyInput) (*models.Agency, error)
	GetByID(ctx context.Context, agencyID uuid.UUID) (*models.Agency, error)
	GetBySlug(ctx context.Context, slug string) (*models.Agency, error)
	UpdateBranding(ctx context.Context, agencyID uuid.UUID, update services.BrandingUpdate) (*models.Agency, error)
	AddClient(ctx context.Context, agencyID uuid.UUID, input services.ClientInput) (*models.AgencyClient, error)
	GetClientByID(ctx context.Context, clientID uuid.UUID) (*models.AgencyClient, error)
	GetClients(ctx context.Context, agencyID uuid.UUID) ([]models.AgencyClient, error)
	UpdateClientStatus(ctx context.Context, clientID uuid.UUID, status string) error
	GetUsage(ctx context.Context, agencyID uuid.UUID) (*services.Usage, error)
	CreateInvite(ctx context.Context, agencyID uuid.UUID, email, role string, invitedBy uuid.UUID, expiry time.Duration) (*models.AgencyInvite, error)
	GetInviteByToken(ctx context.Context, token string) (*models.AgencyInvite, error)
	AcceptInvite(ctx context.Context, token string, userID uuid.UUID, now time.Time) (*models.AgencyInvite, error)
	GetPendingInvites(ctx context.Context, agencyID uuid.UUID) ([]models.AgencyInvite, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	SendAgencyInvite(to, agencyName, inviterName, inviteURL string) error
}

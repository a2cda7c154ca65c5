package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/instacontent/instacontent-api/internal/database"
	"github.com/instacontent/instacontent-api/internal/models"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email:    fmt.Sprintf("user%d@example.com", f.counter),
		Username: fmt.Sprintf("user%d", f.counter),
		Name:     fmt.Sprintf("Test User %d", f.counter),
		Plan:     models.PlanStarter,
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, username, password_hash, name, plan)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, username, password_hash, name, plan, created_at, updated_at
	`, user.Email, user.Username, "test-hash", user.Name, user.Plan).Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordHash,
		&user.Name, &user.Plan, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithUsername sets the user's username
func WithUsername(username string) UserOption {
	return func(u *models.User) {
		u.Username = username
	}
}

// WithPlan sets the user's subscription plan
func WithPlan(plan string) UserOption {
	return func(u *models.User) {
		u.Plan = plan
	}
}

// CreateWorkspace creates a test workspace with the given owner enrolled as a member
func (f *Fixtures) CreateWorkspace(t *testing.T, owner *models.User, opts ...WorkspaceOption) *models.Workspace {
	t.Helper()
	f.counter++

	ws := &models.Workspace{
		Name:    fmt.Sprintf("Test Workspace %d", f.counter),
		OwnerID: owner.ID,
		Status:  models.WorkspaceStatusActive,
	}

	for _, opt := range opts {
		opt(ws)
	}

	ctx := context.Background()
	tx, err := f.db.Pool.Begin(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO workspaces (name, owner_id, status, settings)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, owner_id, status, last_activity, settings, created_at
	`, ws.Name, ws.OwnerID, ws.Status, ws.Settings).Scan(
		&ws.ID, &ws.Name, &ws.OwnerID, &ws.Status,
		&ws.LastActivity, &ws.Settings, &ws.CreatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create workspace: %v", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO workspace_members (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
	`, ws.ID, owner.ID, models.RoleOwner)
	if err != nil {
		t.Fatalf("failed to add owner as member: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("failed to commit transaction: %v", err)
	}

	return ws
}

// WorkspaceOption configures a test workspace
type WorkspaceOption func(*models.Workspace)

// WithWorkspaceName sets the workspace name
func WithWorkspaceName(name string) WorkspaceOption {
	return func(w *models.Workspace) {
		w.Name = name
	}
}

// WithWorkspaceStatus sets the workspace status
func WithWorkspaceStatus(status string) WorkspaceOption {
	return func(w *models.Workspace) {
		w.Status = status
	}
}

// AddWorkspaceMember adds a member to a workspace with the given role
func (f *Fixtures) AddWorkspaceMember(t *testing.T, ws *models.Workspace, user *models.User, role string) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO workspace_members (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (workspace_id, user_id) DO UPDATE SET role = EXCLUDED.role
	`, ws.ID, user.ID, role)
	if err != nil {
		t.Fatalf("failed to add workspace member: %v", err)
	}
}

// CreateContentItem creates a test content item in a workspace
func (f *Fixtures) CreateContentItem(t *testing.T, ws *models.Workspace, opts ...ContentOption) *models.ContentItem {
	t.Helper()
	f.counter++

	item := &models.ContentItem{
		WorkspaceID: ws.ID,
		Type:        models.ContentTypePost,
		Caption:     fmt.Sprintf("Test caption %d", f.counter),
		Hashtags:    json.RawMessage(`["#test"]`),
		Status:      models.ContentStatusDraft,
		AIGenerated: true,
	}

	for _, opt := range opts {
		opt(item)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO content_items (workspace_id, type, caption, hashtags, visual_recommendations, performance_prediction, status, ai_generated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, workspace_id, type, caption, hashtags, visual_recommendations, performance_prediction, status, ai_generated, created_at, updated_at
	`, item.WorkspaceID, item.Type, item.Caption, item.Hashtags,
		item.VisualRecommendations, item.PerformancePrediction, item.Status, item.AIGenerated).Scan(
		&item.ID, &item.WorkspaceID, &item.Type, &item.Caption,
		&item.Hashtags, &item.VisualRecommendations, &item.PerformancePrediction,
		&item.Status, &item.AIGenerated, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create content item: %v", err)
	}

	return item
}

// ContentOption configures a test content item
type ContentOption func(*models.ContentItem)

// WithContentType sets the content type
func WithContentType(contentType string) ContentOption {
	return func(c *models.ContentItem) {
		c.Type = contentType
	}
}

// WithContentStatus sets the content status
func WithContentStatus(status string) ContentOption {
	return func(c *models.ContentItem) {
		c.Status = status
	}
}

// CreateAgency creates a test agency owned by the given user
func (f *Fixtures) CreateAgency(t *testing.T, owner *models.User, opts ...AgencyOption) *models.Agency {
	t.Helper()
	f.counter++

	agency := &models.Agency{
		Name:               fmt.Sprintf("Test Agency %d", f.counter),
		Slug:               fmt.Sprintf("test-agency-%d", f.counter),
		OwnerID:            owner.ID,
		BrandColors:        models.DefaultBrandColors(),
		WhitelabelSettings: models.DefaultWhitelabelSettings(),
		SubscriptionPlan:   models.PlanAgency,
		MaxClients:         5,
		MaxUsersPerClient:  3,
	}

	for _, opt := range opts {
		opt(agency)
	}

	colors, err := json.Marshal(agency.BrandColors)
	if err != nil {
		t.Fatalf("failed to marshal brand colors: %v", err)
	}
	settings, err := json.Marshal(agency.WhitelabelSettings)
	if err != nil {
		t.Fatalf("failed to marshal whitelabel settings: %v", err)
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO agencies (name, slug, owner_id, brand_colors, whitelabel_settings, subscription_plan, max_clients, max_users_per_client)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, agency.Name, agency.Slug, agency.OwnerID, colors, settings,
		agency.SubscriptionPlan, agency.MaxClients, agency.MaxUsersPerClient).Scan(
		&agency.ID, &agency.CreatedAt, &agency.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create agency: %v", err)
	}

	return agency
}

// AgencyOption configures a test agency
type AgencyOption func(*models.Agency)

// WithSlug sets the agency slug
func WithSlug(slug string) AgencyOption {
	return func(a *models.Agency) {
		a.Slug = slug
	}
}

// WithMaxClients sets the agency client limit
func WithMaxClients(max int) AgencyOption {
	return func(a *models.Agency) {
		a.MaxClients = max
	}
}

// CreateAgencyClient enrolls a workspace as a client of the agency
func (f *Fixtures) CreateAgencyClient(t *testing.T, agency *models.Agency, ws *models.Workspace, opts ...ClientOption) *models.AgencyClient {
	t.Helper()
	f.counter++

	client := &models.AgencyClient{
		AgencyID:            agency.ID,
		WorkspaceID:         ws.ID,
		ClientName:          fmt.Sprintf("Test Client %d", f.counter),
		MonthlyContentQuota: 50,
		Status:              models.ClientStatusActive,
		BillingType:         models.BillingTypeAgency,
	}

	for _, opt := range opts {
		opt(client)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO agency_clients (agency_id, workspace_id, client_name, monthly_content_quota, used_content_this_month, status, billing_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, monthly_fee::text, created_at, updated_at
	`, client.AgencyID, client.WorkspaceID, client.ClientName,
		client.MonthlyContentQuota, client.UsedContentThisMonth, client.Status, client.BillingType).Scan(
		&client.ID, &client.MonthlyFee, &client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create agency client: %v", err)
	}

	return client
}

// ClientOption configures a test agency client
type ClientOption func(*models.AgencyClient)

// WithQuota sets the client's monthly content quota
func WithQuota(quota int) ClientOption {
	return func(c *models.AgencyClient) {
		c.MonthlyContentQuota = quota
	}
}

// WithUsedContent sets how much of the quota is already consumed
func WithUsedContent(used int) ClientOption {
	return func(c *models.AgencyClient) {
		c.UsedContentThisMonth = used
	}
}

// WithClientStatus sets the client status
func WithClientStatus(status string) ClientOption {
	return func(c *models.AgencyClient) {
		c.Status = status
	}
}

// CreateAgencyInvite creates a test invite for the agency
func (f *Fixtures) CreateAgencyInvite(t *testing.T, agency *models.Agency, invitedBy *models.User, opts ...InviteOption) *models.AgencyInvite {
	t.Helper()
	f.counter++

	invite := &models.AgencyInvite{
		AgencyID:    agency.ID,
		Email:       fmt.Sprintf("invitee%d@example.com", f.counter),
		Role:        models.AgencyRoleMember,
		InviteToken: uuid.NewString(),
		ExpiresAt:   time.Now().Add(7 * 24 * time.Hour),
		InvitedBy:   invitedBy.ID,
	}

	for _, opt := range opts {
		opt(invite)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO agency_invites (agency_id, email, role, invite_token, expires_at, accepted_at, invited_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, invite.AgencyID, invite.Email, invite.Role, invite.InviteToken,
		invite.ExpiresAt, invite.AcceptedAt, invite.InvitedBy).Scan(
		&invite.ID, &invite.CreatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create agency invite: %v", err)
	}

	return invite
}

// InviteOption configures a test agency invite
type InviteOption func(*models.AgencyInvite)

// WithInviteEmail sets the invitee email
func WithInviteEmail(email string) InviteOption {
	return func(i *models.AgencyInvite) {
		i.Email = email
	}
}

// WithInviteRole sets the invite role
func WithInviteRole(role string) InviteOption {
	return func(i *models.AgencyInvite) {
		i.Role = role
	}
}

// WithExpiresAt sets the invite expiry
func WithExpiresAt(at time.Time) InviteOption {
	return func(i *models.AgencyInvite) {
		i.ExpiresAt = at
	}
}

// WithAcceptedAt marks the invite as already used
func WithAcceptedAt(at time.Time) InviteOption {
	return func(i *models.AgencyInvite) {
		i.AcceptedAt = &at
	}
}

// CreateRefreshToken creates a test refresh token
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}

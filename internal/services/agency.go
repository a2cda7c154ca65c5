package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/instacontent/instacontent-api/internal/database"
	"github.com/instacontent/instacontent-api/internal/models"
)

var (
	ErrAgencyNotFound     = errors.New("agency not found")
	ErrSlugTaken          = errors.New("agency slug is already taken")
	ErrClientNotFound     = errors.New("agency client not found")
	ErrClientLimitReached = errors.New("agency client limit reached")
	ErrWorkspaceManaged   = errors.New("workspace is already managed by an agency")
	ErrInviteNotFound     = errors.New("invite not found")
	ErrInviteExpired      = errors.New("invite has expired")
	ErrInviteAlreadyUsed  = errors.New("invite has already been used")
)

const inviteTokenLen = 32

type AgencyService struct {
	db *database.DB
}

func NewAgencyService(db *database.DB) *AgencyService {
	return &AgencyService{db: db}
}

type AgencyInput struct {
	Name               string
	Slug               string
	OwnerID            uuid.UUID
	CustomDomain       *string
	LogoURL            *string
	BrandColors        models.BrandColors
	WhitelabelSettings models.WhitelabelSettings
	SubscriptionPlan   string
	MaxClients         int
	MaxUsersPerClient  int
}

func (s *AgencyService) Create(ctx context.Context, input AgencyInput) (*models.Agency, error) {
	colors, err := json.Marshal(input.BrandColors)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal brand colors: %w", err)
	}
	settings, err := json.Marshal(input.WhitelabelSettings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal whitelabel settings: %w", err)
	}

	var agency models.Agency
	var colorsRaw, settingsRaw []byte
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO agencies (name, slug, owner_id, custom_domain, logo_url, brand_colors, whitelabel_settings, subscription_plan, max_clients, max_users_per_client)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, name, slug, owner_id, custom_domain, logo_url, brand_colors, whitelabel_settings, subscription_plan, max_clients, max_users_per_client, created_at, updated_at
	`, input.Name, input.Slug, input.OwnerID, input.CustomDomain, input.LogoURL,
		colors, settings, input.SubscriptionPlan, input.MaxClients, input.MaxUsersPerClient).Scan(
		&agency.ID, &agency.Name, &agency.Slug, &agency.OwnerID,
		&agency.CustomDomain, &agency.LogoURL, &colorsRaw, &settingsRaw,
		&agency.SubscriptionPlan, &agency.MaxClients, &agency.MaxUsersPerClient,
		&agency.CreatedAt, &agency.UpdatedAt,
	)
	if err != nil {
		if database.UniqueViolation(err, "agencies_slug_key") {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to create agency: %w", err)
	}

	if err := unmarshalAgencyJSON(colorsRaw, settingsRaw, &agency); err != nil {
		return nil, err
	}
	return &agency, nil
}

func (s *AgencyService) GetByID(ctx context.Context, agencyID uuid.UUID) (*models.Agency, error) {
	return s.getAgency(ctx, `WHERE id = $1`, agencyID)
}

func (s *AgencyService) GetBySlug(ctx context.Context, slug string) (*models.Agency, error) {
	return s.getAgency(ctx, `WHERE slug = $1`, slug)
}

func (s *AgencyService) getAgency(ctx context.Context, where string, arg any) (*models.Agency, error) {
	var agency models.Agency
	var colorsRaw, settingsRaw []byte
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, slug, owner_id, custom_domain, logo_url, brand_colors, whitelabel_settings, subscription_plan, max_clients, max_users_per_client, created_at, updated_at
		FROM agencies `+where, arg).Scan(
		&agency.ID, &agency.Name, &agency.Slug, &agency.OwnerID,
		&agency.CustomDomain, &agency.LogoURL, &colorsRaw, &settingsRaw,
		&agency.SubscriptionPlan, &agency.MaxClients, &agency.MaxUsersPerClient,
		&agency.CreatedAt, &agency.UpdatedAt,
	)
	if err != nil {
		return nil, ErrAgencyNotFound
	}
	if err := unmarshalAgencyJSON(colorsRaw, settingsRaw, &agency); err != nil {
		return nil, err
	}
	return &agency, nil
}

// BrandingUpdate carries the optional white-label fields; nil fields keep
// their current values.
type BrandingUpdate struct {
	LogoURL            *string
	CustomDomain       *string
	BrandColors        *models.BrandColors
	WhitelabelSettings *models.WhitelabelSettings
}

func (s *AgencyService) UpdateBranding(ctx context.Context, agencyID uuid.UUID, update BrandingUpdate) (*models.Agency, error) {
	agency, err := s.GetByID(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	if update.LogoURL != nil {
		agency.LogoURL = update.LogoURL
	}
	if update.CustomDomain != nil {
		agency.CustomDomain = update.CustomDomain
	}
	if update.BrandColors != nil {
		agency.BrandColors = *update.BrandColors
	}
	if update.WhitelabelSettings != nil {
		agency.WhitelabelSettings = *update.WhitelabelSettings
	}

	colors, err := json.Marshal(agency.BrandColors)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal brand colors: %w", err)
	}
	settings, err := json.Marshal(agency.WhitelabelSettings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal whitelabel settings: %w", err)
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE agencies
		SET logo_url = $1, custom_domain = $2, brand_colors = $3, whitelabel_settings = $4, updated_at = NOW()
		WHERE id = $5
	`, agency.LogoURL, agency.CustomDomain, colors, settings, agencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to update branding: %w", err)
	}
	return agency, nil
}

type ClientInput struct {
	WorkspaceID         uuid.UUID
	ClientName          string
	ClientEmail         *string
	ClientPhone         *string
	Industry            *string
	MonthlyContentQuota int
	BillingType         string
	MonthlyFee          string
	ContractStartDate   *string
	ContractEndDate     *string
	Notes               *string
}

// AddClient attaches a workspace to the agency. The agency row is locked
// first, so two concurrent adds serialize and cannot exceed max_clients.
func (s *AgencyService) AddClient(ctx context.Context, agencyID uuid.UUID, input ClientInput) (*models.AgencyClient, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var maxClients int
	err = tx.QueryRow(ctx, `
		SELECT max_clients FROM agencies WHERE id = $1 FOR UPDATE
	`, agencyID).Scan(&maxClients)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAgencyNotFound
		}
		return nil, fmt.Errorf("failed to lock agency: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM agency_clients WHERE agency_id = $1
	`, agencyID).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}
	if count >= maxClients {
		return nil, ErrClientLimitReached
	}

	var client models.AgencyClient
	err = tx.QueryRow(ctx, `
		INSERT INTO agency_clients (agency_id, workspace_id, client_name, client_email, client_phone, industry, monthly_content_quota, billing_type, monthly_fee, contract_start_date, contract_end_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, agency_id, workspace_id, client_name, client_email, client_phone, industry, monthly_content_quota, used_content_this_month, status, billing_type, monthly_fee::text, contract_start_date::text, contract_end_date::text, notes, created_at, updated_at
	`, agencyID, input.WorkspaceID, input.ClientName, input.ClientEmail, input.ClientPhone,
		input.Industry, input.MonthlyContentQuota, input.BillingType, input.MonthlyFee,
		input.ContractStartDate, input.ContractEndDate, input.Notes).Scan(
		&client.ID, &client.AgencyID, &client.WorkspaceID, &client.ClientName,
		&client.ClientEmail, &client.ClientPhone, &client.Industry,
		&client.MonthlyContentQuota, &client.UsedContentThisMonth, &client.Status,
		&client.BillingType, &client.MonthlyFee, &client.ContractStartDate,
		&client.ContractEndDate, &client.Notes, &client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		if database.UniqueViolation(err, "agency_clients_workspace_id_key") {
			return nil, ErrWorkspaceManaged
		}
		return nil, fmt.Errorf("failed to add client: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &client, nil
}

func (s *AgencyService) GetClientByID(ctx context.Context, clientID uuid.UUID) (*models.AgencyClient, error) {
	return s.getClient(ctx, `WHERE id = $1`, clientID)
}

func (s *AgencyService) GetClientByWorkspace(ctx context.Context, workspaceID uuid.UUID) (*models.AgencyClient, error) {
	return s.getClient(ctx, `WHERE workspace_id = $1`, workspaceID)
}

func (s *AgencyService) getClient(ctx context.Context, where string, arg any) (*models.AgencyClient, error) {
	var client models.AgencyClient
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, agency_id, workspace_id, client_name, client_email, client_phone, industry, monthly_content_quota, used_content_this_month, status, billing_type, monthly_fee::text, contract_start_date::text, contract_end_date::text, notes, created_at, updated_at
		FROM agency_clients `+where, arg).Scan(
		&client.ID, &client.AgencyID, &client.WorkspaceID, &client.ClientName,
		&client.ClientEmail, &client.ClientPhone, &client.Industry,
		&client.MonthlyContentQuota, &client.UsedContentThisMonth, &client.Status,
		&client.BillingType, &client.MonthlyFee, &client.ContractStartDate,
		&client.ContractEndDate, &client.Notes, &client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		return nil, ErrClientNotFound
	}
	return &client, nil
}

func (s *AgencyService) GetClients(ctx context.Context, agencyID uuid.UUID) ([]models.AgencyClient, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, agency_id, workspace_id, client_name, client_email, client_phone, industry, monthly_content_quota, used_content_this_month, status, billing_type, monthly_fee::text, contract_start_date::text, contract_end_date::text, notes, created_at, updated_at
		FROM agency_clients
		WHERE agency_id = $1
		ORDER BY created_at
	`, agencyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []models.AgencyClient
	for rows.Next() {
		var client models.AgencyClient
		if err := rows.Scan(
			&client.ID, &client.AgencyID, &client.WorkspaceID, &client.ClientName,
			&client.ClientEmail, &client.ClientPhone, &client.Industry,
			&client.MonthlyContentQuota, &client.UsedContentThisMonth, &client.Status,
			&client.BillingType, &client.MonthlyFee, &client.ContractStartDate,
			&client.ContractEndDate, &client.Notes, &client.CreatedAt, &client.UpdatedAt,
		); err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, nil
}

func (s *AgencyService) UpdateClientStatus(ctx context.Context, clientID uuid.UUID, status string) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE agency_clients SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, clientID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}

// RecordContentGenerated consumes one unit of the client's monthly quota.
// The increment and its precondition run as a single conditional update, so
// two concurrent calls with one unit left yield exactly one success.
func (s *AgencyService) RecordContentGenerated(ctx context.Context, clientID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE agency_clients
		SET used_content_this_month = used_content_this_month + 1, updated_at = NOW()
		WHERE id = $1
		  AND status = 'active'
		  AND used_content_this_month < monthly_content_quota
	`, clientID)
	if err != nil {
		return fmt.Errorf("failed to record content generation: %w", err)
	}
	if result.RowsAffected() == 0 {
		var exists bool
		if err := s.db.Pool.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM agency_clients WHERE id = $1)
		`, clientID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrClientNotFound
		}
		return ErrQuotaExceeded
	}
	return nil
}

// ResetMonthlyUsage zeroes every client's usage counter. Called at the
// monthly boundary by cmd/reset-quotas.
func (s *AgencyService) ResetMonthlyUsage(ctx context.Context) (int64, error) {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE agency_clients SET used_content_this_month = 0, updated_at = NOW()
		WHERE used_content_this_month > 0
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to reset quotas: %w", err)
	}
	return result.RowsAffected(), nil
}

// Usage aggregates client counts and quota consumption for the agency
// dashboard.
type Usage struct {
	Clients       int
	ActiveClients int
	QuotaTotal    int
	QuotaUsed     int
}

func (s *AgencyService) GetUsage(ctx context.Context, agencyID uuid.UUID) (*Usage, error) {
	var usage Usage
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'active'),
		       COALESCE(SUM(monthly_content_quota), 0),
		       COALESCE(SUM(used_content_this_month), 0)
		FROM agency_clients
		WHERE agency_id = $1
	`, agencyID).Scan(&usage.Clients, &usage.ActiveClients, &usage.QuotaTotal, &usage.QuotaUsed)
	if err != nil {
		return nil, err
	}
	return &usage, nil
}

// CreateInvite issues a single-use invite with a random token.
func (s *AgencyService) CreateInvite(ctx context.Context, agencyID uuid.UUID, email, role string, invitedBy uuid.UUID, expiry time.Duration) (*models.AgencyInvite, error) {
	tokenBytes := make([]byte, inviteTokenLen)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, fmt.Errorf("failed to generate invite token: %w", err)
	}
	token := hex.EncodeToString(tokenBytes)

	var invite models.AgencyInvite
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO agency_invites (agency_id, email, role, invite_token, expires_at, invited_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, agency_id, email, role, invite_token, expires_at, accepted_at, invited_by, created_at
	`, agencyID, email, role, token, time.Now().Add(expiry), invitedBy).Scan(
		&invite.ID, &invite.AgencyID, &invite.Email, &invite.Role,
		&invite.InviteToken, &invite.ExpiresAt, &invite.AcceptedAt,
		&invite.InvitedBy, &invite.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}
	return &invite, nil
}

func (s *AgencyService) GetInviteByToken(ctx context.Context, token string) (*models.AgencyInvite, error) {
	var invite models.AgencyInvite
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, agency_id, email, role, invite_token, expires_at, accepted_at, invited_by, created_at
		FROM agency_invites WHERE invite_token = $1
	`, token).Scan(
		&invite.ID, &invite.AgencyID, &invite.Email, &invite.Role,
		&invite.InviteToken, &invite.ExpiresAt, &invite.AcceptedAt,
		&invite.InvitedBy, &invite.CreatedAt,
	)
	if err != nil {
		return nil, ErrInviteNotFound
	}
	return &invite, nil
}

// AcceptInvite marks the invite accepted and enrolls the user in every
// active client workspace of the agency, all in one transaction. The accept
// itself is a conditional update keyed on the token still being pending and
// unexpired, so concurrent acceptances cannot both succeed.
func (s *AgencyService) AcceptInvite(ctx context.Context, token string, userID uuid.UUID, now time.Time) (*models.AgencyInvite, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var invite models.AgencyInvite
	err = tx.QueryRow(ctx, `
		UPDATE agency_invites
		SET accepted_at = $2
		WHERE invite_token = $1 AND accepted_at IS NULL AND expires_at > $2
		RETURNING id, agency_id, email, role, invite_token, expires_at, accepted_at, invited_by, created_at
	`, token, now).Scan(
		&invite.ID, &invite.AgencyID, &invite.Email, &invite.Role,
		&invite.InviteToken, &invite.ExpiresAt, &invite.AcceptedAt,
		&invite.InvitedBy, &invite.CreatedAt,
	)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("failed to accept invite: %w", err)
		}
		return nil, s.classifyInviteFailure(ctx, token, now)
	}

	// Agency admins get admin on client workspaces, members get editor.
	memberRole := models.RoleEditor
	if invite.Role == models.AgencyRoleAdmin {
		memberRole = models.RoleAdmin
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO workspace_members (workspace_id, user_id, role)
		SELECT ac.workspace_id, $2, $3
		FROM agency_clients ac
		WHERE ac.agency_id = $1 AND ac.status = 'active'
		ON CONFLICT (workspace_id, user_id) DO NOTHING
	`, invite.AgencyID, userID, memberRole)
	if err != nil {
		return nil, fmt.Errorf("failed to enroll member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &invite, nil
}

// classifyInviteFailure explains why the conditional accept matched no row.
// Expiry wins over reuse: an invite past its deadline reports expired even
// if it was also accepted at some point.
func (s *AgencyService) classifyInviteFailure(ctx context.Context, token string, now time.Time) error {
	invite, err := s.GetInviteByToken(ctx, token)
	if err != nil {
		return err
	}
	if !now.Before(invite.ExpiresAt) {
		return ErrInviteExpired
	}
	if invite.AcceptedAt != nil {
		return ErrInviteAlreadyUsed
	}
	return ErrInviteNotFound
}

func (s *AgencyService) GetPendingInvites(ctx context.Context, agencyID uuid.UUID) ([]models.AgencyInvite, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, agency_id, email, role, invite_token, expires_at, accepted_at, invited_by, created_at
		FROM agency_invites
		WHERE agency_id = $1 AND accepted_at IS NULL AND expires_at > NOW()
		ORDER BY created_at DESC
	`, agencyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []models.AgencyInvite
	for rows.Next() {
		var invite models.AgencyInvite
		if err := rows.Scan(
			&invite.ID, &invite.AgencyID, &invite.Email, &invite.Role,
			&invite.InviteToken, &invite.ExpiresAt, &invite.AcceptedAt,
			&invite.InvitedBy, &invite.CreatedAt,
		); err != nil {
			return nil, err
		}
		invites = append(invites, invite)
	}
	return invites, nil
}

func unmarshalAgencyJSON(colors, settings []byte, agency *models.Agency) error {
	if err := json.Unmarshal(colors, &agency.BrandColors); err != nil {
		return fmt.Errorf("failed to unmarshal brand colors: %w", err)
	}
	if err := json.Unmarshal(settings, &agency.WhitelabelSettings); err != nil {
		return fmt.Errorf("failed to unmarshal whitelabel settings: %w", err)
	}
	return nil
}

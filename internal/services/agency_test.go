package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/instacontent/instacontent-api/internal/database"
	"github.com/instacontent/instacontent-api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAgencyService(t *testing.T) (*AgencyService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewAgencyService(db), mock
}

func agencyJSON(t *testing.T) ([]byte, []byte) {
	t.Helper()
	colors, err := json.Marshal(models.DefaultBrandColors())
	require.NoError(t, err)
	settings, err := json.Marshal(models.DefaultWhitelabelSettings())
	require.NoError(t, err)
	return colors, settings
}

func TestAgencyService_Create(t *testing.T) {
	svc, mock := setupAgencyService(t)
	ctx := context.Background()
	agencyID := uuid.New()
	ownerID := uuid.New()
	now := time.Now()
	colors, settings := agencyJSON(t)

	rows := pgxmock.NewRows([]string{
		"id", "name", "slug", "owner_id", "custom_domain", "logo_url",
		"brand_colors", "whitelabel_settings", "subscription_plan",
		"max_clients", "max_users_per_client", "created_at", "updated_at",
	}).AddRow(agencyID, "Studio North", "studio-north", ownerID, (*string)(nil), (*string)(nil),
		colors, settings, "starter", 5, 3, now, now)

	mock.ExpectQuery(`INSERT INTO agencies`).
		WithArgs("Studio North", "studio-north", ownerID, (*string)(nil), (*string)(nil),
			colors, settings, "starter", 5, 3).
		WillReturnRows(rows)

	agency, err := svc.Create(ctx, AgencyInput{
		Name:               "Studio North",
		Slug:               "studio-north",
		OwnerID:            ownerID,
		BrandColors:        models.DefaultBrandColors(),
		WhitelabelSettings: models.DefaultWhitelabelSettings(),
		SubscriptionPlan:   "starter",
		MaxClients:         5,
		MaxUsersPerClient:  3,
	})

	require.NoError(t, err)
	assert.Equal(t, agencyID, agency.ID)
	assert.Equal(t, "studio-north", agency.Slug)
	assert.Equal(t, "#8B5CF6", agency.BrandColors.Primary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyService_Create_SlugTaken(t *testing.T) {
	svc, mock := setupAgencyService(t)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO agencies`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "agencies_slug_key"})

	_, err := svc.Create(ctx, AgencyInput{
		Name:               "Studio North",
		Slug:               "studio-north",
		OwnerID:            uuid.New(),
		BrandColors:        models.DefaultBrandColors(),
		WhitelabelSettings: models.DefaultWhitelabelSettings(),
		SubscriptionPlan:   "starter",
		MaxClients:         5,
		MaxUsersPerClient:  3,
	})

	assert.ErrorIs(t, err, ErrSlugTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyService_AddClient(t *testing.T) {
	svc, mock := setupAgencyService(t)
	ctx := context.Background()
	agencyID := uuid.New()
	workspaceID := uuid.New()
	clientID := uuid.New()
	start := "2026-01-01"
	end := "2026-12-31"

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT max_clients FROM agencies`).
		WithArgs(agencyID).
		WillReturnRows(pgxmock.NewRows([]string{"max_clients"}).AddRow(5))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM agency_clients`).
		WithArgs(agencyID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`INSERT INTO agency_clients`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "agency_id", "workspace_id", "client_name", "client_email",
			"client_phone", "industry", "monthly_content_quota",
			"used_content_this_month", "status", "billing_type", "monthly_fee",
			"contract_start_date", "contract_end_date", "notes", "created_at", "updated_at",
		}).AddRow(clientID, agencyID, workspaceID, "Acme Coffee", nil, nil, nil,
			50, 0, "active", "agency", "1250.00", &start, &end, nil, time.Now(), time.Now()))
	mock.ExpectCommit()

	client, err := svc.AddClient(ctx, agencyID, ClientInput{
		WorkspaceID:         workspaceID,
		ClientName:          "Acme Coffee",
		MonthlyContentQuota: 50,
		BillingType:         "agency",
		MonthlyFee:          "1250.00",
		ContractStartDate:   &start,
		ContractEndDate:     &end,
	})

	require.NoError(t, err)
	assert.Equal(t, clientID, client.ID)
	assert.Equal(t, "1250.00", client.MonthlyFee)
	require.NotNil(t, client.ContractStartDate)
	assert.Equal(t, "2026-01-01", *client.ContractStartDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyService_AddClient_AgencyNotFound(t *testing.T) {
	svc, mock := setupAgencyService(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT max_clients FROM agencies`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := svc.AddClient(ctx, uuid.New(), ClientInput{
		WorkspaceID:         uuid.New(),
		ClientName:          "Acme Coffee",
		MonthlyContentQuota: 50,
		BillingType:         "agency",
		MonthlyFee:          "0.00",
	})

	assert.ErrorIs(t, err, ErrAgencyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyService_AddClient_LimitReached(t *testing.T) {
	svc, mock := setupAgencyService(t)
	ctx := context.Background()
	agencyID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT max_clients FROM agencies`).
		WithArgs(agencyID).
		WillReturnRows(pgxmock.NewRows([]string{"max_clients"}).AddRow(5))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM agency_clients`).
		WithArgs(agencyID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectRollback()

	_, err := svc.AddClient(ctx, agencyID, ClientInput{
		WorkspaceID:         uuid.New(),
		ClientName:          "Acme Coffee",
		MonthlyContentQuota: 50,
		BillingType:         "agency",
		MonthlyFee:          "0.00",
	})

	assert.ErrorIs(t, err, ErrClientLimitReached)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyService_AddClient_WorkspaceAlreadyManaged(t *testing.T) {
	svc, mock := setupAgencyService(t)
	ctx := context.Background()
	agencyID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT max_clients FROM agencies`).
		WithArgs(agencyID).
		WillReturnRows(pgxmock.NewRows([]string{"max_clients"}).AddRow(5))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM agency_clients`).
		WithArgs(agencyID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO agency_clients`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "agency_clients_workspace_id_key"})
	mock.ExpectRollback()

	_, err := svc.AddClient(ctx, agencyID, ClientInput{
		WorkspaceID:         uuid.New(),
		ClientName:          "Acme Coffee",
		MonthlyContentQuota: 50,
		BillingType:         "agency",
		MonthlyFee:          "0.00",
	})

	assert.ErrorIs(t, err, ErrWorkspaceManaged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyService_RecordContentGenerated(t *testing.T) {
	svc, mock := setupAgencyService(t)
	ctx := context.Background()
	clientID := uuid.New()

	mock.ExpectExec(`UPDATE agency_clients`).
		WithArgs(clientID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := svc.RecordContentGenerated(ctx, clientID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyService_RecordContentGenerated_QuotaExceeded(t *testing.T) {
	svc, mock := setupAgencyService(t)
	ctx := context.Background()
	clientID := uuid.New()

	mock.ExpectExec(`UPDATE agency_clients`).
		WithArgs(clientID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	exists := pgxmock.NewRows([]string{"exists"}).AddRow(true)
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM agency_clients`).
		WithArgs(clientID).
		WillReturnRows(exists)

	err := svc.RecordContentGenerated(ctx, clientID)

	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyService_RecordContentGenerated_ClientNotFound(t *testing.T) {
	svc, mock := setupAgencyService(t)
	ctx := context.Background()
	clientID := uuid.New()

	mock.ExpectExec(`UPDATE agency_clients`).
		WithArgs(clientID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	exists := pgxmock.NewRows([]string{"exists"}).AddRow(false)
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM agency_clients`).
		WithArgs(clientID).
		WillReturnRows(exists)

	err := svc.RecordContentGenerated(ctx, clientID)

	assert.ErrorIs(t, err, ErrClientNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyService_ResetMonthlyUsage(t *testing.T) {
	svc, mock := setupAgencyService(t)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE agency_clients SET used_content_this_month = 0`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 7))

	reset, err := svc.ResetMonthlyUsage(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(7), reset)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyService_GetUsage(t *testing.T) {
	svc, mock := setupAgencyService(t)
	ctx := context.Background()
	agencyID := uuid.New()

	rows := pgxmock.NewRows([]string{"count", "active", "quota_total", "quota_used"}).
		AddRow(4, 3, 200, 57)
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs(agencyID).
		WillReturnRows(rows)

	usage, err := svc.GetUsage(ctx, agencyID)

	require.NoError(t, err)
	assert.Equal(t, 4, usage.Clients)
	assert.Equal(t, 3, usage.ActiveClients)
	assert.Equal(t, 200, usage.QuotaTotal)
	assert.Equal(t, 57, usage.QuotaUsed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func inviteRows(id, agencyID uuid.UUID, token string, expiresAt time.Time, acceptedAt *time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "agency_id", "email", "role", "invite_token",
		"expires_at", "accepted_at", "invited_by", "created_at",
	}).AddRow(id, agencyID, "client@example.com", "member", token, expiresAt, acceptedAt, uuid.New(), time.Now())
}

func TestAgencyService_AcceptInvite(t *testing.T) {
	svc, mock := setupAgencyService(t)
	ctx := context.Background()
	inviteID := uuid.New()
	agencyID := uuid.New()
	userID := uuid.New()
	token := "sometoken"
	now := time.Now()
	accepted := now

	mock.ExpectBegin()

	mock.ExpectQuery(`UPDATE agency_invites`).
		WithArgs(token, now).
		WillReturnRows(inviteRows(inviteID, agencyID, token, now.Add(time.Hour), &accepted))

	mock.ExpectExec(`INSERT INTO workspace_members`).
		WithArgs(agencyID, userID, models.RoleEditor).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	mock.ExpectCommit()

	invite, err := svc.AcceptInvite(ctx, token, userID, now)

	require.NoError(t, err)
	assert.Equal(t, inviteID, invite.ID)
	require.NotNil(t, invite.AcceptedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyService_AcceptInvite_Expired(t *testing.T) {
	svc, mock := setupAgencyService(t)
	ctx := context.Background()
	token := "expiredtoken"
	now := time.Now()

	mock.ExpectBegin()

	mock.ExpectQuery(`UPDATE agency_invites`).
		WithArgs(token, now).
		WillReturnError(pgx.ErrNoRows)

	mock.ExpectQuery(`SELECT .+ FROM agency_invites WHERE invite_token`).
		WithArgs(token).
		WillReturnRows(inviteRows(uuid.New(), uuid.New(), token, now.Add(-time.Hour), nil))

	mock.ExpectRollback()

	_, err := svc.AcceptInvite(ctx, token, uuid.New(), now)

	assert.ErrorIs(t, err, ErrInviteExpired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyService_AcceptInvite_AlreadyUsed(t *testing.T) {
	svc, mock := setupAgencyService(t)
	ctx := context.Background()
	token := "usedtoken"
	now := time.Now()
	accepted := now.Add(-time.Minute)

	mock.ExpectBegin()

	mock.ExpectQuery(`UPDATE agency_invites`).
		WithArgs(token, now).
		WillReturnError(pgx.ErrNoRows)

	mock.ExpectQuery(`SELECT .+ FROM agency_invites WHERE invite_token`).
		WithArgs(token).
		WillReturnRows(inviteRows(uuid.New(), uuid.New(), token, now.Add(time.Hour), &accepted))

	mock.ExpectRollback()

	_, err := svc.AcceptInvite(ctx, token, uuid.New(), now)

	assert.ErrorIs(t, err, ErrInviteAlreadyUsed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// An invite that was accepted and has since expired reports expired, not
// already used.
func TestAgencyService_AcceptInvite_ExpiredWinsOverUsed(t *testing.T) {
	svc, mock := setupAgencyService(t)
	ctx := context.Background()
	token := "staletoken"
	now := time.Now()
	accepted := now.Add(-48 * time.Hour)

	mock.ExpectBegin()

	mock.ExpectQuery(`UPDATE agency_invites`).
		WithArgs(token, now).
		WillReturnError(pgx.ErrNoRows)

	mock.ExpectQuery(`SELECT .+ FROM agency_invites WHERE invite_token`).
		WithArgs(token).
		WillReturnRows(inviteRows(uuid.New(), uuid.New(), token, now.Add(-time.Hour), &accepted))

	mock.ExpectRollback()

	_, err := svc.AcceptInvite(ctx, token, uuid.New(), now)

	assert.ErrorIs(t, err, ErrInviteExpired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyService_AcceptInvite_AdminRoleMapsToAdmin(t *testing.T) {
	svc, mock := setupAgencyService(t)
	ctx := context.Background()
	agencyID := uuid.New()
	userID := uuid.New()
	token := "admintoken"
	now := time.Now()
	accepted := now

	rows := pgxmock.NewRows([]string{
		"id", "agency_id", "email", "role", "invite_token",
		"expires_at", "accepted_at", "invited_by", "created_at",
	}).AddRow(uuid.New(), agencyID, "lead@example.com", "admin", token, now.Add(time.Hour), &accepted, uuid.New(), now)

	mock.ExpectBegin()

	mock.ExpectQuery(`UPDATE agency_invites`).
		WithArgs(token, now).
		WillReturnRows(rows)

	mock.ExpectExec(`INSERT INTO workspace_members`).
		WithArgs(agencyID, userID, models.RoleAdmin).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	mock.ExpectCommit()

	_, err := svc.AcceptInvite(ctx, token, userID, now)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgencyService_UpdateClientStatus_NotFound(t *testing.T) {
	svc, mock := setupAgencyService(t)
	ctx := context.Background()
	clientID := uuid.New()

	mock.ExpectExec(`UPDATE agency_clients SET status`).
		WithArgs("paused", clientID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := svc.UpdateClientStatus(ctx, clientID, "paused")

	assert.ErrorIs(t, err, ErrClientNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

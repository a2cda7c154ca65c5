package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/instacontent/instacontent-api/internal/config"
	"github.com/instacontent/instacontent-api/internal/middleware"
	"github.com/instacontent/instacontent-api/internal/models"
	"github.com/instacontent/instacontent-api/internal/services"
	"github.com/instacontent/instacontent-api/internal/validation"
	"github.com/instacontent/instacontent-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type AgencyHandler struct {
	cfg              *config.Config
	agencyService    AgencyServiceInterface
	workspaceService WorkspaceServiceInterface
	userService      UserServiceInterface
	emailService     EmailServiceInterface
	validate         *validation.Validator
}

func NewAgencyHandler(
	cfg *config.Config,
	agencyService AgencyServiceInterface,
	workspaceService WorkspaceServiceInterface,
	userService UserServiceInterface,
	emailService EmailServiceInterface,
	validate *validation.Validator,
) *AgencyHandler {
	return &AgencyHandler{
		cfg:              cfg,
		agencyService:    agencyService,
		workspaceService: workspaceService,
		userService:      userService,
		emailService:     emailService,
		validate:         validate,
	}
}

func (h *AgencyHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateAgencyRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	req.Normalize()

	if err := h.validate.Struct("agency", &req); err != nil {
		respondInvalid(c, err)
		return
	}

	agency, err := h.agencyService.Create(context.Background(), services.AgencyInput{
		Name:               req.Name,
		Slug:               req.Slug,
		OwnerID:            userID,
		CustomDomain:       req.CustomDomain,
		LogoURL:            req.LogoURL,
		BrandColors:        *req.BrandColors,
		WhitelabelSettings: req.WhitelabelModel(),
		SubscriptionPlan:   req.SubscriptionPlan,
		MaxClients:         *req.MaxClients,
		MaxUsersPerClient:  *req.MaxUsersPerClient,
	})
	if err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			conflict(c, "slug already in use")
			return
		}
		c.InternalServerError("failed to create agency")
		return
	}

	_ = c.JSON(201, toAgencyResponse(agency))
}

func (h *AgencyHandler) Get(c *drift.Context) {
	agency, ok := h.requireOwner(c)
	if !ok {
		return
	}

	_ = c.JSON(200, toAgencyResponse(agency))
}

// GetBySlug serves the public branding lookup used by whitelabeled clients.
func (h *AgencyHandler) GetBySlug(c *drift.Context) {
	agency, err := h.agencyService.GetBySlug(context.Background(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrAgencyNotFound) {
			c.NotFound("agency not found")
			return
		}
		c.InternalServerError("failed to get agency")
		return
	}

	_ = c.JSON(200, toAgencyResponse(agency))
}

func (h *AgencyHandler) UpdateBranding(c *drift.Context) {
	agency, ok := h.requireOwner(c)
	if !ok {
		return
	}

	var req dto.UpdateAgencyBrandingRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.BrandColors != nil {
		if err := h.validate.Struct("agency", req.BrandColors); err != nil {
			respondInvalid(c, err)
			return
		}
	}

	var settings *models.WhitelabelSettings
	if req.WhitelabelSettings != nil {
		if err := h.validate.Struct("agency", req.WhitelabelSettings); err != nil {
			respondInvalid(c, err)
			return
		}
		s := req.WhitelabelSettings.Model()
		settings = &s
	}

	updated, err := h.agencyService.UpdateBranding(context.Background(), agency.ID, services.BrandingUpdate{
		LogoURL:            req.LogoURL,
		CustomDomain:       req.CustomDomain,
		BrandColors:        req.BrandColors,
		WhitelabelSettings: settings,
	})
	if err != nil {
		c.InternalServerError("failed to update branding")
		return
	}

	_ = c.JSON(200, toAgencyResponse(updated))
}

func (h *AgencyHandler) AddClient(c *drift.Context) {
	agency, ok := h.requireOwner(c)
	if !ok {
		return
	}

	var req dto.AddClientRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	req.Normalize()

	if err := h.validate.Struct("agency_client", &req); err != nil {
		respondInvalid(c, err)
		return
	}

	ctx := context.Background()

	if _, err := h.workspaceService.GetByID(ctx, req.WorkspaceID); err != nil {
		c.NotFound("workspace not found")
		return
	}

	client, err := h.agencyService.AddClient(ctx, agency.ID, services.ClientInput{
		WorkspaceID:         req.WorkspaceID,
		ClientName:          req.ClientName,
		ClientEmail:         req.ClientEmail,
		ClientPhone:         req.ClientPhone,
		Industry:            req.Industry,
		MonthlyContentQuota: *req.MonthlyContentQuota,
		BillingType:         req.BillingType,
		MonthlyFee:          *req.MonthlyFee,
		ContractStartDate:   req.ContractStartDate,
		ContractEndDate:     req.ContractEndDate,
		Notes:               req.Notes,
	})
	if err != nil {
		if errors.Is(err, services.ErrClientLimitReached) {
			conflict(c, "agency client limit reached")
			return
		}
		if errors.Is(err, services.ErrWorkspaceManaged) {
			conflict(c, "workspace is already managed by an agency")
			return
		}
		c.InternalServerError("failed to add client")
		return
	}

	_ = c.JSON(201, toClientResponse(client))
}

func (h *AgencyHandler) ListClients(c *drift.Context) {
	agency, ok := h.requireOwner(c)
	if !ok {
		return
	}

	clients, err := h.agencyService.GetClients(context.Background(), agency.ID)
	if err != nil {
		c.InternalServerError("failed to list clients")
		return
	}

	response := make([]dto.ClientResponse, len(clients))
	for i := range clients {
		response[i] = toClientResponse(&clients[i])
	}

	_ = c.JSON(200, response)
}

func (h *AgencyHandler) UpdateClientStatus(c *drift.Context) {
	agency, ok := h.requireOwner(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(c.Param("clientId"))
	if err != nil {
		c.BadRequest("invalid client id")
		return
	}

	var req dto.UpdateClientStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if err := h.validate.Struct("agency_client", &req); err != nil {
		respondInvalid(c, err)
		return
	}

	ctx := context.Background()

	client, err := h.agencyService.GetClientByID(ctx, clientID)
	if err != nil || client.AgencyID != agency.ID {
		c.NotFound("client not found")
		return
	}

	if err := h.agencyService.UpdateClientStatus(ctx, clientID, req.Status); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			c.NotFound("client not found")
			return
		}
		c.InternalServerError("failed to update client status")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "status updated"})
}

func (h *AgencyHandler) Usage(c *drift.Context) {
	agency, ok := h.requireOwner(c)
	if !ok {
		return
	}

	usage, err := h.agencyService.GetUsage(context.Background(), agency.ID)
	if err != nil {
		c.InternalServerError("failed to compute usage")
		return
	}

	_ = c.JSON(200, dto.AgencyUsageResponse{
		Clients:       usage.Clients,
		ActiveClients: usage.ActiveClients,
		QuotaTotal:    usage.QuotaTotal,
		QuotaUsed:     usage.QuotaUsed,
	})
}

func (h *AgencyHandler) CreateInvite(c *drift.Context) {
	agency, ok := h.requireOwner(c)
	if !ok {
		return
	}

	var req dto.CreateInviteRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	req.Normalize()

	if err := h.validate.Struct("agency_invite", &req); err != nil {
		respondInvalid(c, err)
		return
	}

	ctx := context.Background()
	userID := middleware.GetUserID(c)

	invite, err := h.agencyService.CreateInvite(ctx, agency.ID, req.Email, req.Role, userID, h.cfg.InviteExpiry)
	if err != nil {
		c.InternalServerError("failed to create invite")
		return
	}

	inviterName := "Someone"
	if inviter, err := h.userService.GetByID(ctx, userID); err == nil {
		inviterName = inviter.Name
	}
	inviteURL := h.cfg.BaseURL + "/invites/" + invite.InviteToken
	_ = h.emailService.SendAgencyInvite(invite.Email, agency.Name, inviterName, inviteURL)

	resp := toInviteResponse(invite, time.Now())
	resp.Token = invite.InviteToken
	_ = c.JSON(201, resp)
}

func (h *AgencyHandler) ListInvites(c *drift.Context) {
	agency, ok := h.requireOwner(c)
	if !ok {
		return
	}

	invites, err := h.agencyService.GetPendingInvites(context.Background(), agency.ID)
	if err != nil {
		c.InternalServerError("failed to list invites")
		return
	}

	now := time.Now()
	response := make([]dto.InviteResponse, len(invites))
	for i := range invites {
		response[i] = toInviteResponse(&invites[i], now)
	}

	_ = c.JSON(200, response)
}

// ViewInvite resolves an invite token so the recipient can see who invited
// them before accepting. The agency branding rides along for the whitelabeled
// landing page.
func (h *AgencyHandler) ViewInvite(c *drift.Context) {
	ctx := context.Background()

	invite, err := h.agencyService.GetInviteByToken(ctx, c.Param("token"))
	if err != nil {
		c.NotFound("invite not found")
		return
	}

	now := time.Now()
	switch invite.State(now) {
	case models.InviteStateExpired:
		gone(c, "invite has expired")
		return
	case models.InviteStateAccepted:
		conflict(c, "invite has already been used")
		return
	}

	resp := toInviteResponse(invite, now)
	if agency, err := h.agencyService.GetByID(ctx, invite.AgencyID); err == nil {
		a := toAgencyResponse(agency)
		resp.Agency = &a
	}
	_ = c.JSON(200, resp)
}

func (h *AgencyHandler) AcceptInvite(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	now := time.Now()
	invite, err := h.agencyService.AcceptInvite(context.Background(), c.Param("token"), userID, now)
	if err != nil {
		if errors.Is(err, services.ErrInviteNotFound) {
			c.NotFound("invite not found")
			return
		}
		if errors.Is(err, services.ErrInviteExpired) {
			gone(c, "invite has expired")
			return
		}
		if errors.Is(err, services.ErrInviteAlreadyUsed) {
			conflict(c, "invite has already been used")
			return
		}
		c.InternalServerError("failed to accept invite")
		return
	}

	_ = c.JSON(200, toInviteResponse(invite, now))
}

// requireOwner resolves the agency from the route and checks the caller owns
// it. On failure the response has already been written.
func (h *AgencyHandler) requireOwner(c *drift.Context) (*models.Agency, bool) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return nil, false
	}

	agencyID, err := uuid.Parse(c.Param("agencyId"))
	if err != nil {
		c.BadRequest("invalid agency id")
		return nil, false
	}

	agency, err := h.agencyService.GetByID(context.Background(), agencyID)
	if err != nil {
		if errors.Is(err, services.ErrAgencyNotFound) {
			c.NotFound("agency not found")
			return nil, false
		}
		c.InternalServerError("failed to get agency")
		return nil, false
	}

	if agency.OwnerID != userID {
		c.Forbidden("only the agency owner can do this")
		return nil, false
	}

	return agency, true
}

func toAgencyResponse(a *models.Agency) dto.AgencyResponse {
	return dto.AgencyResponse{
		ID:                 a.ID,
		Name:               a.Name,
		Slug:               a.Slug,
		OwnerID:            a.OwnerID,
		CustomDomain:       a.CustomDomain,
		LogoURL:            a.LogoURL,
		BrandColors:        a.BrandColors,
		WhitelabelSettings: a.WhitelabelSettings,
		SubscriptionPlan:   a.SubscriptionPlan,
		MaxClients:         a.MaxClients,
		MaxUsersPerClient:  a.MaxUsersPerClient,
	}
}

func toClientResponse(cl *models.AgencyClient) dto.ClientResponse {
	return dto.ClientResponse{
		ID:                   cl.ID,
		AgencyID:             cl.AgencyID,
		WorkspaceID:          cl.WorkspaceID,
		ClientName:           cl.ClientName,
		MonthlyContentQuota:  cl.MonthlyContentQuota,
		UsedContentThisMonth: cl.UsedContentThisMonth,
		Status:               cl.Status,
		BillingType:          cl.BillingType,
	}
}

func toInviteResponse(i *models.AgencyInvite, now time.Time) dto.InviteResponse {
	return dto.InviteResponse{
		ID:        i.ID,
		AgencyID:  i.AgencyID,
		Email:     i.Email,
		Role:      i.Role,
		State:     i.State(now),
		ExpiresAt: i.ExpiresAt.Format(time.RFC3339),
	}
}

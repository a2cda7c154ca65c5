package dto

import (
	"github.com/google/uuid"
	"github.com/instacontent/instacontent-api/internal/models"
)

// WhitelabelSettingsInput requires the complete settings object: every field
// must be present, but the flags and the favicon may carry zero values.
type WhitelabelSettingsInput struct {
	HideInstaContentBranding *bool   `json:"hide_instacontent_branding" validate:"required"`
	CustomAppName            string  `json:"custom_app_name" validate:"required"`
	CustomTagline            string  `json:"custom_tagline" validate:"required"`
	ShowPoweredBy            *bool   `json:"show_powered_by" validate:"required"`
	CustomFavicon            *string `json:"custom_favicon" validate:"required"`
}

func (w *WhitelabelSettingsInput) Model() models.WhitelabelSettings {
	return models.WhitelabelSettings{
		HideInstaContentBranding: *w.HideInstaContentBranding,
		CustomAppName:            w.CustomAppName,
		CustomTagline:            w.CustomTagline,
		ShowPoweredBy:            *w.ShowPoweredBy,
		CustomFavicon:            *w.CustomFavicon,
	}
}

type CreateAgencyRequest struct {
	Name               string                   `json:"name" validate:"required,max=255"`
	Slug               string                   `json:"slug" validate:"required,max=255"`
	CustomDomain       *string                  `json:"custom_domain,omitempty"`
	LogoURL            *string                  `json:"logo_url,omitempty"`
	BrandColors        *models.BrandColors      `json:"brand_colors,omitempty"`
	WhitelabelSettings *WhitelabelSettingsInput `json:"whitelabel_settings,omitempty"`
	SubscriptionPlan   string                   `json:"subscription_plan" validate:"omitempty,oneof=starter pro agency enterprise"`
	MaxClients         *int                     `json:"max_clients,omitempty" validate:"omitempty,gte=1"`
	MaxUsersPerClient  *int                     `json:"max_users_per_client,omitempty" validate:"omitempty,gte=1"`
}

func (r *CreateAgencyRequest) Normalize() {
	if r.SubscriptionPlan == "" {
		r.SubscriptionPlan = "starter"
	}
	if r.BrandColors == nil {
		c := models.DefaultBrandColors()
		r.BrandColors = &c
	}
	if r.MaxClients == nil {
		n := 5
		r.MaxClients = &n
	}
	if r.MaxUsersPerClient == nil {
		n := 3
		r.MaxUsersPerClient = &n
	}
}

// WhitelabelModel resolves the whitelabel settings, falling back to the
// defaults when the request omitted the object entirely.
func (r *CreateAgencyRequest) WhitelabelModel() models.WhitelabelSettings {
	if r.WhitelabelSettings == nil {
		return models.DefaultWhitelabelSettings()
	}
	return r.WhitelabelSettings.Model()
}

type UpdateAgencyBrandingRequest struct {
	LogoURL            *string                  `json:"logo_url,omitempty"`
	CustomDomain       *string                  `json:"custom_domain,omitempty"`
	BrandColors        *models.BrandColors      `json:"brand_colors,omitempty"`
	WhitelabelSettings *WhitelabelSettingsInput `json:"whitelabel_settings,omitempty"`
}

type AgencyResponse struct {
	ID                 uuid.UUID                 `json:"id"`
	Name               string                    `json:"name"`
	Slug               string                    `json:"slug"`
	OwnerID            uuid.UUID                 `json:"owner_id"`
	CustomDomain       *string                   `json:"custom_domain,omitempty"`
	LogoURL            *string                   `json:"logo_url,omitempty"`
	BrandColors        models.BrandColors        `json:"brand_colors"`
	WhitelabelSettings models.WhitelabelSettings `json:"whitelabel_settings"`
	SubscriptionPlan   string                    `json:"subscription_plan"`
	MaxClients         int                       `json:"max_clients"`
	MaxUsersPerClient  int                       `json:"max_users_per_client"`
}

type AddClientRequest struct {
	WorkspaceID         uuid.UUID `json:"workspace_id" validate:"required"`
	ClientName          string    `json:"client_name" validate:"required,max=255"`
	ClientEmail         *string   `json:"client_email,omitempty" validate:"omitempty,email"`
	ClientPhone         *string   `json:"client_phone,omitempty"`
	Industry            *string   `json:"industry,omitempty"`
	MonthlyContentQuota *int      `json:"monthly_content_quota,omitempty" validate:"omitempty,gte=0"`
	BillingType         string    `json:"billing_type" validate:"omitempty,oneof=agency direct"`
	MonthlyFee          *string   `json:"monthly_fee,omitempty"`
	ContractStartDate   *string   `json:"contract_start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ContractEndDate     *string   `json:"contract_end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes               *string   `json:"notes,omitempty"`
}

func (r *AddClientRequest) Normalize() {
	if r.MonthlyContentQuota == nil {
		n := 50
		r.MonthlyContentQuota = &n
	}
	if r.BillingType == "" {
		r.BillingType = "agency"
	}
	if r.MonthlyFee == nil {
		fee := "0.00"
		r.MonthlyFee = &fee
	}
}

type UpdateClientStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active paused cancelled"`
}

type ClientResponse struct {
	ID                   uuid.UUID `json:"id"`
	AgencyID             uuid.UUID `json:"agency_id"`
	WorkspaceID          uuid.UUID `json:"workspace_id"`
	ClientName           string    `json:"client_name"`
	MonthlyContentQuota  int       `json:"monthly_content_quota"`
	UsedContentThisMonth int       `json:"used_content_this_month"`
	Status               string    `json:"status"`
	BillingType          string    `json:"billing_type"`
}

type CreateInviteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=admin member"`
}

func (r *CreateInviteRequest) Normalize() {
	if r.Role == "" {
		r.Role = "member"
	}
}

type InviteResponse struct {
	ID        uuid.UUID       `json:"id"`
	AgencyID  uuid.UUID       `json:"agency_id"`
	Email     string          `json:"email"`
	Role      string          `json:"role"`
	State     string          `json:"state"`
	ExpiresAt string          `json:"expires_at"`
	Token     string          `json:"invite_token,omitempty"`
	Agency    *AgencyResponse `json:"agency,omitempty"`
}

type AgencyUsageResponse struct {
	Clients       int `json:"clients"`
	ActiveClients int `json:"active_clients"`
	QuotaTotal    int `json:"quota_total"`
	QuotaUsed     int `json:"quota_used"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ClientStatusActive    = "active"
	ClientStatusPaused    = "paused"
	ClientStatusCancelled = "cancelled"
)

const (
	BillingTypeAgency = "agency"
	BillingTypeDirect = "direct"
)

// Agency invite roles
const (
	AgencyRoleAdmin  = "admin"
	AgencyRoleMember = "member"
)

// Derived invite states, never stored
const (
	InviteStatePending  = "pending"
	InviteStateAccepted = "accepted"
	InviteStateExpired  = "expired"
)

// BrandColors is the white-label color palette. All five fields are required
// when a palette is supplied.
type BrandColors struct {
	Primary    string `json:"primary" validate:"required"`
	Secondary  string `json:"secondary" validate:"required"`
	Accent     string `json:"accent" validate:"required"`
	Background string `json:"background" validate:"required"`
	Text       string `json:"text" validate:"required"`
}

// DefaultBrandColors returns the palette applied when an agency is created
// without one.
func DefaultBrandColors() BrandColors {
	return BrandColors{
		Primary:    "#8B5CF6",
		Secondary:  "#A78BFA",
		Accent:     "#C4B5FD",
		Background: "#FFFFFF",
		Text:       "#1F2937",
	}
}

// WhitelabelSettings controls how much of the platform branding an agency
// hides from its clients.
type WhitelabelSettings struct {
	HideInstaContentBranding bool   `json:"hide_instacontent_branding"`
	CustomAppName            string `json:"custom_app_name"`
	CustomTagline            string `json:"custom_tagline"`
	ShowPoweredBy            bool   `json:"show_powered_by"`
	CustomFavicon            string `json:"custom_favicon"`
}

func DefaultWhitelabelSettings() WhitelabelSettings {
	return WhitelabelSettings{
		HideInstaContentBranding: false,
		CustomAppName:            "InstaContent AI",
		CustomTagline:            "AI-Powered Instagram Content Creation",
		ShowPoweredBy:            true,
		CustomFavicon:            "",
	}
}

type Agency struct {
	ID                 uuid.UUID          `json:"id"`
	Name               string             `json:"name"`
	Slug               string             `json:"slug"`
	OwnerID            uuid.UUID          `json:"owner_id"`
	CustomDomain       *string            `json:"custom_domain,omitempty"`
	LogoURL            *string            `json:"logo_url,omitempty"`
	BrandColors        BrandColors        `json:"brand_colors"`
	WhitelabelSettings WhitelabelSettings `json:"whitelabel_settings"`
	SubscriptionPlan   string             `json:"subscription_plan"`
	MaxClients         int                `json:"max_clients"`
	MaxUsersPerClient  int                `json:"max_users_per_client"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

type AgencyClient struct {
	ID                   uuid.UUID `json:"id"`
	AgencyID             uuid.UUID `json:"agency_id"`
	WorkspaceID          uuid.UUID `json:"workspace_id"`
	ClientName           string    `json:"client_name"`
	ClientEmail          *string   `json:"client_email,omitempty"`
	ClientPhone          *string   `json:"client_phone,omitempty"`
	Industry             *string   `json:"industry,omitempty"`
	MonthlyContentQuota  int       `json:"monthly_content_quota"`
	UsedContentThisMonth int       `json:"used_content_this_month"`
	Status               string    `json:"status"`
	BillingType          string    `json:"billing_type"`
	MonthlyFee           string    `json:"monthly_fee"`
	ContractStartDate    *string   `json:"contract_start_date,omitempty"`
	ContractEndDate      *string   `json:"contract_end_date,omitempty"`
	Notes                *string   `json:"notes,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// CanGenerateContent reports whether the client may generate one more piece
// of content this month. A quota of zero never allows generation.
func (c *AgencyClient) CanGenerateContent() bool {
	return c.Status == ClientStatusActive && c.UsedContentThisMonth < c.MonthlyContentQuota
}

type AgencyInvite struct {
	ID          uuid.UUID  `json:"id"`
	AgencyID    uuid.UUID  `json:"agency_id"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	InviteToken string     `json:"-"`
	ExpiresAt   time.Time  `json:"expires_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	InvitedBy   uuid.UUID  `json:"invited_by"`
	CreatedAt   time.Time  `json:"created_at"`
	Agency      *Agency    `json:"agency,omitempty"`
}

// State derives the lifecycle state of the invite at time now.
func (i *AgencyInvite) State(now time.Time) string {
	if i.AcceptedAt != nil {
		return InviteStateAccepted
	}
	if !now.Before(i.ExpiresAt) {
		return InviteStateExpired
	}
	return InviteStatePending
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription plans shared by users and agencies
const (
	PlanStarter    = "starter"
	PlanPro        = "pro"
	PlanAgency     = "agency"
	PlanEnterprise = "enterprise"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Plan         string    `json:"plan"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

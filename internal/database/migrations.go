package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) UNIQUE NOT NULL,
		username VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		plan VARCHAR(50) NOT NULL DEFAULT 'starter',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS workspaces (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status VARCHAR(20) NOT NULL DEFAULT 'active'
			CHECK (status IN ('active', 'paused', 'archived', 'deleted')),
		last_activity TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		settings JSONB,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS workspace_members (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role VARCHAR(50) NOT NULL DEFAULT 'viewer'
			CHECK (role IN ('owner', 'admin', 'editor', 'viewer')),
		joined_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		CONSTRAINT workspace_members_workspace_id_user_id_key UNIQUE (workspace_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS brand_profiles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE UNIQUE,
		business_type VARCHAR(100) NOT NULL,
		target_audience TEXT NOT NULL,
		brand_voice VARCHAR(100) NOT NULL,
		brand_values JSONB,
		content_goals JSONB,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS content_items (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		type VARCHAR(20) NOT NULL CHECK (type IN ('post', 'story', 'carousel')),
		caption TEXT NOT NULL,
		hashtags JSONB,
		visual_recommendations JSONB,
		performance_prediction JSONB,
		status VARCHAR(20) NOT NULL DEFAULT 'draft'
			CHECK (status IN ('draft', 'published', 'archived')),
		ai_generated BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS trends (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		hashtag VARCHAR(255) NOT NULL,
		virality_score INTEGER NOT NULL CHECK (virality_score BETWEEN 0 AND 100),
		safety_score INTEGER NOT NULL CHECK (safety_score BETWEEN 0 AND 100),
		engagement_boost VARCHAR(50) NOT NULL,
		lifespan VARCHAR(50) NOT NULL,
		sources JSONB,
		status VARCHAR(20) NOT NULL DEFAULT 'safe'
			CHECK (status IN ('safe', 'review', 'blocked')),
		detected_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS collaboration_sessions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		content_id UUID NOT NULL REFERENCES content_items(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		last_activity TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		cursor JSONB,
		UNIQUE (content_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS agencies (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) UNIQUE NOT NULL,
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		custom_domain VARCHAR(255),
		logo_url VARCHAR(500),
		brand_colors JSONB NOT NULL,
		whitelabel_settings JSONB NOT NULL,
		subscription_plan VARCHAR(50) NOT NULL DEFAULT 'starter'
			CHECK (subscription_plan IN ('starter', 'pro', 'agency', 'enterprise')),
		max_clients INTEGER NOT NULL DEFAULT 5,
		max_users_per_client INTEGER NOT NULL DEFAULT 3,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS agency_clients (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		agency_id UUID NOT NULL REFERENCES agencies(id) ON DELETE CASCADE,
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE UNIQUE,
		client_name VARCHAR(255) NOT NULL,
		client_email VARCHAR(255),
		client_phone VARCHAR(50),
		industry VARCHAR(100),
		monthly_content_quota INTEGER NOT NULL DEFAULT 50 CHECK (monthly_content_quota >= 0),
		used_content_this_month INTEGER NOT NULL DEFAULT 0 CHECK (used_content_this_month >= 0),
		status VARCHAR(20) NOT NULL DEFAULT 'active'
			CHECK (status IN ('active', 'paused', 'cancelled')),
		billing_type VARCHAR(20) NOT NULL DEFAULT 'agency'
			CHECK (billing_type IN ('agency', 'direct')),
		monthly_fee NUMERIC(10, 2) NOT NULL DEFAULT 0.00,
		contract_start_date DATE,
		contract_end_date DATE,
		notes TEXT,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS agency_invites (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		agency_id UUID NOT NULL REFERENCES agencies(id) ON DELETE CASCADE,
		email VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'member' CHECK (role IN ('admin', 'member')),
		invite_token VARCHAR(255) UNIQUE NOT NULL,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		accepted_at TIMESTAMP WITH TIME ZONE,
		invited_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_workspaces_owner_id ON workspaces(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_workspace_members_workspace_id ON workspace_members(workspace_id)`,
	`CREATE INDEX IF NOT EXISTS idx_workspace_members_user_id ON workspace_members(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_content_items_workspace_id ON content_items(workspace_id)`,
	`CREATE INDEX IF NOT EXISTS idx_content_items_status ON content_items(workspace_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_trends_status ON trends(status)`,
	`CREATE INDEX IF NOT EXISTS idx_collaboration_sessions_content_id ON collaboration_sessions(content_id)`,
	`CREATE INDEX IF NOT EXISTS idx_agency_clients_agency_id ON agency_clients(agency_id)`,
	`CREATE INDEX IF NOT EXISTS idx_agency_invites_agency_id ON agency_invites(agency_id)`,
	`CREATE INDEX IF NOT EXISTS idx_agency_invites_email ON agency_invites(email)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

package main

import (
	"github.com/instacontent/instacontent-api/internal/handlers"
	authmw "github.com/instacontent/instacontent-api/internal/middleware"
	"github.com/instacontent/instacontent-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
)

// registerRoutes mounts the full route table. The router keeps one radix tree
// per HTTP method and cannot hold a static segment beside a :param sibling,
// so the public slug lookup lives under /public instead of /agencies.
func registerRoutes(
	app *drift.Engine,
	jwtService *services.JWTService,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	workspaceHandler *handlers.WorkspaceHandler,
	brandProfileHandler *handlers.BrandProfileHandler,
	contentHandler *handlers.ContentHandler,
	trendHandler *handlers.TrendHandler,
	collaborationHandler *handlers.CollaborationHandler,
	agencyHandler *handlers.AgencyHandler,
) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)

	protected.Get("/users/me", userHandler.Me)
	protected.Patch("/users/me", userHandler.UpdateMe)

	protected.Get("/workspaces", workspaceHandler.List)
	protected.Post("/workspaces", workspaceHandler.Create)
	protected.Get("/workspaces/:workspaceId", workspaceHandler.Get)
	protected.Patch("/workspaces/:workspaceId", workspaceHandler.Update)
	protected.Delete("/workspaces/:workspaceId", workspaceHandler.Delete)
	protected.Get("/workspaces/:workspaceId/members", workspaceHandler.ListMembers)
	protected.Post("/workspaces/:workspaceId/members", workspaceHandler.AddMember)
	protected.Patch("/workspaces/:workspaceId/members/:userId", workspaceHandler.UpdateMemberRole)
	protected.Delete("/workspaces/:workspaceId/members/:userId", workspaceHandler.RemoveMember)

	protected.Get("/workspaces/:workspaceId/brand-profile", brandProfileHandler.Get)
	protected.Post("/workspaces/:workspaceId/brand-profile", brandProfileHandler.Upsert)

	protected.Get("/workspaces/:workspaceId/content", contentHandler.List)
	protected.Post("/workspaces/:workspaceId/content", contentHandler.Generate)
	protected.Get("/workspaces/:workspaceId/analytics", contentHandler.Analytics)
	protected.Get("/content/:contentId", contentHandler.Get)
	protected.Patch("/content/:contentId", contentHandler.Update)
	protected.Delete("/content/:contentId", contentHandler.Delete)

	protected.Post("/content/:contentId/collaborators", collaborationHandler.Join)
	protected.Get("/content/:contentId/collaborators", collaborationHandler.ListActive)
	protected.Patch("/content/:contentId/collaborators/heartbeat", collaborationHandler.Heartbeat)
	protected.Delete("/content/:contentId/collaborators", collaborationHandler.Leave)

	protected.Get("/trends", trendHandler.List)
	protected.Post("/trends", trendHandler.Create)
	protected.Patch("/trends/:trendId/status", trendHandler.UpdateStatus)

	protected.Post("/agencies", agencyHandler.Create)
	protected.Get("/agencies/:agencyId", agencyHandler.Get)
	protected.Patch("/agencies/:agencyId/branding", agencyHandler.UpdateBranding)
	protected.Get("/agencies/:agencyId/clients", agencyHandler.ListClients)
	protected.Post("/agencies/:agencyId/clients", agencyHandler.AddClient)
	protected.Patch("/agencies/:agencyId/clients/:clientId/status", agencyHandler.UpdateClientStatus)
	protected.Get("/agencies/:agencyId/usage", agencyHandler.Usage)
	protected.Get("/agencies/:agencyId/invites", agencyHandler.ListInvites)
	protected.Post("/agencies/:agencyId/invites", agencyHandler.CreateInvite)
	protected.Post("/invites/:token/accept", agencyHandler.AcceptInvite)

	// Public whitelabel endpoints (no auth required)
	api.Get("/public/agencies/:slug", agencyHandler.GetBySlug)
	api.Get("/invites/:token", agencyHandler.ViewInvite)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})
}

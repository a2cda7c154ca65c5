package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/instacontent/instacontent-api/internal/middleware"
	"github.com/instacontent/instacontent-api/internal/models"
	"github.com/instacontent/instacontent-api/internal/services"
	"github.com/instacontent/instacontent-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type CollaborationHandler struct {
	collaborationService CollaborationServiceInterface
	contentService       ContentServiceInterface
	workspaceService     WorkspaceServiceInterface
}

func NewCollaborationHandler(
	collaborationService CollaborationServiceInterface,
	contentService ContentServiceInterface,
	workspaceService WorkspaceServiceInterface,
) *CollaborationHandler {
	return &CollaborationHandler{
		collaborationService: collaborationService,
		contentService:       contentService,
		workspaceService:     workspaceService,
	}
}

// canCollaborate checks that the content exists and the caller is a member
// of its workspace.
func (h *CollaborationHandler) canCollaborate(c *drift.Context, ctx context.Context, userID uuid.UUID) (uuid.UUID, bool) {
	contentID, err := uuid.Parse(c.Param("contentId"))
	if err != nil {
		c.BadRequest("invalid content id")
		return uuid.Nil, false
	}

	item, err := h.contentService.GetByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, services.ErrContentNotFound) {
			c.NotFound("content not found")
			return uuid.Nil, false
		}
		c.InternalServerError("failed to get content")
		return uuid.Nil, false
	}

	isMember, err := h.workspaceService.IsMember(ctx, item.WorkspaceID, userID)
	if err != nil || !isMember {
		c.Forbidden("not a member of this workspace")
		return uuid.Nil, false
	}

	return contentID, true
}

func (h *CollaborationHandler) Join(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx := context.Background()

	contentID, ok := h.canCollaborate(c, ctx, userID)
	if !ok {
		return
	}

	session, err := h.collaborationService.Join(ctx, contentID, userID)
	if err != nil {
		c.InternalServerError("failed to join session")
		return
	}

	_ = c.JSON(200, toSessionResponse(session))
}

func (h *CollaborationHandler) Heartbeat(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	contentID, err := uuid.Parse(c.Param("contentId"))
	if err != nil {
		c.BadRequest("invalid content id")
		return
	}

	var req dto.HeartbeatRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	err = h.collaborationService.Heartbeat(context.Background(), contentID, userID, req.Cursor)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			c.NotFound("no active session for this content")
			return
		}
		c.InternalServerError("failed to record heartbeat")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "ok"})
}

func (h *CollaborationHandler) Leave(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	contentID, err := uuid.Parse(c.Param("contentId"))
	if err != nil {
		c.BadRequest("invalid content id")
		return
	}

	err = h.collaborationService.Leave(context.Background(), contentID, userID)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			c.NotFound("no active session for this content")
			return
		}
		c.InternalServerError("failed to leave session")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "left session"})
}

func (h *CollaborationHandler) ListActive(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx := context.Background()

	contentID, ok := h.canCollaborate(c, ctx, userID)
	if !ok {
		return
	}

	sessions, err := h.collaborationService.ListActive(ctx, contentID)
	if err != nil {
		c.InternalServerError("failed to list sessions")
		return
	}

	response := make([]dto.SessionResponse, len(sessions))
	for i := range sessions {
		response[i] = toSessionResponse(&sessions[i])
	}

	_ = c.JSON(200, response)
}

func toSessionResponse(s *models.CollaborationSession) dto.SessionResponse {
	resp := dto.SessionResponse{
		ID:           s.ID,
		ContentID:    s.ContentID,
		UserID:       s.UserID,
		IsActive:     s.IsActive,
		Cursor:       s.Cursor,
		LastActivity: s.LastActivity.Format(time.RFC3339),
	}
	if s.User != nil {
		u := toUserResponse(s.User)
		resp.User = &u
	}
	return resp
}

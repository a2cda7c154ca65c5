package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/instacontent/instacontent-api/internal/middleware"
	"github.com/instacontent/instacontent-api/internal/models"
	"github.com/instacontent/instacontent-api/internal/services"
	"github.com/instacontent/instacontent-api/internal/validation"
	"github.com/instacontent/instacontent-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type ContentHandler struct {
	contentService   ContentServiceInterface
	workspaceService WorkspaceServiceInterface
	validate         *validation.Validator
}

func NewContentHandler(
	contentService ContentServiceInterface,
	workspaceService WorkspaceServiceInterface,
	validate *validation.Validator,
) *ContentHandler {
	return &ContentHandler{
		contentService:   contentService,
		workspaceService: workspaceService,
		validate:         validate,
	}
}

func (h *ContentHandler) Generate(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	var req dto.CreateContentRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	req.Normalize()

	if err := h.validate.Struct("content_item", &req); err != nil {
		respondInvalid(c, err)
		return
	}

	ctx := context.Background()

	ok, err := h.workspaceService.HasRole(ctx, workspaceID, userID, models.RoleEditor)
	if err != nil || !ok {
		c.Forbidden("editor role required")
		return
	}

	item, err := h.contentService.Generate(ctx, workspaceID, services.ContentInput{
		Type:                  req.Type,
		Caption:               req.Caption,
		Hashtags:              req.Hashtags,
		VisualRecommendations: req.VisualRecommendations,
		PerformancePrediction: req.PerformancePrediction,
		Status:                req.Status,
		AIGenerated:           *req.AIGenerated,
	})
	if err != nil {
		if errors.Is(err, services.ErrQuotaExceeded) {
			conflict(c, "monthly content quota exhausted")
			return
		}
		c.InternalServerError("failed to generate content")
		return
	}

	_ = c.JSON(201, toContentResponse(item))
}

func (h *ContentHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	ctx := context.Background()

	isMember, err := h.workspaceService.IsMember(ctx, workspaceID, userID)
	if err != nil || !isMember {
		c.Forbidden("not a member of this workspace")
		return
	}

	items, err := h.contentService.GetByWorkspace(ctx, workspaceID, c.QueryParam("status"), c.QueryParam("type"))
	if err != nil {
		c.InternalServerError("failed to list content")
		return
	}

	response := make([]dto.ContentResponse, len(items))
	for i := range items {
		response[i] = toContentResponse(&items[i])
	}

	_ = c.JSON(200, response)
}

func (h *ContentHandler) Get(c *drift.Context) {
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

	ctx := context.Background()

	item, err := h.contentService.GetByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, services.ErrContentNotFound) {
			c.NotFound("content not found")
			return
		}
		c.InternalServerError("failed to get content")
		return
	}

	isMember, err := h.workspaceService.IsMember(ctx, item.WorkspaceID, userID)
	if err != nil || !isMember {
		c.Forbidden("not a member of this workspace")
		return
	}

	_ = c.JSON(200, toContentResponse(item))
}

func (h *ContentHandler) Update(c *drift.Context) {
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

	var req dto.UpdateContentRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if err := h.validate.Struct("content_item", &req); err != nil {
		respondInvalid(c, err)
		return
	}

	ctx := context.Background()

	item, err := h.contentService.GetByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, services.ErrContentNotFound) {
			c.NotFound("content not found")
			return
		}
		c.InternalServerError("failed to get content")
		return
	}

	ok, err := h.workspaceService.HasRole(ctx, item.WorkspaceID, userID, models.RoleEditor)
	if err != nil || !ok {
		c.Forbidden("editor role required")
		return
	}

	updated, err := h.contentService.Update(ctx, contentID, services.ContentUpdate{
		Caption:               req.Caption,
		Hashtags:              req.Hashtags,
		VisualRecommendations: req.VisualRecommendations,
		PerformancePrediction: req.PerformancePrediction,
		Status:                req.Status,
	})
	if err != nil {
		c.InternalServerError("failed to update content")
		return
	}

	_ = c.JSON(200, toContentResponse(updated))
}

func (h *ContentHandler) Delete(c *drift.Context) {
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

	ctx := context.Background()

	item, err := h.contentService.GetByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, services.ErrContentNotFound) {
			c.NotFound("content not found")
			return
		}
		c.InternalServerError("failed to get content")
		return
	}

	ok, err := h.workspaceService.HasRole(ctx, item.WorkspaceID, userID, models.RoleEditor)
	if err != nil || !ok {
		c.Forbidden("editor role required")
		return
	}

	if err := h.contentService.Delete(ctx, contentID); err != nil {
		c.InternalServerError("failed to delete content")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "content deleted"})
}

func (h *ContentHandler) Analytics(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	ctx := context.Background()

	isMember, err := h.workspaceService.IsMember(ctx, workspaceID, userID)
	if err != nil || !isMember {
		c.Forbidden("not a member of this workspace")
		return
	}

	stats, err := h.contentService.WorkspaceStats(ctx, workspaceID)
	if err != nil {
		c.InternalServerError("failed to compute analytics")
		return
	}

	_ = c.JSON(200, dto.WorkspaceAnalyticsResponse{
		Total:    stats.Total,
		ByStatus: stats.ByStatus,
		ByType:   stats.ByType,
	})
}

func toContentResponse(item *models.ContentItem) dto.ContentResponse {
	return dto.ContentResponse{
		ID:                    item.ID,
		WorkspaceID:           item.WorkspaceID,
		Type:                  item.Type,
		Caption:               item.Caption,
		Hashtags:              item.Hashtags,
		VisualRecommendations: item.VisualRecommendations,
		PerformancePrediction: item.PerformancePrediction,
		Status:                item.Status,
		AIGenerated:           item.AIGenerated,
		CreatedAt:             item.CreatedAt.Format(time.RFC3339),
	}
}

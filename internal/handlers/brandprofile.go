package handlers

import (
	"context"
	"errors"

	"github.com/instacontent/instacontent-api/internal/middleware"
	"github.com/instacontent/instacontent-api/internal/models"
	"github.com/instacontent/instacontent-api/internal/services"
	"github.com/instacontent/instacontent-api/internal/validation"
	"github.com/instacontent/instacontent-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type BrandProfileHandler struct {
	brandProfileService BrandProfileServiceInterface
	workspaceService    WorkspaceServiceInterface
	validate            *validation.Validator
}

func NewBrandProfileHandler(
	brandProfileService BrandProfileServiceInterface,
	workspaceService WorkspaceServiceInterface,
	validate *validation.Validator,
) *BrandProfileHandler {
	return &BrandProfileHandler{
		brandProfileService: brandProfileService,
		workspaceService:    workspaceService,
		validate:            validate,
	}
}

func (h *BrandProfileHandler) Upsert(c *drift.Context) {
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

	var req dto.UpsertBrandProfileRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if err := h.validate.Struct("brand_profile", &req); err != nil {
		respondInvalid(c, err)
		return
	}

	ctx := context.Background()

	ok, err := h.workspaceService.HasRole(ctx, workspaceID, userID, models.RoleEditor)
	if err != nil || !ok {
		c.Forbidden("editor role required")
		return
	}

	profile, err := h.brandProfileService.Upsert(ctx, workspaceID,
		req.BusinessType, req.TargetAudience, req.BrandVoice, req.BrandValues, req.ContentGoals)
	if err != nil {
		c.InternalServerError("failed to save brand profile")
		return
	}

	_ = c.JSON(200, toBrandProfileResponse(profile))
}

func (h *BrandProfileHandler) Get(c *drift.Context) {
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

	profile, err := h.brandProfileService.GetByWorkspace(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, services.ErrBrandProfileNotFound) {
			c.NotFound("brand profile not found")
			return
		}
		c.InternalServerError("failed to get brand profile")
		return
	}

	_ = c.JSON(200, toBrandProfileResponse(profile))
}

func toBrandProfileResponse(p *models.BrandProfile) dto.BrandProfileResponse {
	return dto.BrandProfileResponse{
		ID:             p.ID,
		WorkspaceID:    p.WorkspaceID,
		BusinessType:   p.BusinessType,
		TargetAudience: p.TargetAudience,
		BrandVoice:     p.BrandVoice,
		BrandValues:    p.BrandValues,
		ContentGoals:   p.ContentGoals,
	}
}

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

type TrendHandler struct {
	trendService TrendServiceInterface
	validate     *validation.Validator
}

func NewTrendHandler(trendService TrendServiceInterface, validate *validation.Validator) *TrendHandler {
	return &TrendHandler{
		trendService: trendService,
		validate:     validate,
	}
}

func (h *TrendHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateTrendRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	req.Normalize()

	if err := h.validate.Struct("trend", &req); err != nil {
		respondInvalid(c, err)
		return
	}

	trend, err := h.trendService.Create(context.Background(), services.TrendInput{
		Hashtag:         req.Hashtag,
		ViralityScore:   *req.ViralityScore,
		SafetyScore:     *req.SafetyScore,
		EngagementBoost: req.EngagementBoost,
		Lifespan:        req.Lifespan,
		Sources:         req.Sources,
		Status:          req.Status,
	})
	if err != nil {
		c.InternalServerError("failed to create trend")
		return
	}

	_ = c.JSON(201, toTrendResponse(trend))
}

func (h *TrendHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	trends, err := h.trendService.List(context.Background(), c.QueryParam("status"))
	if err != nil {
		c.InternalServerError("failed to list trends")
		return
	}

	response := make([]dto.TrendResponse, len(trends))
	for i := range trends {
		response[i] = toTrendResponse(&trends[i])
	}

	_ = c.JSON(200, response)
}

func (h *TrendHandler) UpdateStatus(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	trendID, err := uuid.Parse(c.Param("trendId"))
	if err != nil {
		c.BadRequest("invalid trend id")
		return
	}

	var req dto.UpdateTrendStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if err := h.validate.Struct("trend", &req); err != nil {
		respondInvalid(c, err)
		return
	}

	trend, err := h.trendService.UpdateStatus(context.Background(), trendID, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrTrendNotFound) {
			c.NotFound("trend not found")
			return
		}
		c.InternalServerError("failed to update trend")
		return
	}

	_ = c.JSON(200, toTrendResponse(trend))
}

func toTrendResponse(t *models.Trend) dto.TrendResponse {
	return dto.TrendResponse{
		ID:              t.ID,
		Hashtag:         t.Hashtag,
		ViralityScore:   t.ViralityScore,
		SafetyScore:     t.SafetyScore,
		EngagementBoost: t.EngagementBoost,
		Lifespan:        t.Lifespan,
		Sources:         t.Sources,
		Status:          t.Status,
	}
}

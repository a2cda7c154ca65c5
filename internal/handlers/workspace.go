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

type WorkspaceHandler struct {
	workspaceService WorkspaceServiceInterface
	userService      UserServiceInterface
	validate         *validation.Validator
}

func NewWorkspaceHandler(
	workspaceService WorkspaceServiceInterface,
	userService UserServiceInterface,
	validate *validation.Validator,
) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		userService:      userService,
		validate:         validate,
	}
}

func (h *WorkspaceHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateWorkspaceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	req.Normalize()

	if err := h.validate.Struct("workspace", &req); err != nil {
		respondInvalid(c, err)
		return
	}

	workspace, err := h.workspaceService.Create(context.Background(), req.Name, req.Status, req.Settings, userID)
	if err != nil {
		c.InternalServerError("failed to create workspace")
		return
	}

	_ = c.JSON(201, toWorkspaceResponse(workspace, models.RoleOwner))
}

func (h *WorkspaceHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaces, roles, err := h.workspaceService.GetUserWorkspaces(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to get workspaces")
		return
	}

	response := make([]dto.WorkspaceResponse, len(workspaces))
	for i := range workspaces {
		response[i] = toWorkspaceResponse(&workspaces[i], roles[i])
	}

	_ = c.JSON(200, response)
}

func (h *WorkspaceHandler) Get(c *drift.Context) {
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

	role, err := h.workspaceService.GetMemberRole(ctx, workspaceID, userID)
	if err != nil {
		c.Forbidden("not a member of this workspace")
		return
	}

	workspace, err := h.workspaceService.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, services.ErrWorkspaceNotFound) {
			c.NotFound("workspace not found")
			return
		}
		c.InternalServerError("failed to get workspace")
		return
	}

	_ = c.JSON(200, toWorkspaceResponse(workspace, role))
}

func (h *WorkspaceHandler) Update(c *drift.Context) {
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

	var req dto.UpdateWorkspaceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if err := h.validate.Struct("workspace", &req); err != nil {
		respondInvalid(c, err)
		return
	}

	ctx := context.Background()

	ok, err := h.workspaceService.HasRole(ctx, workspaceID, userID, models.RoleAdmin)
	if err != nil || !ok {
		c.Forbidden("admin role required")
		return
	}

	workspace, err := h.workspaceService.Update(ctx, workspaceID, req.Name, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrWorkspaceNotFound) {
			c.NotFound("workspace not found")
			return
		}
		c.InternalServerError("failed to update workspace")
		return
	}

	_ = c.JSON(200, toWorkspaceResponse(workspace, ""))
}

func (h *WorkspaceHandler) Delete(c *drift.Context) {
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

	isOwner, err := h.workspaceService.IsOwner(ctx, workspaceID, userID)
	if err != nil || !isOwner {
		c.Forbidden("only the owner can delete a workspace")
		return
	}

	if err := h.workspaceService.Delete(ctx, workspaceID); err != nil {
		c.InternalServerError("failed to delete workspace")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "workspace deleted"})
}

func (h *WorkspaceHandler) ListMembers(c *drift.Context) {
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

	members, err := h.workspaceService.GetMembers(ctx, workspaceID)
	if err != nil {
		c.InternalServerError("failed to get members")
		return
	}

	response := make([]dto.WorkspaceMemberResponse, len(members))
	for i, m := range members {
		response[i] = dto.WorkspaceMemberResponse{
			ID:     m.ID,
			UserID: m.UserID,
			Role:   m.Role,
		}
		if m.User != nil {
			response[i].User = toUserResponse(m.User)
		}
	}

	_ = c.JSON(200, response)
}

func (h *WorkspaceHandler) AddMember(c *drift.Context) {
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

	var req dto.AddMemberRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	req.Normalize()

	if err := h.validate.Struct("workspace_member", &req); err != nil {
		respondInvalid(c, err)
		return
	}

	ctx := context.Background()

	ok, err := h.workspaceService.HasRole(ctx, workspaceID, userID, models.RoleAdmin)
	if err != nil || !ok {
		c.Forbidden("admin role required")
		return
	}

	if _, err := h.userService.GetByID(ctx, req.UserID); err != nil {
		c.NotFound("user not found")
		return
	}

	member, err := h.workspaceService.AddMember(ctx, workspaceID, req.UserID, req.Role)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateMembership) {
			conflict(c, "user is already a member of this workspace")
			return
		}
		c.InternalServerError("failed to add member")
		return
	}

	_ = c.JSON(201, dto.WorkspaceMemberResponse{
		ID:     member.ID,
		UserID: member.UserID,
		Role:   member.Role,
	})
}

func (h *WorkspaceHandler) UpdateMemberRole(c *drift.Context) {
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

	memberUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	var req dto.UpdateMemberRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if err := h.validate.Struct("workspace_member", &req); err != nil {
		respondInvalid(c, err)
		return
	}

	ctx := context.Background()

	isOwner, err := h.workspaceService.IsOwner(ctx, workspaceID, userID)
	if err != nil || !isOwner {
		c.Forbidden("only the owner can change roles")
		return
	}

	if err := h.workspaceService.UpdateMemberRole(ctx, workspaceID, memberUserID, req.Role); err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			c.NotFound("member not found")
			return
		}
		c.InternalServerError("failed to update member role")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "role updated"})
}

func (h *WorkspaceHandler) RemoveMember(c *drift.Context) {
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

	memberUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	ctx := context.Background()

	// Members may remove themselves, admins may remove anyone below owner.
	if memberUserID != userID {
		ok, err := h.workspaceService.HasRole(ctx, workspaceID, userID, models.RoleAdmin)
		if err != nil || !ok {
			c.Forbidden("admin role required")
			return
		}
	}

	if err := h.workspaceService.RemoveMember(ctx, workspaceID, memberUserID); err != nil {
		if errors.Is(err, services.ErrCannotRemoveOwner) {
			c.Forbidden("the workspace owner cannot be removed")
			return
		}
		if errors.Is(err, services.ErrMemberNotFound) {
			c.NotFound("member not found")
			return
		}
		c.InternalServerError("failed to remove member")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "member removed"})
}

func toWorkspaceResponse(w *models.Workspace, role string) dto.WorkspaceResponse {
	return dto.WorkspaceResponse{
		ID:      w.ID,
		Name:    w.Name,
		OwnerID: w.OwnerID,
		Status:  w.Status,
		Role:    role,
	}
}

package moderation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	"github.com/orris-inc/moderation/internal/interfaces/http/middleware"
	"github.com/orris-inc/moderation/internal/shared/utils"
)

// ListUsers handles GET /moderation/users
func (h *ModerationHandler) ListUsers(c *gin.Context) {
	limit, cursor, err := pageParams(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	filter := dto.UserFilter{
		Query:  c.Query("q"),
		Role:   c.Query("role"),
		Status: c.Query("status"),
		Limit:  limit,
		Cursor: cursor,
	}

	result, err := h.service.ListUsers(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	respondPage(c, result)
}

// GetUser handles GET /moderation/users/:id
func (h *ModerationHandler) GetUser(c *gin.Context) {
	userID, err := utils.RequireParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// EnsureUserStub handles PUT /moderation/users/:id
func (h *ModerationHandler) EnsureUserStub(c *gin.Context) {
	userID, err := utils.RequireParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.EnsureUserStub(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateRoles handles PATCH /moderation/users/:id/roles
func (h *ModerationHandler) UpdateRoles(c *gin.Context) {
	userID, err := utils.RequireParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateRolesRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.UpdateRoles(c.Request.Context(), userID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Roles updated successfully", result)
}

// IssueSanction handles POST /moderation/users/:id/sanctions
func (h *ModerationHandler) IssueSanction(c *gin.Context) {
	userID, err := utils.RequireParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.IssueSanctionRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for issue sanction", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.IssueSanction(c.Request.Context(), userID, req, actorID(c), middleware.IdempotencyKey(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Sanction issued successfully")
}

// UpdateSanction handles PATCH /moderation/users/:id/sanctions/:sanction_id
func (h *ModerationHandler) UpdateSanction(c *gin.Context) {
	userID, err := utils.RequireParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	sanctionID, err := utils.RequireParam(c, "sanction_id", "sanction")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateSanctionRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.UpdateSanction(c.Request.Context(), userID, sanctionID, req, actorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Sanction updated successfully", result)
}

// AddNote handles POST /moderation/users/:id/notes
func (h *ModerationHandler) AddNote(c *gin.Context) {
	userID, err := utils.RequireParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.AddNoteRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.AddNote(c.Request.Context(), userID, req, actorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Note added successfully")
}

// WarningsCountRecent handles GET /moderation/users/:id/warnings
func (h *ModerationHandler) WarningsCountRecent(c *gin.Context) {
	userID, err := utils.RequireParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	days, err := utils.QueryInt(c, "days", 0)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.WarningsCountRecent(c.Request.Context(), userID, days)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

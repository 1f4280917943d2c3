package moderation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	"github.com/orris-inc/moderation/internal/shared/utils"
)

// ListAppeals handles GET /moderation/appeals
func (h *ModerationHandler) ListAppeals(c *gin.Context) {
	limit, cursor, err := pageParams(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	filter := dto.AppealFilter{
		Status:   c.Query("status"),
		UserID:   c.Query("user_id"),
		TargetID: c.Query("target_id"),
		Limit:    limit,
		Cursor:   cursor,
	}

	result, err := h.service.ListAppeals(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	respondPage(c, result)
}

// GetAppeal handles GET /moderation/appeals/:id
func (h *ModerationHandler) GetAppeal(c *gin.Context) {
	appealID, err := utils.RequireParam(c, "id", "appeal")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.GetAppeal(c.Request.Context(), appealID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateAppeal handles POST /moderation/appeals
func (h *ModerationHandler) CreateAppeal(c *gin.Context) {
	var req dto.CreateAppealRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create appeal", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.CreateAppeal(c.Request.Context(), req, actorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Appeal created successfully")
}

// DecideAppeal handles POST /moderation/appeals/:id/decision
func (h *ModerationHandler) DecideAppeal(c *gin.Context) {
	appealID, err := utils.RequireParam(c, "id", "appeal")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.DecideAppealRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.DecideAppeal(c.Request.Context(), appealID, req, actorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Appeal decided", result)
}

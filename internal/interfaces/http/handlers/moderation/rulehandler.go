package moderation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	"github.com/orris-inc/moderation/internal/shared/utils"
)

// ListRules handles GET /moderation/rules
func (h *ModerationHandler) ListRules(c *gin.Context) {
	limit, cursor, err := pageParams(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	enabled, err := utils.QueryBool(c, "enabled")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	filter := dto.RuleFilter{
		Category: c.Query("category"),
		Enabled:  enabled,
		Limit:    limit,
		Cursor:   cursor,
	}

	result, err := h.service.ListRules(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	respondPage(c, result)
}

// CreateRule handles POST /moderation/rules
func (h *ModerationHandler) CreateRule(c *gin.Context) {
	var req dto.CreateRuleRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create rule", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.CreateRule(c.Request.Context(), req, actorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Rule created successfully")
}

// GetRule handles GET /moderation/rules/:id
func (h *ModerationHandler) GetRule(c *gin.Context) {
	ruleID, err := utils.RequireParam(c, "id", "rule")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.GetRule(c.Request.Context(), ruleID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateRule handles PATCH /moderation/rules/:id
func (h *ModerationHandler) UpdateRule(c *gin.Context) {
	ruleID, err := utils.RequireParam(c, "id", "rule")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateRuleRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.UpdateRule(c.Request.Context(), ruleID, req, actorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rule updated successfully", result)
}

// DeleteRule handles DELETE /moderation/rules/:id
func (h *ModerationHandler) DeleteRule(c *gin.Context) {
	ruleID, err := utils.RequireParam(c, "id", "rule")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.DeleteRule(c.Request.Context(), ruleID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// TestRule handles POST /moderation/rules/test
func (h *ModerationHandler) TestRule(c *gin.Context) {
	var req dto.TestRuleRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.TestRule(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RulesHistory handles GET /moderation/rules/history
func (h *ModerationHandler) RulesHistory(c *gin.Context) {
	result, err := h.service.RulesHistory(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if result == nil {
		result = []dto.RuleHistoryEntryDTO{}
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

package moderation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	"github.com/orris-inc/moderation/internal/shared/utils"
)

// ListContent handles GET /moderation/content
func (h *ModerationHandler) ListContent(c *gin.Context) {
	filter, err := parseContentFilter(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.ListContent(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	respondPage(c, result)
}

func parseContentFilter(c *gin.Context) (dto.ContentFilter, error) {
	limit, cursor, err := pageParams(c)
	if err != nil {
		return dto.ContentFilter{}, err
	}
	hasReports, err := utils.QueryBool(c, "has_reports")
	if err != nil {
		return dto.ContentFilter{}, err
	}
	from, err := utils.QueryTime(c, "created_from")
	if err != nil {
		return dto.ContentFilter{}, err
	}
	to, err := utils.QueryTime(c, "created_to")
	if err != nil {
		return dto.ContentFilter{}, err
	}

	return dto.ContentFilter{
		ContentType: c.Query("content_type"),
		Status:      c.Query("status"),
		AILabel:     c.Query("ai_label"),
		HasReports:  hasReports,
		AuthorID:    c.Query("author_id"),
		CreatedFrom: from,
		CreatedTo:   to,
		Limit:       limit,
		Cursor:      cursor,
	}, nil
}

// GetContent handles GET /moderation/content/:id
func (h *ModerationHandler) GetContent(c *gin.Context) {
	contentID, err := utils.RequireParam(c, "id", "content")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.GetContent(c.Request.Context(), contentID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpsertContent handles PUT /moderation/content
func (h *ModerationHandler) UpsertContent(c *gin.Context) {
	var req dto.UpsertContentRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for upsert content", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.UpsertContent(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Content saved successfully", result)
}

// DecideContent handles POST /moderation/content/:id/decision
func (h *ModerationHandler) DecideContent(c *gin.Context) {
	contentID, err := utils.RequireParam(c, "id", "content")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.ContentDecisionRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for content decision", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.DecideContent(c.Request.Context(), contentID, req, actorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Decision recorded", result)
}

// EditContent handles PATCH /moderation/content/:id
func (h *ModerationHandler) EditContent(c *gin.Context) {
	contentID, err := utils.RequireParam(c, "id", "content")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var patch map[string]any
	if err := utils.BindJSON(c, &patch); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.EditContent(c.Request.Context(), contentID, patch)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Content updated successfully", result)
}

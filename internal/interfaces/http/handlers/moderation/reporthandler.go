package moderation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	"github.com/orris-inc/moderation/internal/shared/utils"
)

// ListReports handles GET /moderation/reports
func (h *ModerationHandler) ListReports(c *gin.Context) {
	limit, cursor, err := pageParams(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	filter := dto.ReportFilter{
		Status:     c.Query("status"),
		Category:   c.Query("category"),
		Source:     c.Query("source"),
		ObjectType: c.Query("object_type"),
		ObjectID:   c.Query("object_id"),
		ReporterID: c.Query("reporter_id"),
		Limit:      limit,
		Cursor:     cursor,
	}

	result, err := h.service.ListReports(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	respondPage(c, result)
}

// GetReport handles GET /moderation/reports/:id
func (h *ModerationHandler) GetReport(c *gin.Context) {
	reportID, err := utils.RequireParam(c, "id", "report")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.GetReport(c.Request.Context(), reportID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateReport handles POST /moderation/reports
func (h *ModerationHandler) CreateReport(c *gin.Context) {
	var req dto.CreateReportRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create report", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.CreateReport(c.Request.Context(), req, actorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Report created successfully")
}

// ResolveReport handles POST /moderation/reports/:id/resolve
func (h *ModerationHandler) ResolveReport(c *gin.Context) {
	reportID, err := utils.RequireParam(c, "id", "report")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.ResolveReportRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.ResolveReport(c.Request.Context(), reportID, req, actorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Report resolved", result)
}

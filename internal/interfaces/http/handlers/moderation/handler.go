// Package moderation adapts the moderation service to HTTP. Handlers only
// parse input and map results; every rule lives in the service.
package moderation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	"github.com/orris-inc/moderation/internal/interfaces/http/middleware"
	"github.com/orris-inc/moderation/internal/shared/logger"
	"github.com/orris-inc/moderation/internal/shared/utils"
)

type ModerationHandler struct {
	service ModerationService
	logger  logger.Interface
}

func NewModerationHandler(service ModerationService, log logger.Interface) *ModerationHandler {
	return &ModerationHandler{
		service: service,
		logger:  log,
	}
}

// GetOverview handles GET /moderation/overview
func (h *ModerationHandler) GetOverview(c *gin.Context) {
	result, err := h.service.GetOverview(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// pageParams reads limit and cursor. The service clamps the limit.
func pageParams(c *gin.Context) (int, string, error) {
	limit, err := utils.QueryInt(c, "limit", 0)
	if err != nil {
		return 0, "", err
	}
	return limit, c.Query("cursor"), nil
}

func actorID(c *gin.Context) string {
	return middleware.ActorID(c)
}

// respondPage writes a cursor page, keeping items an empty array rather
// than null.
func respondPage[T any](c *gin.Context, page *dto.Page[T]) {
	if page.Items == nil {
		page.Items = []T{}
	}
	utils.SuccessResponse(c, http.StatusOK, "", page)
}

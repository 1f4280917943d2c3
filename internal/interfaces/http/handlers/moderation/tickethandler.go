package moderation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	"github.com/orris-inc/moderation/internal/shared/utils"
)

// ListTickets handles GET /moderation/tickets
func (h *ModerationHandler) ListTickets(c *gin.Context) {
	limit, cursor, err := pageParams(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	filter := dto.TicketFilter{
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		AssigneeID: c.Query("assignee_id"),
		AuthorID:   c.Query("author_id"),
		Limit:      limit,
		Cursor:     cursor,
	}

	result, err := h.service.ListTickets(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	respondPage(c, result)
}

// GetTicket handles GET /moderation/tickets/:id
func (h *ModerationHandler) GetTicket(c *gin.Context) {
	ticketID, err := utils.RequireParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.GetTicket(c.Request.Context(), ticketID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateTicket handles POST /moderation/tickets
func (h *ModerationHandler) CreateTicket(c *gin.Context) {
	var req dto.CreateTicketRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.CreateTicket(c.Request.Context(), req, actorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// ListTicketMessages handles GET /moderation/tickets/:id/messages
func (h *ModerationHandler) ListTicketMessages(c *gin.Context) {
	ticketID, err := utils.RequireParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	limit, cursor, err := pageParams(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.ListTicketMessages(c.Request.Context(), ticketID, limit, cursor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	respondPage(c, result)
}

// AddTicketMessage handles POST /moderation/tickets/:id/messages
func (h *ModerationHandler) AddTicketMessage(c *gin.Context) {
	ticketID, err := utils.RequireParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.AddTicketMessageRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for ticket message", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.AddTicketMessage(c.Request.Context(), ticketID, req, actorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Message added successfully")
}

// UpdateTicket handles PATCH /moderation/tickets/:id
func (h *ModerationHandler) UpdateTicket(c *gin.Context) {
	ticketID, err := utils.RequireParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateTicketRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.UpdateTicket(c.Request.Context(), ticketID, req, actorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// EscalateTicket handles POST /moderation/tickets/:id/escalate
func (h *ModerationHandler) EscalateTicket(c *gin.Context) {
	ticketID, err := utils.RequireParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.EscalateTicketRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.EscalateTicket(c.Request.Context(), ticketID, req, actorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket escalated", result)
}

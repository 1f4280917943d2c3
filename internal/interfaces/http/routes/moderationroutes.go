package routes

import (
	"github.com/gin-gonic/gin"

	moderationhandlers "github.com/orris-inc/moderation/internal/interfaces/http/handlers/moderation"
	"github.com/orris-inc/moderation/internal/interfaces/http/middleware"
)

type ModerationRouteConfig struct {
	Handler *moderationhandlers.ModerationHandler
	// RateLimiter is optional; nil disables write throttling.
	RateLimiter *middleware.RateLimiter
}

func SetupModerationRoutes(engine *gin.Engine, config *ModerationRouteConfig) {
	h := config.Handler

	mod := engine.Group("/moderation")
	mod.Use(middleware.Actor())
	if config.RateLimiter != nil {
		mod.Use(config.RateLimiter.Limit())
	}
	{
		mod.GET("/overview", h.GetOverview)

		content := mod.Group("/content")
		content.GET("", h.ListContent)
		content.PUT("", h.UpsertContent)
		content.POST("/:id/decision", h.DecideContent)
		content.GET("/:id", h.GetContent)
		content.PATCH("/:id", h.EditContent)

		reports := mod.Group("/reports")
		reports.GET("", h.ListReports)
		reports.POST("", h.CreateReport)
		reports.POST("/:id/resolve", h.ResolveReport)
		reports.GET("/:id", h.GetReport)

		tickets := mod.Group("/tickets")
		tickets.GET("", h.ListTickets)
		tickets.POST("", h.CreateTicket)
		tickets.GET("/:id/messages", h.ListTicketMessages)
		tickets.POST("/:id/messages", h.AddTicketMessage)
		tickets.POST("/:id/escalate", h.EscalateTicket)
		tickets.GET("/:id", h.GetTicket)
		tickets.PATCH("/:id", h.UpdateTicket)

		appeals := mod.Group("/appeals")
		appeals.GET("", h.ListAppeals)
		appeals.POST("", h.CreateAppeal)
		appeals.POST("/:id/decision", h.DecideAppeal)
		appeals.GET("/:id", h.GetAppeal)

		// Static paths are registered before /:id so they win the match.
		rules := mod.Group("/rules")
		rules.GET("", h.ListRules)
		rules.POST("", h.CreateRule)
		rules.GET("/history", h.RulesHistory)
		rules.POST("/test", h.TestRule)
		rules.GET("/:id", h.GetRule)
		rules.PATCH("/:id", h.UpdateRule)
		rules.DELETE("/:id", h.DeleteRule)

		users := mod.Group("/users")
		users.GET("", h.ListUsers)
		users.GET("/:id/warnings", h.WarningsCountRecent)
		users.PATCH("/:id/roles", h.UpdateRoles)
		users.POST("/:id/sanctions", h.IssueSanction)
		users.PATCH("/:id/sanctions/:sanction_id", h.UpdateSanction)
		users.POST("/:id/notes", h.AddNote)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.EnsureUserStub)
	}
}

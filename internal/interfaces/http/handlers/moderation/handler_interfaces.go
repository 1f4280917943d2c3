package moderation

import (
	"context"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
)

// Service interfaces for ModerationHandler, grouped by area.

type overviewService interface {
	GetOverview(ctx context.Context) (*dto.OverviewDTO, error)
}

type contentService interface {
	ListContent(ctx context.Context, filter dto.ContentFilter) (*dto.Page[dto.ContentDTO], error)
	GetContent(ctx context.Context, contentID string) (*dto.ContentDTO, error)
	DecideContent(ctx context.Context, contentID string, req dto.ContentDecisionRequest, actorID string) (*dto.ContentDTO, error)
	EditContent(ctx context.Context, contentID string, patch map[string]any) (*dto.ContentDTO, error)
	UpsertContent(ctx context.Context, req dto.UpsertContentRequest) (*dto.ContentDTO, error)
}

type reportService interface {
	ListReports(ctx context.Context, filter dto.ReportFilter) (*dto.Page[dto.ReportDTO], error)
	GetReport(ctx context.Context, reportID string) (*dto.ReportDTO, error)
	CreateReport(ctx context.Context, req dto.CreateReportRequest, actorID string) (*dto.ReportDTO, error)
	ResolveReport(ctx context.Context, reportID string, req dto.ResolveReportRequest, actorID string) (*dto.ReportDTO, error)
}

type ticketService interface {
	ListTickets(ctx context.Context, filter dto.TicketFilter) (*dto.Page[dto.TicketDTO], error)
	GetTicket(ctx context.Context, ticketID string) (*dto.TicketDTO, error)
	CreateTicket(ctx context.Context, req dto.CreateTicketRequest, actorID string) (*dto.TicketDTO, error)
	ListTicketMessages(ctx context.Context, ticketID string, limit int, cursor string) (*dto.Page[dto.TicketMessageDTO], error)
	AddTicketMessage(ctx context.Context, ticketID string, req dto.AddTicketMessageRequest, actorID string) (*dto.TicketMessageDTO, error)
	UpdateTicket(ctx context.Context, ticketID string, req dto.UpdateTicketRequest, actorID string) (*dto.TicketDTO, error)
	EscalateTicket(ctx context.Context, ticketID string, req dto.EscalateTicketRequest, actorID string) (*dto.TicketDTO, error)
}

type appealService interface {
	ListAppeals(ctx context.Context, filter dto.AppealFilter) (*dto.Page[dto.AppealDTO], error)
	GetAppeal(ctx context.Context, appealID string) (*dto.AppealDTO, error)
	CreateAppeal(ctx context.Context, req dto.CreateAppealRequest, actorID string) (*dto.AppealDTO, error)
	DecideAppeal(ctx context.Context, appealID string, req dto.DecideAppealRequest, actorID string) (*dto.AppealDTO, error)
}

type ruleService interface {
	ListRules(ctx context.Context, filter dto.RuleFilter) (*dto.Page[dto.AIRuleDTO], error)
	CreateRule(ctx context.Context, req dto.CreateRuleRequest, actorID string) (*dto.AIRuleDTO, error)
	GetRule(ctx context.Context, ruleID string) (*dto.AIRuleDTO, error)
	UpdateRule(ctx context.Context, ruleID string, req dto.UpdateRuleRequest, actorID string) (*dto.AIRuleDTO, error)
	DeleteRule(ctx context.Context, ruleID string) error
	TestRule(ctx context.Context, req dto.TestRuleRequest) (*dto.TestRuleResult, error)
	RulesHistory(ctx context.Context) ([]dto.RuleHistoryEntryDTO, error)
}

type userService interface {
	ListUsers(ctx context.Context, filter dto.UserFilter) (*dto.Page[dto.UserDTO], error)
	GetUser(ctx context.Context, userID string) (*dto.UserDetailDTO, error)
	EnsureUserStub(ctx context.Context, userID string) (*dto.UserDTO, error)
	UpdateRoles(ctx context.Context, userID string, req dto.UpdateRolesRequest) (*dto.UserDTO, error)
	IssueSanction(ctx context.Context, userID string, req dto.IssueSanctionRequest, actorID, idempotencyKey string) (*dto.SanctionDTO, error)
	UpdateSanction(ctx context.Context, userID, sanctionID string, req dto.UpdateSanctionRequest, actorID string) (*dto.SanctionDTO, error)
	AddNote(ctx context.Context, userID string, req dto.AddNoteRequest, actorID string) (*dto.NoteDTO, error)
	WarningsCountRecent(ctx context.Context, userID string, days int) (*dto.WarningsCountDTO, error)
}

// ModerationService is the full method surface the handler adapts to HTTP.
type ModerationService interface {
	overviewService
	contentService
	reportService
	ticketService
	appealService
	ruleService
	userService
}

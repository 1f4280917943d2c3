package moderation

import (
	"context"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
)

// mockService implements ModerationService. Unset funcs return zero values.
type mockService struct {
	getOverviewFunc         func(ctx context.Context) (*dto.OverviewDTO, error)
	listContentFunc         func(ctx context.Context, filter dto.ContentFilter) (*dto.Page[dto.ContentDTO], error)
	getContentFunc          func(ctx context.Context, contentID string) (*dto.ContentDTO, error)
	decideContentFunc       func(ctx context.Context, contentID string, req dto.ContentDecisionRequest, actorID string) (*dto.ContentDTO, error)
	editContentFunc         func(ctx context.Context, contentID string, patch map[string]any) (*dto.ContentDTO, error)
	upsertContentFunc       func(ctx context.Context, req dto.UpsertContentRequest) (*dto.ContentDTO, error)
	listReportsFunc         func(ctx context.Context, filter dto.ReportFilter) (*dto.Page[dto.ReportDTO], error)
	getReportFunc           func(ctx context.Context, reportID string) (*dto.ReportDTO, error)
	createReportFunc        func(ctx context.Context, req dto.CreateReportRequest, actorID string) (*dto.ReportDTO, error)
	resolveReportFunc       func(ctx context.Context, reportID string, req dto.ResolveReportRequest, actorID string) (*dto.ReportDTO, error)
	listTicketsFunc         func(ctx context.Context, filter dto.TicketFilter) (*dto.Page[dto.TicketDTO], error)
	getTicketFunc           func(ctx context.Context, ticketID string) (*dto.TicketDTO, error)
	createTicketFunc        func(ctx context.Context, req dto.CreateTicketRequest, actorID string) (*dto.TicketDTO, error)
	listTicketMessagesFunc  func(ctx context.Context, ticketID string, limit int, cursor string) (*dto.Page[dto.TicketMessageDTO], error)
	addTicketMessageFunc    func(ctx context.Context, ticketID string, req dto.AddTicketMessageRequest, actorID string) (*dto.TicketMessageDTO, error)
	updateTicketFunc        func(ctx context.Context, ticketID string, req dto.UpdateTicketRequest, actorID string) (*dto.TicketDTO, error)
	escalateTicketFunc      func(ctx context.Context, ticketID string, req dto.EscalateTicketRequest, actorID string) (*dto.TicketDTO, error)
	listAppealsFunc         func(ctx context.Context, filter dto.AppealFilter) (*dto.Page[dto.AppealDTO], error)
	getAppealFunc           func(ctx context.Context, appealID string) (*dto.AppealDTO, error)
	createAppealFunc        func(ctx context.Context, req dto.CreateAppealRequest, actorID string) (*dto.AppealDTO, error)
	decideAppealFunc        func(ctx context.Context, appealID string, req dto.DecideAppealRequest, actorID string) (*dto.AppealDTO, error)
	listRulesFunc           func(ctx context.Context, filter dto.RuleFilter) (*dto.Page[dto.AIRuleDTO], error)
	createRuleFunc          func(ctx context.Context, req dto.CreateRuleRequest, actorID string) (*dto.AIRuleDTO, error)
	getRuleFunc             func(ctx context.Context, ruleID string) (*dto.AIRuleDTO, error)
	updateRuleFunc          func(ctx context.Context, ruleID string, req dto.UpdateRuleRequest, actorID string) (*dto.AIRuleDTO, error)
	deleteRuleFunc          func(ctx context.Context, ruleID string) error
	testRuleFunc            func(ctx context.Context, req dto.TestRuleRequest) (*dto.TestRuleResult, error)
	rulesHistoryFunc        func(ctx context.Context) ([]dto.RuleHistoryEntryDTO, error)
	listUsersFunc           func(ctx context.Context, filter dto.UserFilter) (*dto.Page[dto.UserDTO], error)
	getUserFunc             func(ctx context.Context, userID string) (*dto.UserDetailDTO, error)
	ensureUserStubFunc      func(ctx context.Context, userID string) (*dto.UserDTO, error)
	updateRolesFunc         func(ctx context.Context, userID string, req dto.UpdateRolesRequest) (*dto.UserDTO, error)
	issueSanctionFunc       func(ctx context.Context, userID string, req dto.IssueSanctionRequest, actorID, idempotencyKey string) (*dto.SanctionDTO, error)
	updateSanctionFunc      func(ctx context.Context, userID, sanctionID string, req dto.UpdateSanctionRequest, actorID string) (*dto.SanctionDTO, error)
	addNoteFunc             func(ctx context.Context, userID string, req dto.AddNoteRequest, actorID string) (*dto.NoteDTO, error)
	warningsCountRecentFunc func(ctx context.Context, userID string, days int) (*dto.WarningsCountDTO, error)
}

func (m *mockService) GetOverview(ctx context.Context) (*dto.OverviewDTO, error) {
	if m.getOverviewFunc != nil {
		return m.getOverviewFunc(ctx)
	}
	return &dto.OverviewDTO{}, nil
}

func (m *mockService) ListContent(ctx context.Context, filter dto.ContentFilter) (*dto.Page[dto.ContentDTO], error) {
	if m.listContentFunc != nil {
		return m.listContentFunc(ctx, filter)
	}
	return &dto.Page[dto.ContentDTO]{}, nil
}

func (m *mockService) GetContent(ctx context.Context, contentID string) (*dto.ContentDTO, error) {
	if m.getContentFunc != nil {
		return m.getContentFunc(ctx, contentID)
	}
	return &dto.ContentDTO{}, nil
}

func (m *mockService) DecideContent(ctx context.Context, contentID string, req dto.ContentDecisionRequest, actorID string) (*dto.ContentDTO, error) {
	if m.decideContentFunc != nil {
		return m.decideContentFunc(ctx, contentID, req, actorID)
	}
	return &dto.ContentDTO{}, nil
}

func (m *mockService) EditContent(ctx context.Context, contentID string, patch map[string]any) (*dto.ContentDTO, error) {
	if m.editContentFunc != nil {
		return m.editContentFunc(ctx, contentID, patch)
	}
	return &dto.ContentDTO{}, nil
}

func (m *mockService) UpsertContent(ctx context.Context, req dto.UpsertContentRequest) (*dto.ContentDTO, error) {
	if m.upsertContentFunc != nil {
		return m.upsertContentFunc(ctx, req)
	}
	return &dto.ContentDTO{}, nil
}

func (m *mockService) ListReports(ctx context.Context, filter dto.ReportFilter) (*dto.Page[dto.ReportDTO], error) {
	if m.listReportsFunc != nil {
		return m.listReportsFunc(ctx, filter)
	}
	return &dto.Page[dto.ReportDTO]{}, nil
}

func (m *mockService) GetReport(ctx context.Context, reportID string) (*dto.ReportDTO, error) {
	if m.getReportFunc != nil {
		return m.getReportFunc(ctx, reportID)
	}
	return &dto.ReportDTO{}, nil
}

func (m *mockService) CreateReport(ctx context.Context, req dto.CreateReportRequest, actorID string) (*dto.ReportDTO, error) {
	if m.createReportFunc != nil {
		return m.createReportFunc(ctx, req, actorID)
	}
	return &dto.ReportDTO{}, nil
}

func (m *mockService) ResolveReport(ctx context.Context, reportID string, req dto.ResolveReportRequest, actorID string) (*dto.ReportDTO, error) {
	if m.resolveReportFunc != nil {
		return m.resolveReportFunc(ctx, reportID, req, actorID)
	}
	return &dto.ReportDTO{}, nil
}

func (m *mockService) ListTickets(ctx context.Context, filter dto.TicketFilter) (*dto.Page[dto.TicketDTO], error) {
	if m.listTicketsFunc != nil {
		return m.listTicketsFunc(ctx, filter)
	}
	return &dto.Page[dto.TicketDTO]{}, nil
}

func (m *mockService) GetTicket(ctx context.Context, ticketID string) (*dto.TicketDTO, error) {
	if m.getTicketFunc != nil {
		return m.getTicketFunc(ctx, ticketID)
	}
	return &dto.TicketDTO{}, nil
}

func (m *mockService) CreateTicket(ctx context.Context, req dto.CreateTicketRequest, actorID string) (*dto.TicketDTO, error) {
	if m.createTicketFunc != nil {
		return m.createTicketFunc(ctx, req, actorID)
	}
	return &dto.TicketDTO{}, nil
}

func (m *mockService) ListTicketMessages(ctx context.Context, ticketID string, limit int, cursor string) (*dto.Page[dto.TicketMessageDTO], error) {
	if m.listTicketMessagesFunc != nil {
		return m.listTicketMessagesFunc(ctx, ticketID, limit, cursor)
	}
	return &dto.Page[dto.TicketMessageDTO]{}, nil
}

func (m *mockService) AddTicketMessage(ctx context.Context, ticketID string, req dto.AddTicketMessageRequest, actorID string) (*dto.TicketMessageDTO, error) {
	if m.addTicketMessageFunc != nil {
		return m.addTicketMessageFunc(ctx, ticketID, req, actorID)
	}
	return &dto.TicketMessageDTO{}, nil
}

func (m *mockService) UpdateTicket(ctx context.Context, ticketID string, req dto.UpdateTicketRequest, actorID string) (*dto.TicketDTO, error) {
	if m.updateTicketFunc != nil {
		return m.updateTicketFunc(ctx, ticketID, req, actorID)
	}
	return &dto.TicketDTO{}, nil
}

func (m *mockService) EscalateTicket(ctx context.Context, ticketID string, req dto.EscalateTicketRequest, actorID string) (*dto.TicketDTO, error) {
	if m.escalateTicketFunc != nil {
		return m.escalateTicketFunc(ctx, ticketID, req, actorID)
	}
	return &dto.TicketDTO{}, nil
}

func (m *mockService) ListAppeals(ctx context.Context, filter dto.AppealFilter) (*dto.Page[dto.AppealDTO], error) {
	if m.listAppealsFunc != nil {
		return m.listAppealsFunc(ctx, filter)
	}
	return &dto.Page[dto.AppealDTO]{}, nil
}

func (m *mockService) GetAppeal(ctx context.Context, appealID string) (*dto.AppealDTO, error) {
	if m.getAppealFunc != nil {
		return m.getAppealFunc(ctx, appealID)
	}
	return &dto.AppealDTO{}, nil
}

func (m *mockService) CreateAppeal(ctx context.Context, req dto.CreateAppealRequest, actorID string) (*dto.AppealDTO, error) {
	if m.createAppealFunc != nil {
		return m.createAppealFunc(ctx, req, actorID)
	}
	return &dto.AppealDTO{}, nil
}

func (m *mockService) DecideAppeal(ctx context.Context, appealID string, req dto.DecideAppealRequest, actorID string) (*dto.AppealDTO, error) {
	if m.decideAppealFunc != nil {
		return m.decideAppealFunc(ctx, appealID, req, actorID)
	}
	return &dto.AppealDTO{}, nil
}

func (m *mockService) ListRules(ctx context.Context, filter dto.RuleFilter) (*dto.Page[dto.AIRuleDTO], error) {
	if m.listRulesFunc != nil {
		return m.listRulesFunc(ctx, filter)
	}
	return &dto.Page[dto.AIRuleDTO]{}, nil
}

func (m *mockService) CreateRule(ctx context.Context, req dto.CreateRuleRequest, actorID string) (*dto.AIRuleDTO, error) {
	if m.createRuleFunc != nil {
		return m.createRuleFunc(ctx, req, actorID)
	}
	return &dto.AIRuleDTO{}, nil
}

func (m *mockService) GetRule(ctx context.Context, ruleID string) (*dto.AIRuleDTO, error) {
	if m.getRuleFunc != nil {
		return m.getRuleFunc(ctx, ruleID)
	}
	return &dto.AIRuleDTO{}, nil
}

func (m *mockService) UpdateRule(ctx context.Context, ruleID string, req dto.UpdateRuleRequest, actorID string) (*dto.AIRuleDTO, error) {
	if m.updateRuleFunc != nil {
		return m.updateRuleFunc(ctx, ruleID, req, actorID)
	}
	return &dto.AIRuleDTO{}, nil
}

func (m *mockService) DeleteRule(ctx context.Context, ruleID string) error {
	if m.deleteRuleFunc != nil {
		return m.deleteRuleFunc(ctx, ruleID)
	}
	return nil
}

func (m *mockService) TestRule(ctx context.Context, req dto.TestRuleRequest) (*dto.TestRuleResult, error) {
	if m.testRuleFunc != nil {
		return m.testRuleFunc(ctx, req)
	}
	return &dto.TestRuleResult{}, nil
}

func (m *mockService) RulesHistory(ctx context.Context) ([]dto.RuleHistoryEntryDTO, error) {
	if m.rulesHistoryFunc != nil {
		return m.rulesHistoryFunc(ctx)
	}
	return nil, nil
}

func (m *mockService) ListUsers(ctx context.Context, filter dto.UserFilter) (*dto.Page[dto.UserDTO], error) {
	if m.listUsersFunc != nil {
		return m.listUsersFunc(ctx, filter)
	}
	return &dto.Page[dto.UserDTO]{}, nil
}

func (m *mockService) GetUser(ctx context.Context, userID string) (*dto.UserDetailDTO, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, userID)
	}
	return &dto.UserDetailDTO{}, nil
}

func (m *mockService) EnsureUserStub(ctx context.Context, userID string) (*dto.UserDTO, error) {
	if m.ensureUserStubFunc != nil {
		return m.ensureUserStubFunc(ctx, userID)
	}
	return &dto.UserDTO{}, nil
}

func (m *mockService) UpdateRoles(ctx context.Context, userID string, req dto.UpdateRolesRequest) (*dto.UserDTO, error) {
	if m.updateRolesFunc != nil {
		return m.updateRolesFunc(ctx, userID, req)
	}
	return &dto.UserDTO{}, nil
}

func (m *mockService) IssueSanction(ctx context.Context, userID string, req dto.IssueSanctionRequest, actorID, idempotencyKey string) (*dto.SanctionDTO, error) {
	if m.issueSanctionFunc != nil {
		return m.issueSanctionFunc(ctx, userID, req, actorID, idempotencyKey)
	}
	return &dto.SanctionDTO{}, nil
}

func (m *mockService) UpdateSanction(ctx context.Context, userID, sanctionID string, req dto.UpdateSanctionRequest, actorID string) (*dto.SanctionDTO, error) {
	if m.updateSanctionFunc != nil {
		return m.updateSanctionFunc(ctx, userID, sanctionID, req, actorID)
	}
	return &dto.SanctionDTO{}, nil
}

func (m *mockService) AddNote(ctx context.Context, userID string, req dto.AddNoteRequest, actorID string) (*dto.NoteDTO, error) {
	if m.addNoteFunc != nil {
		return m.addNoteFunc(ctx, userID, req, actorID)
	}
	return &dto.NoteDTO{}, nil
}

func (m *mockService) WarningsCountRecent(ctx context.Context, userID string, days int) (*dto.WarningsCountDTO, error) {
	if m.warningsCountRecentFunc != nil {
		return m.warningsCountRecentFunc(ctx, userID, days)
	}
	return &dto.WarningsCountDTO{}, nil
}

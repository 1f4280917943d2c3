package dto

type OverviewDTO struct {
	Reports         ReportSummary     `json:"reports"`
	Queues          QueueSummary      `json:"queues"`
	PendingContent  map[string]int    `json:"pending_content"`
	RecentSanctions []SanctionDTO     `json:"recent_sanctions"`
	ComplaintSource map[string]int    `json:"complaint_sources"`
	Analytics       OverviewAnalytics `json:"analytics"`
	FlaggedUsers    []FlaggedUserCard `json:"flagged_users"`
}

type ReportSummary struct {
	New        int            `json:"new"`
	ByCategory map[string]int `json:"by_category"`
}

type QueueSummary struct {
	OpenTickets    int `json:"open_tickets"`
	WaitingTickets int `json:"waiting_tickets"`
	OpenAppeals    int `json:"open_appeals"`
}

type OverviewAnalytics struct {
	// MeanResolutionHours is nil when no report has been resolved.
	MeanResolutionHours *float64 `json:"mean_resolution_hours"`
	AIDecisionShare     float64  `json:"ai_decision_share"`
	TotalDecisions      int      `json:"total_decisions"`
}

type FlaggedUserCard struct {
	UserID          string   `json:"user_id"`
	Username        string   `json:"username"`
	Status          string   `json:"status"`
	ActiveSanctions []string `json:"active_sanctions"`
}

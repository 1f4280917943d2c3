package moderation

import (
	"time"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	vo "github.com/orris-inc/moderation/internal/domain/moderation/valueobjects"
)

// seedDemoData fills an empty graph with a small, consistent data set for
// non-production environments.
func seedDemoData(st *domain.Store, now time.Time) {
	ago := func(d time.Duration) time.Time { return now.Add(-d) }
	day := 24 * time.Hour

	users := []struct {
		id, name string
		roles    []string
		age      time.Duration
	}{
		{"u-100", "alice", []string{"admin", "moderator"}, 400 * day},
		{"u-101", "bob", []string{"moderator"}, 200 * day},
		{"u-102", "carol", []string{"user"}, 90 * day},
		{"u-103", "dave", []string{"user"}, 30 * day},
		{"u-104", "erin", []string{"user"}, 7 * day},
	}
	for _, u := range users {
		lastSeen := ago(time.Hour)
		st.AddUser(&domain.User{
			ID:           u.id,
			Username:     u.name,
			Email:        u.name + "@example.com",
			Roles:        u.roles,
			Status:       vo.UserStatusActive,
			RegisteredAt: ago(u.age),
			LastSeenAt:   &lastSeen,
			Meta:         map[string]any{"seed": true},
		})
	}

	node := st.AddContent(&domain.Content{
		ID:          "content_demo_node",
		ContentType: vo.ContentTypeNode,
		AuthorID:    "u-103",
		CreatedAt:   ago(2 * day),
		Preview:     "Free premium nodes, click the link in my profile",
		AILabels:    []string{"spam"},
		Status:      vo.ContentStatusPending,
	})
	comment := st.AddContent(&domain.Content{
		ID:          "content_demo_comment",
		ContentType: vo.ContentTypeComment,
		AuthorID:    "u-104",
		CreatedAt:   ago(6 * time.Hour),
		Preview:     "You are all idiots",
		AILabels:    []string{"toxicity"},
		Status:      vo.ContentStatusPending,
	})
	st.AddContent(&domain.Content{
		ID:          "content_demo_media",
		ContentType: vo.ContentTypeMedia,
		AuthorID:    "u-102",
		CreatedAt:   ago(3 * day),
		Preview:     "Sunset over the ridge",
		Status:      vo.ContentStatusPending,
	})

	st.AddReport(&domain.Report{
		ObjectType: domain.ObjectTypeContent,
		ObjectID:   node.ID,
		ReporterID: "u-102",
		Category:   "spam",
		Text:       "Advertising in node description",
		Status:     vo.ReportStatusNew,
		Source:     "user",
		CreatedAt:  ago(day),
	})
	st.AddReport(&domain.Report{
		ObjectType: domain.ObjectTypeContent,
		ObjectID:   comment.ID,
		Category:   "abuse",
		Text:       "Classifier flagged insult",
		Status:     vo.ReportStatusNew,
		Source:     "ai",
		CreatedAt:  ago(5 * time.Hour),
	})
	resolvedAt := ago(2 * day)
	st.AddReport(&domain.Report{
		ObjectType: domain.ObjectTypeUser,
		ObjectID:   "u-103",
		ReporterID: "u-101",
		Category:   "harassment",
		Text:       "Repeated unwanted messages",
		Status:     vo.ReportStatusValid,
		Source:     "user",
		CreatedAt:  ago(3 * day),
		ResolvedAt: &resolvedAt,
		Decision:   "warning issued",
	})

	warning := st.AddSanction(&domain.Sanction{
		UserID:   "u-103",
		Type:     vo.SanctionTypeWarning,
		Status:   vo.SanctionStatusActive,
		Reason:   "harassment",
		IssuedBy: "u-101",
		IssuedAt: ago(2 * day),
		StartsAt: ago(2 * day),
	})

	lastMessage := ago(3 * time.Hour)
	ticket := st.AddTicket(&domain.Ticket{
		ID:            "tic_demo",
		Title:         "Why was my node hidden?",
		Priority:      vo.TicketPriorityNormal,
		AuthorID:      "u-102",
		Status:        vo.TicketStatusNew,
		CreatedAt:     ago(4 * time.Hour),
		UpdatedAt:     lastMessage,
		LastMessageAt: &lastMessage,
	})
	msg := st.AddTicketMessage(&domain.TicketMessage{
		TicketID:  ticket.ID,
		AuthorID:  "u-102",
		Text:      "My node disappeared from search, can you check?",
		CreatedAt: lastMessage,
	})
	ticket.ApplyMessage(msg, true)

	st.AddAppeal(&domain.Appeal{
		TargetType: domain.AppealTargetSanction,
		TargetID:   warning.ID,
		UserID:     "u-103",
		Text:       "It was a misunderstanding",
		Status:     vo.AppealStatusNew,
		CreatedAt:  ago(day),
	})

	rule := st.AddRule(&domain.AIRule{
		Category:    "spam",
		Thresholds:  map[string]float64{"spam": 0.85, "phishing": 0.7},
		Actions:     map[string]any{"spam": "hide", "phishing": "escalate"},
		Enabled:     true,
		Description: "Default spam classifier thresholds",
	})
	rule.RecordChange("u-100", ago(10*day), map[string]any{
		"created":    true,
		"thresholds": map[string]any{"spam": 0.85, "phishing": 0.7},
	})

	for id := range st.Users {
		st.RecomputeUserStatus(id, now)
	}
}

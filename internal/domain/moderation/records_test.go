package moderation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	vo "github.com/orris-inc/moderation/internal/domain/moderation/valueobjects"
)

func TestSanction_RefreshExpiry(t *testing.T) {
	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)

	tests := []struct {
		name       string
		status     vo.SanctionStatus
		endsAt     *time.Time
		wantStatus vo.SanctionStatus
		changed    bool
	}{
		{"active and lapsed", vo.SanctionStatusActive, &past, vo.SanctionStatusExpired, true},
		{"active and running", vo.SanctionStatusActive, &future, vo.SanctionStatusActive, false},
		{"active indefinite", vo.SanctionStatusActive, nil, vo.SanctionStatusActive, false},
		{"canceled and lapsed", vo.SanctionStatusCanceled, &past, vo.SanctionStatusCanceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sn := &Sanction{Status: tt.status, EndsAt: tt.endsAt}
			assert.Equal(t, tt.changed, sn.RefreshExpiry(testNow))
			assert.Equal(t, tt.wantStatus, sn.Status)
		})
	}
}

func TestSanction_Cancel(t *testing.T) {
	sn := &Sanction{Type: vo.SanctionTypeBan, Status: vo.SanctionStatusActive}
	assert.True(t, sn.IsActiveBan())

	sn.Cancel("mod-7", testNow)

	assert.Equal(t, vo.SanctionStatusCanceled, sn.Status)
	assert.Equal(t, "mod-7", sn.RevokedBy)
	assert.Equal(t, testNow, *sn.RevokedAt)
	assert.False(t, sn.IsActiveBan())
}

func TestContent_RecordDecisionPrependsHistory(t *testing.T) {
	c := &Content{Status: vo.ContentStatusPending}

	c.RecordDecision("hide", "spam", "mod-1", "", testNow)
	c.RecordDecision("allow", "appeal", "mod-2", "looked again", testNow.Add(time.Minute))

	assert.Equal(t, vo.ContentStatusResolved, c.Status)
	assert.Len(t, c.ModerationHistory, 2)
	assert.Equal(t, "allow", c.ModerationHistory[0]["action"])
	assert.Equal(t, "hide", c.ModerationHistory[1]["action"])

	last, ok := c.Meta["last_decision"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "mod-2", last["actor"])
}

func TestContent_HasLabel(t *testing.T) {
	c := &Content{AILabels: []string{"Spam", "nsfw"}}
	assert.True(t, c.HasLabel("spam"))
	assert.True(t, c.HasLabel("NSFW"))
	assert.False(t, c.HasLabel("violence"))
}

func TestTicket_ApplyMessage(t *testing.T) {
	tk := &Ticket{}

	tk.ApplyMessage(&TicketMessage{CreatedAt: testNow}, true)
	tk.ApplyMessage(&TicketMessage{CreatedAt: testNow, Internal: true}, true)
	tk.ApplyMessage(&TicketMessage{CreatedAt: testNow.Add(time.Minute)}, false)

	assert.Equal(t, 1, tk.UnreadCount)
	assert.Equal(t, testNow.Add(time.Minute), tk.UpdatedAt)
	assert.Equal(t, testNow.Add(time.Minute), *tk.LastMessageAt)

	tk.SetUnreadCount(-5)
	assert.Equal(t, 0, tk.UnreadCount)
}

func TestAppeal_DecideAppendsHistory(t *testing.T) {
	a := &Appeal{Status: vo.AppealStatusNew}

	a.Decide(vo.AppealStatusPending, "need info", "mod-1", testNow)
	a.Decide(vo.AppealStatusApproved, "fair", "mod-2", testNow.Add(time.Hour))

	assert.Equal(t, vo.AppealStatusApproved, a.Status)
	assert.Equal(t, "mod-2", a.DecidedBy)
	history, ok := a.Meta["history"].([]any)
	assert.True(t, ok)
	assert.Len(t, history, 2)
}

func TestAIRule_Evaluate(t *testing.T) {
	r := &AIRule{Thresholds: map[string]float64{"spam": 0.85, "nsfw": 0.5, "toxicity": 0.7}}

	assert.Equal(t, []string{"nsfw", "spam"}, r.Evaluate(map[string]float64{"spam": 0.85, "nsfw": 0.9, "toxicity": 0.1}))
	assert.Empty(t, r.Evaluate(map[string]float64{"spam": 0.5}))
	assert.Empty(t, r.Evaluate(nil))
}

func TestAIRule_RecordChangeAppends(t *testing.T) {
	r := &AIRule{}
	r.RecordChange("mod-1", testNow, map[string]any{"enabled": true})
	r.RecordChange("mod-2", testNow.Add(time.Hour), map[string]any{"enabled": false})

	assert.Len(t, r.History, 2)
	assert.Equal(t, "mod-1", r.History[0].UpdatedBy)
	assert.Equal(t, "mod-2", r.UpdatedBy)
	assert.Equal(t, testNow.Add(time.Hour), r.UpdatedAt)
}

func TestUser_HasRoleIgnoresCase(t *testing.T) {
	u := &User{Roles: []string{"Moderator", "support"}}
	assert.True(t, u.HasRole("moderator"))
	assert.True(t, u.HasRole(" SUPPORT "))
	assert.False(t, u.HasRole("admin"))
}

func TestSortRoles(t *testing.T) {
	assert.Equal(t, []string{"Admin", "beta"}, SortRoles([]string{" beta", "Admin", "admin", ""}))
	assert.Equal(t, []string{}, SortRoles(nil))
}

func TestApplyRoleChanges(t *testing.T) {
	tests := []struct {
		name    string
		current []string
		add     []string
		remove  []string
		want    []string
	}{
		{name: "keeps stored spelling", current: []string{"beta", "Admin"}, add: []string{"admin"}, want: []string{"Admin", "beta"}},
		{name: "removal ignores case", current: []string{"x"}, remove: []string{"X"}, want: []string{}},
		{name: "removal beats addition", current: []string{"mod"}, add: []string{"vip"}, remove: []string{"VIP"}, want: []string{"mod"}},
		{name: "blank additions dropped", add: []string{" ", "trusted"}, want: []string{"trusted"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyRoleChanges(tt.current, tt.add, tt.remove))
		})
	}
}

func TestMetaHelpers(t *testing.T) {
	meta := map[string]any{"ids": []string{"a"}}
	AppendMeta(meta, "ids", "b")
	assert.Equal(t, []string{"a", "b"}, MetaStrings(meta, "ids"))

	orig := map[string]any{"nested": map[string]any{"k": "v"}, "list": []any{"x"}}
	clone := CloneMap(orig)
	clone["nested"].(map[string]any)["k"] = "changed"
	assert.Equal(t, "v", orig["nested"].(map[string]any)["k"])

	merged := MergeMeta(nil, map[string]any{"a": "1"})
	assert.Equal(t, "1", merged["a"])
}

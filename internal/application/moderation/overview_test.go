package moderation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
)

func TestGetOverview_SeededData(t *testing.T) {
	env := newSeededEnv(t)

	out, err := env.svc.GetOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, out.Reports.New)
	assert.Equal(t, map[string]int{"spam": 1, "abuse": 1}, out.Reports.ByCategory)
	assert.Equal(t, map[string]int{"user": 2, "ai": 1}, out.ComplaintSource)
	assert.Equal(t, 1, out.Queues.OpenTickets)
	assert.Equal(t, 0, out.Queues.WaitingTickets)
	assert.Equal(t, 1, out.Queues.OpenAppeals)
	assert.Equal(t, map[string]int{"node": 1, "comment": 1, "media": 1}, out.PendingContent)

	require.NotNil(t, out.Analytics.MeanResolutionHours)
	assert.InDelta(t, 24.0, *out.Analytics.MeanResolutionHours, 1e-9)
	assert.Equal(t, 0, out.Analytics.TotalDecisions)
	assert.Zero(t, out.Analytics.AIDecisionShare)

	require.Len(t, out.RecentSanctions, 1)
	assert.Equal(t, "u-103", out.RecentSanctions[0].UserID)
	require.Len(t, out.FlaggedUsers, 1)
	assert.Equal(t, dto.FlaggedUserCard{
		UserID:          "u-103",
		Username:        "dave",
		Status:          "active",
		ActiveSanctions: []string{"warning"},
	}, out.FlaggedUsers[0])
}

func TestGetOverview_Empty(t *testing.T) {
	env := newTestEnv(t, nil)

	out, err := env.svc.GetOverview(context.Background())
	require.NoError(t, err)
	assert.Nil(t, out.Analytics.MeanResolutionHours)
	assert.Empty(t, out.RecentSanctions)
	assert.NotNil(t, out.RecentSanctions)
	assert.Empty(t, out.FlaggedUsers)
	assert.NotNil(t, out.FlaggedUsers)
}

func TestGetOverview_Limits(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	var last *dto.SanctionDTO
	for i := 0; i < 6; i++ {
		userID := fmt.Sprintf("u-%d", i)
		mustStub(t, env.svc, userID)
		env.clock.Advance(time.Minute)
		sn, err := env.svc.IssueSanction(ctx, userID, issueReq("mute"), "mod-1", "")
		require.NoError(t, err)
		last = sn
	}

	out, err := env.svc.GetOverview(ctx)
	require.NoError(t, err)
	require.Len(t, out.RecentSanctions, 5)
	assert.Equal(t, last.ID, out.RecentSanctions[0].ID)
	require.Len(t, out.FlaggedUsers, 3)
	assert.Equal(t, []string{"u-0", "u-1", "u-2"}, []string{
		out.FlaggedUsers[0].UserID,
		out.FlaggedUsers[1].UserID,
		out.FlaggedUsers[2].UserID,
	})
}

func TestGetOverview_ExpiresLapsedSanctions(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	mustStub(t, env.svc, "u-1")
	mustStub(t, env.svc, "u-2")

	short, err := env.svc.IssueSanction(ctx, "u-1", dto.IssueSanctionRequest{Type: "ban", DurationHours: floatPtr(1)}, "mod-1", "")
	require.NoError(t, err)
	_, err = env.svc.IssueSanction(ctx, "u-2", issueReq("mute"), "mod-1", "")
	require.NoError(t, err)
	saves := env.snapshots.SaveCount()

	env.clock.Advance(2 * time.Hour)
	out, err := env.svc.GetOverview(ctx)
	require.NoError(t, err)

	require.Len(t, out.FlaggedUsers, 1)
	assert.Equal(t, "u-2", out.FlaggedUsers[0].UserID)
	for _, sn := range out.RecentSanctions {
		if sn.ID == short.ID {
			assert.Equal(t, "expired", sn.Status)
		}
	}
	assert.Equal(t, saves+1, env.snapshots.SaveCount())

	user, err := env.svc.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "active", user.Status)
}

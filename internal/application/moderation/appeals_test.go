package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	apperrors "github.com/orris-inc/moderation/internal/shared/errors"
)

func seededAppeal(t *testing.T, env *testEnv) dto.AppealDTO {
	t.Helper()
	page, err := env.svc.ListAppeals(context.Background(), dto.AppealFilter{UserID: "u-103"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	return page.Items[0]
}

func TestDecideAppeal_ApproveCancelsSanction(t *testing.T) {
	env := newSeededEnv(t)
	ctx := context.Background()
	appeal := seededAppeal(t, env)
	env.clock.Advance(time.Hour)

	out, err := env.svc.DecideAppeal(ctx, appeal.ID, dto.DecideAppealRequest{Reason: "context checked"}, "u-100")
	require.NoError(t, err)
	assert.Equal(t, "approved", out.Status)
	assert.Equal(t, "u-100", out.DecidedBy)
	assert.Equal(t, "context checked", out.DecisionReason)
	require.NotNil(t, out.DecidedAt)

	user, err := env.svc.GetUser(ctx, "u-103")
	require.NoError(t, err)
	var warning *dto.SanctionDTO
	for i := range user.Sanctions {
		if user.Sanctions[i].ID == appeal.TargetID {
			warning = &user.Sanctions[i]
		}
	}
	require.NotNil(t, warning)
	assert.Equal(t, "canceled", warning.Status)
	assert.Equal(t, "u-100", warning.RevokedBy)
	require.NotNil(t, warning.RevokedAt)
	assert.Equal(t, *out.DecidedAt, *warning.RevokedAt)
	assert.Contains(t, warning.Meta["appeal_ids"], appeal.ID)
	assert.Equal(t, []string{domain.EventAppealDecided}, env.events.Types())
}

func TestDecideAppeal_ApprovedBanRestoresUser(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	mustStub(t, env.svc, "u-1")
	ban, err := env.svc.IssueSanction(ctx, "u-1", issueReq("ban"), "mod-1", "")
	require.NoError(t, err)

	appeal, err := env.svc.CreateAppeal(ctx, dto.CreateAppealRequest{TargetID: ban.ID, Text: "please"}, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", appeal.UserID)
	assert.Equal(t, "new", appeal.Status)
	assert.Equal(t, "u-1", appeal.Meta["submitted_by"])

	_, err = env.svc.DecideAppeal(ctx, appeal.ID, dto.DecideAppealRequest{Result: "approved"}, "mod-2")
	require.NoError(t, err)

	user, err := env.svc.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "active", user.Status)
}

func TestDecideAppeal_Results(t *testing.T) {
	tests := []struct {
		name         string
		result       string
		wantStatus   string
		wantSanction string
		wantErr      bool
	}{
		{name: "rejected keeps sanction", result: "rejected", wantStatus: "rejected", wantSanction: "active"},
		{name: "pending keeps sanction", result: "Pending", wantStatus: "pending", wantSanction: "active"},
		{name: "unknown result", result: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newSeededEnv(t)
			ctx := context.Background()
			appeal := seededAppeal(t, env)

			out, err := env.svc.DecideAppeal(ctx, appeal.ID, dto.DecideAppealRequest{Result: tt.result}, "u-100")
			if tt.wantErr {
				assert.True(t, apperrors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, out.Status)

			user, err := env.svc.GetUser(ctx, "u-103")
			require.NoError(t, err)
			for _, sn := range user.Sanctions {
				if sn.ID == appeal.TargetID {
					assert.Equal(t, tt.wantSanction, sn.Status)
				}
			}
		})
	}
}

func TestDecideAppeal_Repository(t *testing.T) {
	var recorded domain.AppealDecision
	repo := &mockAppealRepository{
		RecordDecisionFunc: func(_ context.Context, decision domain.AppealDecision) (*domain.AppealRow, error) {
			recorded = decision
			return &domain.AppealRow{ID: decision.AppealID, Meta: map[string]any{"stored": true}}, nil
		},
		FetchManyFunc: func(context.Context, []string) (map[string]*domain.AppealRow, error) {
			return nil, errors.New("timeout")
		},
	}
	env := newSeededEnv(t, WithAppealRepository(repo))
	ctx := context.Background()
	appeal := seededAppeal(t, env)

	out, err := env.svc.DecideAppeal(ctx, appeal.ID, dto.DecideAppealRequest{Result: "rejected", Reason: "no"}, "u-100")
	require.NoError(t, err)
	assert.Equal(t, true, out.Meta["stored"])
	assert.Equal(t, "rejected", recorded.Status)
	assert.Equal(t, "u-100", recorded.DecidedBy)
	assert.Equal(t, "no", recorded.DecisionReason)
	assert.Equal(t, []string{"appeals.fetch_many"}, env.metrics.fallbacks)
}

func TestGetAppeal_RepositoryOverlay(t *testing.T) {
	repo := &mockAppealRepository{
		FetchAppealFunc: func(_ context.Context, appealID string) (*domain.AppealRow, error) {
			return &domain.AppealRow{ID: appealID, Status: strPtr("pending"), DecidedBy: strPtr("u-101")}, nil
		},
	}
	env := newSeededEnv(t, WithAppealRepository(repo))
	appeal := seededAppeal(t, env)

	out, err := env.svc.GetAppeal(context.Background(), appeal.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, "u-101", out.DecidedBy)
	assert.Equal(t, appeal.Text, out.Text)

	_, err = env.svc.GetAppeal(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestCreateAppeal_Errors(t *testing.T) {
	env := newSeededEnv(t)
	ctx := context.Background()
	appeal := seededAppeal(t, env)

	tests := []struct {
		name         string
		req          dto.CreateAppealRequest
		wantNotFound bool
	}{
		{name: "unknown sanction", req: dto.CreateAppealRequest{TargetID: "missing", Text: "x"}, wantNotFound: true},
		{name: "sanction of another user", req: dto.CreateAppealRequest{TargetID: appeal.TargetID, UserID: "u-104", Text: "x"}, wantNotFound: true},
		{name: "unsupported target", req: dto.CreateAppealRequest{TargetType: "report", TargetID: appeal.TargetID, Text: "x"}},
		{name: "empty text", req: dto.CreateAppealRequest{TargetID: appeal.TargetID, Text: " "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.CreateAppeal(ctx, tt.req, "u-103")
			require.Error(t, err)
			if tt.wantNotFound {
				assert.True(t, apperrors.IsNotFoundError(err))
			} else {
				assert.True(t, apperrors.IsValidationError(err))
			}
		})
	}
}

func TestListAppeals_Filters(t *testing.T) {
	env := newSeededEnv(t)
	ctx := context.Background()

	open, err := env.svc.ListAppeals(ctx, dto.AppealFilter{Status: "new"})
	require.NoError(t, err)
	assert.Len(t, open.Items, 1)

	approved, err := env.svc.ListAppeals(ctx, dto.AppealFilter{Status: "approved"})
	require.NoError(t, err)
	assert.Empty(t, approved.Items)

	_, err = env.svc.ListAppeals(ctx, dto.AppealFilter{Status: "lost"})
	assert.True(t, apperrors.IsValidationError(err))
}

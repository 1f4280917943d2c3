package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	apperrors "github.com/orris-inc/moderation/internal/shared/errors"
)

func TestTestRule_SpamThreshold(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	rule, err := env.svc.CreateRule(ctx, dto.CreateRuleRequest{
		Category:   "spam",
		Thresholds: map[string]float64{"spam": 0.85},
	}, "u-100")
	require.NoError(t, err)
	assert.True(t, rule.Enabled)
	require.Len(t, rule.History, 1)

	tests := []struct {
		name       string
		scores     map[string]any
		wantResult string
		wantLabels []string
	}{
		{name: "above threshold", scores: map[string]any{"spam": 0.9}, wantResult: DecisionFlag, wantLabels: []string{"spam"}},
		{name: "equal to threshold", scores: map[string]any{"spam": 0.85}, wantResult: DecisionFlag, wantLabels: []string{"spam"}},
		{name: "below threshold", scores: map[string]any{"spam": 0.5}, wantResult: DecisionPass, wantLabels: []string{}},
		{name: "string score", scores: map[string]any{"spam": "0.95"}, wantResult: DecisionFlag, wantLabels: []string{"spam"}},
		{name: "non-numeric score ignored", scores: map[string]any{"spam": "high"}, wantResult: DecisionPass, wantLabels: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := env.svc.TestRule(ctx, dto.TestRuleRequest{RuleID: rule.ID, Scores: tt.scores})
			require.NoError(t, err)
			assert.Equal(t, tt.wantResult, out.Decision)
			assert.Equal(t, tt.wantLabels, out.Labels)
			assert.Equal(t, rule.ID, out.RuleID)
			assert.Equal(t, "spam", out.Category)
		})
	}
}

func TestTestRule_RuleSelection(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	empty, err := env.svc.TestRule(ctx, dto.TestRuleRequest{Scores: map[string]any{"spam": 1.0}})
	require.NoError(t, err)
	assert.Equal(t, DecisionPass, empty.Decision)
	assert.Empty(t, empty.RuleID)

	_, err = env.svc.CreateRule(ctx, dto.CreateRuleRequest{Category: "spam", Thresholds: map[string]float64{"spam": 0.85}}, "u-100")
	require.NoError(t, err)
	env.clock.Advance(time.Minute)
	latest, err := env.svc.CreateRule(ctx, dto.CreateRuleRequest{Category: "toxicity", Thresholds: map[string]float64{"toxicity": 0.6}}, "u-100")
	require.NoError(t, err)

	out, err := env.svc.TestRule(ctx, dto.TestRuleRequest{Scores: map[string]any{"toxicity": 0.7, "spam": 0.99}})
	require.NoError(t, err)
	assert.Equal(t, latest.ID, out.RuleID)
	assert.Equal(t, []string{"toxicity"}, out.Labels)

	_, err = env.svc.TestRule(ctx, dto.TestRuleRequest{RuleID: "missing"})
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestCreateRule_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateRuleRequest
	}{
		{name: "missing category", req: dto.CreateRuleRequest{Thresholds: map[string]float64{"spam": 0.5}}},
		{name: "threshold above one", req: dto.CreateRuleRequest{Category: "spam", Thresholds: map[string]float64{"spam": 1.5}}},
		{name: "negative threshold", req: dto.CreateRuleRequest{Category: "spam", Thresholds: map[string]float64{"spam": -0.1}}},
		{name: "blank label", req: dto.CreateRuleRequest{Category: "spam", Thresholds: map[string]float64{" ": 0.5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			_, err := env.svc.CreateRule(context.Background(), tt.req, "u-100")
			assert.True(t, apperrors.IsValidationError(err))
		})
	}
}

func TestUpdateRule_RecordsHistory(t *testing.T) {
	env := newSeededEnv(t)
	ctx := context.Background()

	rules, err := env.svc.ListRules(ctx, dto.RuleFilter{Category: "SPAM"})
	require.NoError(t, err)
	require.Len(t, rules.Items, 1)
	rule := rules.Items[0]

	env.clock.Advance(time.Minute)
	updated, err := env.svc.UpdateRule(ctx, rule.ID, dto.UpdateRuleRequest{
		Thresholds: map[string]float64{"spam": 0.9},
		Enabled:    boolPtr(false),
	}, "u-101")
	require.NoError(t, err)
	assert.False(t, updated.Enabled)
	assert.Equal(t, "u-101", updated.UpdatedBy)
	assert.Equal(t, testNow.Add(time.Minute), updated.UpdatedAt)
	require.Len(t, updated.History, 2)
	change := updated.History[1]
	assert.Equal(t, "u-101", change.UpdatedBy)
	assert.Equal(t, map[string]any{"spam": 0.9}, change.Changes["thresholds"])
	assert.Equal(t, false, change.Changes["enabled"])
	assert.NotContains(t, change.Changes, "category")

	history, err := env.svc.RulesHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, rule.ID, history[0].RuleID)
	assert.Equal(t, "u-101", history[0].UpdatedBy)

	disabled, err := env.svc.ListRules(ctx, dto.RuleFilter{Enabled: boolPtr(false)})
	require.NoError(t, err)
	assert.Len(t, disabled.Items, 1)

	_, err = env.svc.UpdateRule(ctx, "missing", dto.UpdateRuleRequest{}, "u-101")
	assert.True(t, apperrors.IsNotFoundError(err))
	_, err = env.svc.UpdateRule(ctx, rule.ID, dto.UpdateRuleRequest{Thresholds: map[string]float64{"spam": 2}}, "u-101")
	assert.True(t, apperrors.IsValidationError(err))
}

func TestDeleteRule(t *testing.T) {
	env := newSeededEnv(t)
	ctx := context.Background()
	rules, err := env.svc.ListRules(ctx, dto.RuleFilter{})
	require.NoError(t, err)
	require.Len(t, rules.Items, 1)

	require.NoError(t, env.svc.DeleteRule(ctx, rules.Items[0].ID))

	_, err = env.svc.GetRule(ctx, rules.Items[0].ID)
	assert.True(t, apperrors.IsNotFoundError(err))
	assert.True(t, apperrors.IsNotFoundError(env.svc.DeleteRule(ctx, rules.Items[0].ID)))
}

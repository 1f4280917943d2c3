package moderation

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/shared/errors"
	"github.com/orris-inc/moderation/internal/shared/utils/jsonutil"
)

const (
	DecisionFlag = "flag"
	DecisionPass = "pass"
)

func validateThresholds(thresholds map[string]float64) error {
	for label, v := range thresholds {
		if strings.TrimSpace(label) == "" {
			return errors.NewValidationError("threshold label must not be empty")
		}
		if v < 0 || v > 1 {
			return errors.NewValidationError("threshold must be between 0 and 1", label)
		}
	}
	return nil
}

// thresholdChanges renders thresholds with JSON-native values so the change
// log survives a snapshot round trip.
func thresholdChanges(thresholds map[string]float64) map[string]any {
	out := make(map[string]any, len(thresholds))
	for k, v := range thresholds {
		out[k] = v
	}
	return out
}

func sortedRules(st *domain.Store) []*domain.AIRule {
	rules := make([]*domain.AIRule, 0, len(st.AIRules))
	for _, r := range st.AIRules {
		rules = append(rules, r)
	}
	sortNewestFirst(rules,
		func(r *domain.AIRule) time.Time { return r.UpdatedAt },
		func(r *domain.AIRule) string { return r.ID },
	)
	return rules
}

// ListRules lists rules, most recently updated first.
func (s *Service) ListRules(ctx context.Context, filter dto.RuleFilter) (*dto.Page[dto.AIRuleDTO], error) {
	return query(ctx, s, "list_rules", func(t *tx) (*dto.Page[dto.AIRuleDTO], error) {
		rules := make([]*domain.AIRule, 0, len(t.store.AIRules))
		for _, r := range sortedRules(t.store) {
			if filter.Category != "" && !strings.EqualFold(r.Category, filter.Category) {
				continue
			}
			if filter.Enabled != nil && r.Enabled != *filter.Enabled {
				continue
			}
			rules = append(rules, r)
		}
		window, err := paginate(s, rules, filter.Limit, filter.Cursor)
		if err != nil {
			return nil, err
		}
		out := make([]dto.AIRuleDTO, len(window.Items))
		for i, r := range window.Items {
			out[i] = dto.ToAIRuleDTO(r)
		}
		return &dto.Page[dto.AIRuleDTO]{Items: out, NextCursor: window.NextCursor, Total: window.Total}, nil
	})
}

func (s *Service) CreateRule(ctx context.Context, req dto.CreateRuleRequest, actorID string) (*dto.AIRuleDTO, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, domain.ErrRequired("category")
	}
	if err := validateThresholds(req.Thresholds); err != nil {
		return nil, err
	}
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	return mutate(ctx, s, "create_rule", func(t *tx) (*dto.AIRuleDTO, error) {
		thresholds := make(map[string]float64, len(req.Thresholds))
		for k, v := range req.Thresholds {
			thresholds[k] = v
		}
		r := t.store.AddRule(&domain.AIRule{
			Category:    category,
			Thresholds:  thresholds,
			Actions:     domain.MergeMeta(nil, req.Actions),
			Enabled:     enabled,
			UpdatedBy:   actorID,
			UpdatedAt:   t.now,
			Description: strings.TrimSpace(req.Description),
		})
		r.RecordChange(actorID, t.now, map[string]any{
			"created":    true,
			"category":   category,
			"thresholds": thresholdChanges(thresholds),
			"actions":    domain.CloneMap(r.Actions),
			"enabled":    enabled,
		})
		out := dto.ToAIRuleDTO(r)
		return &out, nil
	})
}

func (s *Service) GetRule(ctx context.Context, ruleID string) (*dto.AIRuleDTO, error) {
	return query(ctx, s, "get_rule", func(t *tx) (*dto.AIRuleDTO, error) {
		r, ok := t.store.AIRules[ruleID]
		if !ok {
			return nil, domain.ErrRuleNotFound(ruleID)
		}
		out := dto.ToAIRuleDTO(r)
		return &out, nil
	})
}

// UpdateRule applies the provided fields and appends a change entry that
// lists only what was provided.
func (s *Service) UpdateRule(ctx context.Context, ruleID string, req dto.UpdateRuleRequest, actorID string) (*dto.AIRuleDTO, error) {
	if req.Category != nil && strings.TrimSpace(*req.Category) == "" {
		return nil, domain.ErrRequired("category")
	}
	if err := validateThresholds(req.Thresholds); err != nil {
		return nil, err
	}

	return mutate(ctx, s, "update_rule", func(t *tx) (*dto.AIRuleDTO, error) {
		r, ok := t.store.AIRules[ruleID]
		if !ok {
			return nil, domain.ErrRuleNotFound(ruleID)
		}
		changes := map[string]any{}
		if req.Category != nil {
			r.Category = strings.TrimSpace(*req.Category)
			changes["category"] = r.Category
		}
		if req.Thresholds != nil {
			r.Thresholds = make(map[string]float64, len(req.Thresholds))
			for k, v := range req.Thresholds {
				r.Thresholds[k] = v
			}
			changes["thresholds"] = thresholdChanges(r.Thresholds)
		}
		if req.Actions != nil {
			r.Actions = domain.MergeMeta(nil, req.Actions)
			changes["actions"] = domain.CloneMap(r.Actions)
		}
		if req.Enabled != nil {
			r.Enabled = *req.Enabled
			changes["enabled"] = r.Enabled
		}
		if req.Description != nil {
			r.Description = strings.TrimSpace(*req.Description)
			changes["description"] = r.Description
		}
		r.UpdatedBy = actorID
		r.UpdatedAt = t.now
		r.RecordChange(actorID, t.now, changes)
		out := dto.ToAIRuleDTO(r)
		return &out, nil
	})
}

func (s *Service) DeleteRule(ctx context.Context, ruleID string) error {
	_, err := mutate(ctx, s, "delete_rule", func(t *tx) (struct{}, error) {
		if !t.store.DeleteRule(ruleID) {
			return struct{}{}, domain.ErrRuleNotFound(ruleID)
		}
		return struct{}{}, nil
	})
	return err
}

// TestRule evaluates classifier scores against a rule. Without a rule id
// the most recently updated rule is used; with no rules at all the result
// is a pass with no labels.
func (s *Service) TestRule(ctx context.Context, req dto.TestRuleRequest) (*dto.TestRuleResult, error) {
	scores := jsonutil.FloatMap(req.Scores)

	return query(ctx, s, "test_rule", func(t *tx) (*dto.TestRuleResult, error) {
		var rule *domain.AIRule
		if req.RuleID != "" {
			r, ok := t.store.AIRules[req.RuleID]
			if !ok {
				return nil, domain.ErrRuleNotFound(req.RuleID)
			}
			rule = r
		} else if rules := sortedRules(t.store); len(rules) > 0 {
			rule = rules[0]
		}

		result := &dto.TestRuleResult{
			Decision: DecisionPass,
			Labels:   []string{},
			Scores:   scores,
		}
		if rule == nil {
			return result, nil
		}
		result.RuleID = rule.ID
		result.Category = rule.Category
		result.Labels = rule.Evaluate(scores)
		if len(result.Labels) > 0 {
			result.Decision = DecisionFlag
		}
		return result, nil
	})
}

// RulesHistory flattens the change log of every rule, newest first.
func (s *Service) RulesHistory(ctx context.Context) ([]dto.RuleHistoryEntryDTO, error) {
	return query(ctx, s, "rules_history", func(t *tx) ([]dto.RuleHistoryEntryDTO, error) {
		entries := []dto.RuleHistoryEntryDTO{}
		for _, r := range t.store.AIRules {
			for _, change := range r.History {
				entries = append(entries, dto.RuleHistoryEntryDTO{
					RuleID:        r.ID,
					Category:      r.Category,
					RuleChangeDTO: dto.ToRuleChangeDTO(change),
				})
			}
		}
		sort.SliceStable(entries, func(i, j int) bool {
			if !entries[i].UpdatedAt.Equal(entries[j].UpdatedAt) {
				return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
			}
			return entries[i].RuleID < entries[j].RuleID
		})
		return entries, nil
	})
}

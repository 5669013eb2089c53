/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package service

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	clientModel "github.com/studiohub/normative-matching-service/internal/clients/model"
	"github.com/studiohub/normative-matching-service/internal/matching/engine"
	"github.com/studiohub/normative-matching-service/internal/matching/model"
	ruleModel "github.com/studiohub/normative-matching-service/internal/matching_rules/model"
	"github.com/studiohub/normative-matching-service/internal/system/constants"
	errors2 "github.com/studiohub/normative-matching-service/internal/system/errors"
	"github.com/studiohub/normative-matching-service/internal/system/log"
	"github.com/studiohub/normative-matching-service/internal/system/metrics"
)

// RuleStore is the read side of the matching rule store.
type RuleStore interface {
	GetRuleById(ctx context.Context, ruleId string) (*ruleModel.MatchingRule, error)
	ListActiveRules(ctx context.Context) ([]ruleModel.MatchingRule, error)
}

// ClientStore is the read side of the tenant client store.
type ClientStore interface {
	engine.ProfileLister
	engine.EmbeddingLister
	GetClientWithProfile(ctx context.Context, tenantId, clientId string) (*clientModel.ClientWithProfile, error)
}

// MatchSink receives non-empty match results for downstream delivery. Submit must not block and
// reports whether the batch was accepted.
type MatchSink interface {
	Submit(batch model.RuleMatchBatch) bool
}

// MatchingServiceInterface is the matching orchestrator.
type MatchingServiceInterface interface {
	MatchRule(ctx context.Context, ruleId, tenantId string) ([]model.MatchResult, error)
	MatchRuleAndNotify(ctx context.Context, ruleId, tenantId string) ([]model.MatchResult, error)
	MatchClientToRules(ctx context.Context, clientId, tenantId string) ([]model.RuleMatch, error)
	MatchAllRules(ctx context.Context, tenantId string) (model.BatchReport, error)
}

// Options tunes a MatchingService. Zero values fall back to defaults.
type Options struct {
	ConditionMode     string
	SemanticThreshold float64
	Location          *time.Location
	Now               func() time.Time
	Sink              MatchSink
}

// MatchingService validates rule state, runs the structured pass and falls back to the semantic pass
// when nothing matched. It holds no per-call state.
type MatchingService struct {
	rules      RuleStore
	clients    ClientStore
	evaluator  *engine.Evaluator
	structured *engine.StructuredMatcher
	semantic   *engine.SemanticMatcher
	sink       MatchSink
	location   *time.Location
	now        func() time.Time
}

func NewMatchingService(rules RuleStore, clients ClientStore, similarity engine.SimilarityBackend,
	opts Options) *MatchingService {

	evaluator := engine.NewEvaluator(opts.ConditionMode)
	location := opts.Location
	if location == nil {
		location = time.UTC
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &MatchingService{
		rules:      rules,
		clients:    clients,
		evaluator:  evaluator,
		structured: engine.NewStructuredMatcher(clients, evaluator),
		semantic:   engine.NewSemanticMatcher(clients, similarity, opts.SemanticThreshold),
		sink:       opts.Sink,
		location:   location,
		now:        now,
	}
}

func (s *MatchingService) today() time.Time {
	return s.now().In(s.location)
}

// MatchRule returns the clients of the tenant the rule applies to, best first. Rules outside their
// validity window yield an empty result without reading clients.
func (s *MatchingService) MatchRule(ctx context.Context, ruleId, tenantId string) ([]model.MatchResult, error) {
	_, results, err := s.matchRule(ctx, ruleId, tenantId)
	return results, err
}

// MatchRuleAndNotify is MatchRule followed by a hand-off of non-empty results to downstream delivery.
func (s *MatchingService) MatchRuleAndNotify(ctx context.Context, ruleId, tenantId string) ([]model.MatchResult, error) {
	rule, results, err := s.matchRule(ctx, ruleId, tenantId)
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		s.deliver(rule, tenantId, results)
	}
	return results, nil
}

func (s *MatchingService) matchRule(ctx context.Context, ruleId, tenantId string) (*ruleModel.MatchingRule,
	[]model.MatchResult, error) {

	logger := log.GetLogger().WithContext(ctx)
	rule, err := s.rules.GetRuleById(ctx, ruleId)
	if err != nil {
		return nil, nil, err
	}
	if rule == nil {
		return nil, nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.MATCHING_RULE_NOT_FOUND.Code,
			Message:     errors2.MATCHING_RULE_NOT_FOUND.Message,
			Description: fmt.Sprintf("Matching rule %s does not exist", ruleId),
		}, http.StatusNotFound)
	}
	if !rule.IsActive {
		return rule, nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.MATCHING_RULE_INACTIVE.Code,
			Message:     errors2.MATCHING_RULE_INACTIVE.Message,
			Description: fmt.Sprintf("Matching rule %s is not active", ruleId),
		}, http.StatusConflict)
	}

	today := s.today()
	if rule.NotYetValid(today) || rule.Expired(today) {
		logger.Debug(fmt.Sprintf("Matching rule: %s is outside its validity window", ruleId))
		return rule, []model.MatchResult{}, nil
	}

	results, err := s.matchValidRule(ctx, rule, tenantId)
	return rule, results, err
}

func (s *MatchingService) matchValidRule(ctx context.Context, rule *ruleModel.MatchingRule,
	tenantId string) ([]model.MatchResult, error) {

	start := time.Now()
	results, err := s.structured.MatchRule(ctx, rule, tenantId)
	if err != nil {
		return nil, err
	}
	method := constants.MethodStructured
	if len(results) == 0 {
		method = constants.MethodSemantic
		results, err = s.semantic.MatchSemantic(ctx, rule, tenantId)
		if err != nil {
			return nil, err
		}
	}

	elapsed := time.Since(start)
	metrics.RuleMatchDuration.WithLabelValues(method).Observe(elapsed.Seconds())
	metrics.RuleMatchesTotal.WithLabelValues(method).Add(float64(len(results)))
	log.GetLogger().WithContext(ctx).Debug(fmt.Sprintf("Evaluated matching rule: %s", rule.RuleId),
		log.String("method", method), log.Int("matches", len(results)), log.Duration("elapsed", elapsed))
	return results, nil
}

// MatchClientToRules returns the active, currently valid rules that apply to the client, best first.
// Only the structured evaluation is used.
func (s *MatchingService) MatchClientToRules(ctx context.Context, clientId, tenantId string) ([]model.RuleMatch, error) {

	entry, err := s.clients.GetClientWithProfile(ctx, tenantId, clientId)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.CLIENT_NOT_FOUND.Code,
			Message:     errors2.CLIENT_NOT_FOUND.Message,
			Description: fmt.Sprintf("Client %s does not exist in tenant %s", clientId, tenantId),
		}, http.StatusNotFound)
	}

	rules, err := s.rules.ListActiveRules(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	matches := make([]model.RuleMatch, 0)
	for i := range rules {
		rule := &rules[i]
		if !rule.IsActive || !rule.ValidOn(today) {
			continue
		}
		score := s.evaluator.Evaluate(rule.Conditions, &entry.Client, entry.Profile)
		if score > 0 {
			matches = append(matches, model.RuleMatch{
				RuleId:   rule.RuleId,
				RuleName: rule.Name,
				Score:    score,
				Method:   constants.MethodStructured,
			})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches, nil
}

// MatchAllRules evaluates every active rule for the tenant. A failing rule is logged and counted; the
// remaining rules are still evaluated. Non-empty results are handed to the sink.
func (s *MatchingService) MatchAllRules(ctx context.Context, tenantId string) (model.BatchReport, error) {

	logger := log.GetLogger().WithContext(ctx)
	report := model.BatchReport{TenantId: tenantId}

	rules, err := s.rules.ListActiveRules(ctx)
	if err != nil {
		return report, err
	}

	today := s.today()
	for i := range rules {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		rule := &rules[i]
		if !rule.IsActive || !rule.ValidOn(today) {
			report.Skipped++
			continue
		}

		results, err := s.matchValidRule(ctx, rule, tenantId)
		report.Evaluated++
		if err != nil {
			report.Failed++
			report.FailedIds = append(report.FailedIds, rule.RuleId)
			metrics.RuleEvaluationFailures.Inc()
			logger.Warn(fmt.Sprintf("Skipping matching rule: %s after evaluation failure", rule.RuleId),
				log.String("tenant", tenantId), log.Error(err))
			continue
		}
		if len(results) > 0 {
			report.Matched++
			s.deliver(rule, tenantId, results)
		}
	}

	logger.Info(fmt.Sprintf("Batch matching finished for tenant: %s", tenantId),
		log.Int("evaluated", report.Evaluated), log.Int("matched", report.Matched),
		log.Int("skipped", report.Skipped), log.Int("failed", report.Failed),
		log.Strings("failed_rules", report.FailedIds))
	return report, nil
}

// deliver hands results to the sink without blocking and reports whether they were accepted.
func (s *MatchingService) deliver(rule *ruleModel.MatchingRule, tenantId string, results []model.MatchResult) bool {
	if s.sink == nil || len(results) == 0 {
		return false
	}
	return s.sink.Submit(model.RuleMatchBatch{
		TenantId: tenantId,
		RuleId:   rule.RuleId,
		RuleName: rule.Name,
		RuleType: rule.RuleType,
		Results:  results,
	})
}

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
	"strings"

	"github.com/studiohub/normative-matching-service/internal/matching_rules/model"
	"github.com/studiohub/normative-matching-service/internal/system/constants"
	errors2 "github.com/studiohub/normative-matching-service/internal/system/errors"
)

// RuleReader is the read side of the matching rule store.
type RuleReader interface {
	GetRuleById(ctx context.Context, ruleId string) (*model.MatchingRule, error)
	ListRules(ctx context.Context) ([]model.MatchingRule, error)
}

// MatchingRuleServiceInterface exposes matching rules read-only.
type MatchingRuleServiceInterface interface {
	GetMatchingRules(ctx context.Context, ruleType string) ([]model.MatchingRule, error)
	GetMatchingRule(ctx context.Context, ruleId string) (*model.MatchingRule, error)
}

// MatchingRuleService is the default implementation of the MatchingRuleServiceInterface.
type MatchingRuleService struct {
	store RuleReader
}

func NewMatchingRuleService(store RuleReader) MatchingRuleServiceInterface {
	return &MatchingRuleService{store: store}
}

// GetMatchingRules lists the rules, optionally restricted to one rule type.
func (s *MatchingRuleService) GetMatchingRules(ctx context.Context, ruleType string) ([]model.MatchingRule, error) {

	ruleType = strings.ToUpper(strings.TrimSpace(ruleType))
	if ruleType != "" && !constants.AllowedRuleTypes[ruleType] {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: fmt.Sprintf("Unsupported rule type '%s'.", ruleType),
		}, http.StatusBadRequest)
	}

	rules, err := s.store.ListRules(ctx)
	if err != nil {
		return nil, err
	}
	if ruleType == "" {
		return rules, nil
	}
	filtered := make([]model.MatchingRule, 0, len(rules))
	for _, rule := range rules {
		if rule.RuleType == ruleType {
			filtered = append(filtered, rule)
		}
	}
	return filtered, nil
}

// GetMatchingRule fetches one rule or returns a not found client error.
func (s *MatchingRuleService) GetMatchingRule(ctx context.Context, ruleId string) (*model.MatchingRule, error) {

	rule, err := s.store.GetRuleById(ctx, ruleId)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.MATCHING_RULE_NOT_FOUND.Code,
			Message:     errors2.MATCHING_RULE_NOT_FOUND.Message,
			Description: fmt.Sprintf("Matching rule %s does not exist", ruleId),
		}, http.StatusNotFound)
	}
	return rule, nil
}

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

package store

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/studiohub/normative-matching-service/internal/matching_rules/model"
	"github.com/studiohub/normative-matching-service/internal/system/database/client"
	"github.com/studiohub/normative-matching-service/internal/system/database/provider"
	"github.com/studiohub/normative-matching-service/internal/system/database/scripts"
	errors2 "github.com/studiohub/normative-matching-service/internal/system/errors"
	"github.com/studiohub/normative-matching-service/internal/system/log"
)

// MatchingRuleStore reads matching rules from the relational store. Rules are global to all tenants.
type MatchingRuleStore struct {
	dbProvider provider.DBProviderInterface
}

func NewMatchingRuleStore(dbProvider provider.DBProviderInterface) *MatchingRuleStore {
	return &MatchingRuleStore{dbProvider: dbProvider}
}

// GetRuleById returns nil, nil when the rule does not exist.
func (s *MatchingRuleStore) GetRuleById(ctx context.Context, ruleId string) (*model.MatchingRule, error) {

	rows, err := s.query(ctx, scripts.GetMatchingRuleById, fmt.Sprintf("matching rule: %s", ruleId), ruleId)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		log.GetLogger().Debug(fmt.Sprintf("No matching rule found for rule_id: %s", ruleId))
		return nil, nil
	}
	rule, err := mapRule(rows[0])
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// ListActiveRules returns active rules, highest priority first. Validity windows are not applied here.
func (s *MatchingRuleStore) ListActiveRules(ctx context.Context) ([]model.MatchingRule, error) {

	rows, err := s.query(ctx, scripts.ListActiveMatchingRules, "active matching rules")
	if err != nil {
		return nil, err
	}
	return mapRules(rows)
}

// ListRules returns all rules, highest priority first.
func (s *MatchingRuleStore) ListRules(ctx context.Context) ([]model.MatchingRule, error) {

	rows, err := s.query(ctx, scripts.ListMatchingRules, "matching rules")
	if err != nil {
		return nil, err
	}
	return mapRules(rows)
}

func (s *MatchingRuleStore) query(ctx context.Context, queries map[string]string, target string,
	args ...interface{}) ([]map[string]interface{}, error) {

	logger := log.GetLogger().WithContext(ctx)
	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching %s", target)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	rows, err := dbClient.ExecuteQuery(ctx, queries[s.dbProvider.GetDBType()], args...)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching %s", target)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_MATCHING_RULES.Code,
			Message:     errors2.FETCH_MATCHING_RULES.Message,
			Description: errorMsg,
		}, err)
	}
	return rows, nil
}

func mapRules(rows []map[string]interface{}) ([]model.MatchingRule, error) {
	rules := make([]model.MatchingRule, 0, len(rows))
	for _, row := range rows {
		rule, err := mapRule(row)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// mapRule converts a row into a rule. An undecodable condition tree is logged and treated as absent so
// the rule never matches instead of failing every caller.
func mapRule(row map[string]interface{}) (model.MatchingRule, error) {
	rule := model.MatchingRule{
		RuleId:          client.StringValue(row, "rule_id"),
		Name:            client.StringValue(row, "name"),
		RuleType:        client.StringValue(row, "rule_type"),
		Priority:        client.IntValue(row, "priority"),
		IsActive:        client.BoolValue(row, "is_active"),
		ValidFrom:       client.TimeValue(row, "valid_from"),
		ValidTo:         client.TimeValue(row, "valid_to"),
		Category:        client.StringValue(row, "category"),
		SourceReference: client.StringValue(row, "source_reference"),
		Description:     client.StringValue(row, "description"),
	}
	if rule.RuleId == "" {
		return rule, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_MATCHING_RULES.Code,
			Message:     errors2.FETCH_MATCHING_RULES.Message,
			Description: "Matching rule row without rule_id",
		}, errors.New("missing rule_id column"))
	}

	conditions, err := model.ParseConditions([]byte(client.StringValue(row, "conditions")))
	if err != nil {
		log.GetLogger().Warn(fmt.Sprintf("Ignoring undecodable conditions of matching rule: %s", rule.RuleId),
			log.Error(errors.Wrap(err, "decode conditions")))
		conditions = nil
	}
	rule.Conditions = conditions
	return rule, nil
}

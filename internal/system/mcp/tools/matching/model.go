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

package matching

import (
	matchModel "github.com/studiohub/normative-matching-service/internal/matching/model"
	ruleModel "github.com/studiohub/normative-matching-service/internal/matching_rules/model"
)

// nms_list_rules
type ListRulesInput struct {
	// Optional NORMATIVA, SCADENZA or OPPORTUNITA.
	RuleType string `json:"rule_type,omitempty" jsonschema:"optional rule type filter: NORMATIVA, SCADENZA or OPPORTUNITA"`
}

type ListRulesOutput struct {
	Rules []ruleModel.MatchingRuleAPIResponse `json:"rules"`
}

// nms_match_rule
type MatchRuleInput struct {
	RuleID string `json:"rule_id" jsonschema:"id of the matching rule to evaluate"`
}

type MatchRuleOutput struct {
	RuleID  string                   `json:"rule_id"`
	Count   int                      `json:"count"`
	Matches []matchModel.MatchResult `json:"matches"`
}

// nms_client_rules
type ClientRulesInput struct {
	ClientID string `json:"client_id" jsonschema:"id of the client to inspect"`
}

type ClientRulesOutput struct {
	ClientID string                 `json:"client_id"`
	Count    int                    `json:"count"`
	Rules    []matchModel.RuleMatch `json:"rules"`
}

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

package model

// MatchResult is one client matched by a rule.
type MatchResult struct {
	ClientId string  `json:"client_id"`
	Score    float64 `json:"score"`
	Method   string  `json:"method"`
}

// RuleMatch is one rule that applies to a client.
type RuleMatch struct {
	RuleId   string  `json:"rule_id"`
	RuleName string  `json:"rule_name"`
	Score    float64 `json:"score"`
	Method   string  `json:"method"`
}

// RuleMatchBatch is handed to downstream delivery after a rule produced matches for a tenant.
type RuleMatchBatch struct {
	TenantId string
	RuleId   string
	RuleName string
	RuleType string
	Results  []MatchResult
}

// BatchReport summarises a batch run over all active rules of a tenant.
type BatchReport struct {
	TenantId  string   `json:"tenant_id"`
	Evaluated int      `json:"evaluated"`
	Matched   int      `json:"matched"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	FailedIds []string `json:"failed_rule_ids,omitempty"`
}

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

const dateLayout = "2006-01-02"

type MatchingRuleAPIResponse struct {
	RuleId          string    `json:"rule_id"`
	Name            string    `json:"name"`
	RuleType        string    `json:"rule_type"`
	Conditions      Condition `json:"conditions"`
	Priority        int       `json:"priority"`
	IsActive        bool      `json:"is_active"`
	ValidFrom       string    `json:"valid_from,omitempty"`
	ValidTo         string    `json:"valid_to,omitempty"`
	Category        string    `json:"category,omitempty"`
	SourceReference string    `json:"source_reference,omitempty"`
	Description     string    `json:"description,omitempty"`
}

// ToAPIResponse renders the rule with dates as plain calendar days.
func (r *MatchingRule) ToAPIResponse() MatchingRuleAPIResponse {
	resp := MatchingRuleAPIResponse{
		RuleId:          r.RuleId,
		Name:            r.Name,
		RuleType:        r.RuleType,
		Conditions:      r.Conditions,
		Priority:        r.Priority,
		IsActive:        r.IsActive,
		Category:        r.Category,
		SourceReference: r.SourceReference,
		Description:     r.Description,
	}
	if r.ValidFrom != nil {
		resp.ValidFrom = r.ValidFrom.Format(dateLayout)
	}
	if r.ValidTo != nil {
		resp.ValidTo = r.ValidTo.Format(dateLayout)
	}
	return resp
}

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

import (
	"time"
)

// MatchingRule describes when a normative or regulatory item applies to a client.
type MatchingRule struct {
	RuleId          string     `json:"rule_id"`
	Name            string     `json:"name"`
	RuleType        string     `json:"rule_type"`
	Conditions      Condition  `json:"conditions"`
	Priority        int        `json:"priority"`
	IsActive        bool       `json:"is_active"`
	ValidFrom       *time.Time `json:"valid_from,omitempty"`
	ValidTo         *time.Time `json:"valid_to,omitempty"`
	Category        string     `json:"category"`
	SourceReference string     `json:"source_reference"`
	Description     string     `json:"description"`
}

// DateOf truncates t to its calendar day, keeping the day as seen in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NotYetValid reports whether the rule starts after the given day.
func (r *MatchingRule) NotYetValid(today time.Time) bool {
	return r.ValidFrom != nil && DateOf(*r.ValidFrom).After(DateOf(today))
}

// Expired reports whether the rule ended before the given day. The last day is still valid.
func (r *MatchingRule) Expired(today time.Time) bool {
	return r.ValidTo != nil && DateOf(*r.ValidTo).Before(DateOf(today))
}

// ValidOn reports whether the given day falls inside the rule's validity window.
func (r *MatchingRule) ValidOn(today time.Time) bool {
	return !r.NotYetValid(today) && !r.Expired(today)
}

// QueryText is the text embedded for semantic matching.
func (r *MatchingRule) QueryText() string {
	text := r.Name
	for _, part := range []string{r.Description, r.Category} {
		if part == "" {
			continue
		}
		if text != "" {
			text += " "
		}
		text += part
	}
	return text
}

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

package engine

import (
	"context"
	"fmt"
	"sort"

	clientModel "github.com/studiohub/normative-matching-service/internal/clients/model"
	matchModel "github.com/studiohub/normative-matching-service/internal/matching/model"
	ruleModel "github.com/studiohub/normative-matching-service/internal/matching_rules/model"
	"github.com/studiohub/normative-matching-service/internal/system/constants"
	"github.com/studiohub/normative-matching-service/internal/system/log"
)

// ProfileLister returns every non-deleted client of a tenant with its optional profile, in a stable order.
type ProfileLister interface {
	ListClientsWithProfiles(ctx context.Context, tenantId string) ([]clientModel.ClientWithProfile, error)
}

// StructuredMatcher evaluates a rule against every client of a tenant.
type StructuredMatcher struct {
	clients   ProfileLister
	evaluator *Evaluator
}

func NewStructuredMatcher(clients ProfileLister, evaluator *Evaluator) *StructuredMatcher {
	return &StructuredMatcher{clients: clients, evaluator: evaluator}
}

// MatchRule returns the clients scoring above zero, best first. Ties keep fetch order.
func (m *StructuredMatcher) MatchRule(ctx context.Context, rule *ruleModel.MatchingRule,
	tenantId string) ([]matchModel.MatchResult, error) {

	clients, err := m.clients.ListClientsWithProfiles(ctx, tenantId)
	if err != nil {
		return nil, err
	}

	results := make([]matchModel.MatchResult, 0)
	for i := range clients {
		score := m.evaluator.Evaluate(rule.Conditions, &clients[i].Client, clients[i].Profile)
		if score > 0 {
			results = append(results, matchModel.MatchResult{
				ClientId: clients[i].Client.ClientId,
				Score:    score,
				Method:   constants.MethodStructured,
			})
		}
	}
	sortResults(results)

	log.GetLogger().WithContext(ctx).Debug(fmt.Sprintf("Structured pass for rule: %s matched %d of %d clients",
		rule.RuleId, len(results), len(clients)), log.String("tenant", tenantId))
	return results, nil
}

func sortResults(results []matchModel.MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

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

	clientModel "github.com/studiohub/normative-matching-service/internal/clients/model"
	matchModel "github.com/studiohub/normative-matching-service/internal/matching/model"
	ruleModel "github.com/studiohub/normative-matching-service/internal/matching_rules/model"
	"github.com/studiohub/normative-matching-service/internal/system/constants"
	"github.com/studiohub/normative-matching-service/internal/system/log"
)

// EmbeddingLister returns the clients of a tenant whose profile carries an embedding vector.
type EmbeddingLister interface {
	ListClientsWithEmbeddings(ctx context.Context, tenantId string) ([]clientModel.ClientWithProfile, error)
}

// SimilarityBackend scores a profile embedding against a query text.
type SimilarityBackend interface {
	Similarity(ctx context.Context, queryText string, vector []float32) (float64, error)
}

// SemanticMatcher ranks clients by embedding similarity to the rule text.
type SemanticMatcher struct {
	clients   EmbeddingLister
	backend   SimilarityBackend
	threshold float64
}

func NewSemanticMatcher(clients EmbeddingLister, backend SimilarityBackend, threshold float64) *SemanticMatcher {
	if threshold <= 0 {
		threshold = constants.DefaultSemanticThreshold
	}
	return &SemanticMatcher{clients: clients, backend: backend, threshold: threshold}
}

func (m *SemanticMatcher) Threshold() float64 {
	return m.threshold
}

// MatchSemantic returns candidates whose similarity reaches the matcher threshold, best first.
func (m *SemanticMatcher) MatchSemantic(ctx context.Context, rule *ruleModel.MatchingRule,
	tenantId string) ([]matchModel.MatchResult, error) {
	return m.MatchSemanticWithThreshold(ctx, rule, tenantId, m.threshold)
}

// MatchSemanticWithThreshold is MatchSemantic with an explicit threshold.
func (m *SemanticMatcher) MatchSemanticWithThreshold(ctx context.Context, rule *ruleModel.MatchingRule,
	tenantId string, threshold float64) ([]matchModel.MatchResult, error) {

	candidates, err := m.clients.ListClientsWithEmbeddings(ctx, tenantId)
	if err != nil {
		return nil, err
	}

	results := make([]matchModel.MatchResult, 0)
	if len(candidates) == 0 {
		return results, nil
	}

	queryText := rule.QueryText()
	for _, candidate := range candidates {
		if !candidate.Profile.HasEmbedding() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		similarity, err := m.backend.Similarity(ctx, queryText, candidate.Profile.ProfileVector)
		if err != nil {
			return nil, err
		}
		if similarity >= threshold {
			results = append(results, matchModel.MatchResult{
				ClientId: candidate.Client.ClientId,
				Score:    roundScore(similarity),
				Method:   constants.MethodSemantic,
			})
		}
	}
	sortResults(results)

	log.GetLogger().WithContext(ctx).Debug(fmt.Sprintf("Semantic pass for rule: %s matched %d of %d candidates",
		rule.RuleId, len(results), len(candidates)), log.String("tenant", tenantId))
	return results, nil
}

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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientModel "github.com/studiohub/normative-matching-service/internal/clients/model"
	ruleModel "github.com/studiohub/normative-matching-service/internal/matching_rules/model"
)

type fakeClients struct {
	withProfiles   []clientModel.ClientWithProfile
	withEmbeddings []clientModel.ClientWithProfile
	err            error
	profileCalls   int
	embeddingCalls int
}

func (f *fakeClients) ListClientsWithProfiles(_ context.Context, _ string) ([]clientModel.ClientWithProfile, error) {
	f.profileCalls++
	return f.withProfiles, f.err
}

func (f *fakeClients) ListClientsWithEmbeddings(_ context.Context, _ string) ([]clientModel.ClientWithProfile, error) {
	f.embeddingCalls++
	return f.withEmbeddings, f.err
}

func statusRule(status string) *ruleModel.MatchingRule {
	return &ruleModel.MatchingRule{
		RuleId: "r1",
		Name:   "status rule",
		Conditions: ruleModel.Group{Operator: "AND", Rules: []ruleModel.Condition{
			leaf("status", "eq", status),
		}},
	}
}

func TestStructuredMatcher_ActiveClients(t *testing.T) {
	clients := &fakeClients{}
	for i := 0; i < 100; i++ {
		status := "active"
		if i%10 == 9 {
			status = "suspended"
		}
		clients.withProfiles = append(clients.withProfiles, clientModel.ClientWithProfile{
			Client: clientModel.Client{ClientId: fmt.Sprintf("c%03d", i), Status: status},
		})
	}

	matcher := NewStructuredMatcher(clients, NewEvaluator("nested"))
	results, err := matcher.MatchRule(context.Background(), statusRule("active"), "t1")
	require.NoError(t, err)
	require.Len(t, results, 90)
	assert.Equal(t, 1, clients.profileCalls)

	expectedIds := make([]string, 0, 90)
	for i := 0; i < 100; i++ {
		if i%10 != 9 {
			expectedIds = append(expectedIds, fmt.Sprintf("c%03d", i))
		}
	}
	for i, result := range results {
		assert.Equal(t, 1.0, result.Score)
		assert.Equal(t, "structured", result.Method)
		assert.Equal(t, expectedIds[i], result.ClientId)
	}
}

func TestStructuredMatcher_SortsByScoreKeepingFetchOrder(t *testing.T) {
	rule := &ruleModel.MatchingRule{RuleId: "r2", Conditions: ruleModel.Group{Operator: "OR", Rules: []ruleModel.Condition{
		leaf("region", "eq", "Lazio"),
		leaf("status", "eq", "active"),
	}}}
	clients := &fakeClients{withProfiles: []clientModel.ClientWithProfile{
		{Client: clientModel.Client{ClientId: "a", Region: "Lazio"}},
		{Client: clientModel.Client{ClientId: "b", Region: "Lazio", Status: "active"}},
		{Client: clientModel.Client{ClientId: "c"}},
		{Client: clientModel.Client{ClientId: "d", Status: "active"}},
		{Client: clientModel.Client{ClientId: "e", Region: "Lazio", Status: "active"}},
	}}

	results, err := NewStructuredMatcher(clients, NewEvaluator("nested")).MatchRule(context.Background(), rule, "t1")
	require.NoError(t, err)

	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ClientId
	}
	assert.Equal(t, []string{"b", "e", "a", "d"}, ids)
	assert.Equal(t, 1.0, results[0].Score)
	assert.Equal(t, 0.5, results[3].Score)
}

func TestStructuredMatcher_ProfileConditionWithoutProfile(t *testing.T) {
	rule := &ruleModel.MatchingRule{RuleId: "r3", Conditions: ruleModel.Group{Operator: "AND", Rules: []ruleModel.Condition{
		leaf("profile.settore", "eq", "commercio"),
	}}}
	clients := &fakeClients{withProfiles: []clientModel.ClientWithProfile{
		{Client: clientModel.Client{ClientId: "no-profile"}},
		{Client: clientModel.Client{ClientId: "shop"}, Profile: &clientModel.ClientProfile{Settore: "commercio"}},
	}}

	results, err := NewStructuredMatcher(clients, NewEvaluator("nested")).MatchRule(context.Background(), rule, "t1")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "shop", results[0].ClientId)
}

func TestStructuredMatcher_EmptyIsNotNil(t *testing.T) {
	results, err := NewStructuredMatcher(&fakeClients{}, NewEvaluator("nested")).
		MatchRule(context.Background(), statusRule("active"), "t1")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestStructuredMatcher_StoreError(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := NewStructuredMatcher(&fakeClients{err: boom}, NewEvaluator("nested")).
		MatchRule(context.Background(), statusRule("active"), "t1")
	assert.ErrorIs(t, err, boom)
}

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
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientModel "github.com/studiohub/normative-matching-service/internal/clients/model"
	"github.com/studiohub/normative-matching-service/internal/matching/model"
	ruleModel "github.com/studiohub/normative-matching-service/internal/matching_rules/model"
	errors2 "github.com/studiohub/normative-matching-service/internal/system/errors"
	"github.com/studiohub/normative-matching-service/internal/system/log"
)

func TestMain(m *testing.M) {
	log.Init("ERROR")
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeRuleStore struct {
	rules []ruleModel.MatchingRule
	err   error
}

func (f *fakeRuleStore) GetRuleById(_ context.Context, ruleId string) (*ruleModel.MatchingRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.rules {
		if f.rules[i].RuleId == ruleId {
			rule := f.rules[i]
			return &rule, nil
		}
	}
	return nil, nil
}

func (f *fakeRuleStore) ListActiveRules(_ context.Context) ([]ruleModel.MatchingRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	active := make([]ruleModel.MatchingRule, 0)
	for _, rule := range f.rules {
		if rule.IsActive {
			active = append(active, rule)
		}
	}
	return active, nil
}

type fakeClientStore struct {
	mu             sync.Mutex
	clients        []clientModel.ClientWithProfile
	err            error
	profileCalls   int
	embeddingCalls int
	getCalls       int
}

func (f *fakeClientStore) ListClientsWithProfiles(_ context.Context, _ string) ([]clientModel.ClientWithProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileCalls++
	return f.clients, f.err
}

func (f *fakeClientStore) ListClientsWithEmbeddings(_ context.Context, _ string) ([]clientModel.ClientWithProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embeddingCalls++
	out := make([]clientModel.ClientWithProfile, 0)
	for _, c := range f.clients {
		if c.Profile.HasEmbedding() {
			out = append(out, c)
		}
	}
	return out, f.err
}

func (f *fakeClientStore) GetClientWithProfile(_ context.Context, _ string, clientId string) (*clientModel.ClientWithProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.clients {
		if f.clients[i].Client.ClientId == clientId {
			entry := f.clients[i]
			return &entry, nil
		}
	}
	return nil, nil
}

// vectorSimilarity uses the first vector component as the similarity score.
type vectorSimilarity struct {
	calls int
	err   error
}

func (v *vectorSimilarity) Similarity(_ context.Context, _ string, vector []float32) (float64, error) {
	v.calls++
	if v.err != nil {
		return 0, v.err
	}
	return float64(vector[0]), nil
}

type recordingSink struct {
	batches []model.RuleMatchBatch
}

func (s *recordingSink) Submit(batch model.RuleMatchBatch) bool {
	s.batches = append(s.batches, batch)
	return true
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func andRule(id string, leaves ...ruleModel.Condition) ruleModel.MatchingRule {
	return ruleModel.MatchingRule{
		RuleId:     id,
		Name:       "rule " + id,
		RuleType:   "NORMATIVA",
		IsActive:   true,
		Priority:   50,
		Conditions: ruleModel.Group{Operator: "AND", Rules: leaves},
	}
}

func eq(field string, value interface{}) ruleModel.Leaf {
	return ruleModel.Leaf{Field: field, Op: "eq", Value: value}
}

func newService(rules *fakeRuleStore, clients *fakeClientStore, similarity *vectorSimilarity,
	sink MatchSink) *MatchingService {
	return NewMatchingService(rules, clients, similarity, Options{
		ConditionMode:     "nested",
		SemanticThreshold: 0.7,
		Now:               func() time.Time { return fixedNow },
		Sink:              sink,
	})
}

func statusClients(total, active int) []clientModel.ClientWithProfile {
	out := make([]clientModel.ClientWithProfile, 0, total)
	for i := 0; i < total; i++ {
		status := "inactive"
		if i < active {
			status = "active"
		}
		out = append(out, clientModel.ClientWithProfile{
			Client: clientModel.Client{ClientId: fmt.Sprintf("c%03d", i), Status: status},
		})
	}
	return out
}

func clientIds(results []model.MatchResult) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ClientId
	}
	return ids
}

func requireClientError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	var clientErr *errors2.ClientError
	require.True(t, errors.As(err, &clientErr), "expected a ClientError")
	assert.Equal(t, status, clientErr.StatusCode)
	assert.Equal(t, code, clientErr.Code)
}

// ---------------------------------------------------------------------------
// MatchRule
// ---------------------------------------------------------------------------

func TestMatchRule_NotFound(t *testing.T) {
	svc := newService(&fakeRuleStore{}, &fakeClientStore{}, &vectorSimilarity{}, nil)
	_, err := svc.MatchRule(context.Background(), "missing", "t1")
	requireClientError(t, err, http.StatusNotFound, errors2.MATCHING_RULE_NOT_FOUND.Code)
}

func TestMatchRule_Inactive(t *testing.T) {
	rule := andRule("r1", eq("status", "active"))
	rule.IsActive = false
	clients := &fakeClientStore{clients: statusClients(3, 3)}
	svc := newService(&fakeRuleStore{rules: []ruleModel.MatchingRule{rule}}, clients, &vectorSimilarity{}, nil)

	_, err := svc.MatchRule(context.Background(), "r1", "t1")
	requireClientError(t, err, http.StatusConflict, errors2.MATCHING_RULE_INACTIVE.Code)
	assert.Zero(t, clients.profileCalls)
}

func TestMatchRule_ValidityWindow(t *testing.T) {
	tests := []struct {
		name      string
		from, to  *time.Time
		evaluated bool
	}{
		{"future rule", date(2025, 3, 11), nil, false},
		{"expired rule", nil, date(2025, 3, 9), false},
		{"ends today", nil, date(2025, 3, 10), true},
		{"starts today", date(2025, 3, 10), nil, true},
		{"open window", nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := andRule("r1", eq("status", "active"))
			rule.ValidFrom, rule.ValidTo = tt.from, tt.to
			clients := &fakeClientStore{clients: statusClients(2, 2)}
			similarity := &vectorSimilarity{}
			svc := newService(&fakeRuleStore{rules: []ruleModel.MatchingRule{rule}}, clients, similarity, nil)

			results, err := svc.MatchRule(context.Background(), "r1", "t1")
			require.NoError(t, err)
			if tt.evaluated {
				assert.Len(t, results, 2)
				return
			}
			assert.NotNil(t, results)
			assert.Empty(t, results)
			assert.Zero(t, clients.profileCalls)
			assert.Zero(t, clients.embeddingCalls)
			assert.Zero(t, similarity.calls)
		})
	}
}

func TestMatchRule_TodayUsesConfiguredLocation(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)
	rule := andRule("r1", eq("status", "active"))
	rule.ValidFrom = date(2025, 3, 11)
	clients := &fakeClientStore{clients: statusClients(1, 1)}
	lateEvening := time.Date(2025, time.March, 10, 23, 30, 0, 0, time.UTC)

	utcSvc := NewMatchingService(&fakeRuleStore{rules: []ruleModel.MatchingRule{rule}}, clients, &vectorSimilarity{},
		Options{Now: func() time.Time { return lateEvening }})
	results, err := utcSvc.MatchRule(context.Background(), "r1", "t1")
	require.NoError(t, err)
	assert.Empty(t, results)

	romeSvc := NewMatchingService(&fakeRuleStore{rules: []ruleModel.MatchingRule{rule}}, clients, &vectorSimilarity{},
		Options{Now: func() time.Time { return lateEvening }, Location: rome})
	results, err = romeSvc.MatchRule(context.Background(), "r1", "t1")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestMatchRule_StructuredActiveClients(t *testing.T) {
	clients := &fakeClientStore{clients: statusClients(100, 90)}
	similarity := &vectorSimilarity{}
	svc := newService(&fakeRuleStore{rules: []ruleModel.MatchingRule{andRule("r1", eq("status", "active"))}},
		clients, similarity, nil)

	results, err := svc.MatchRule(context.Background(), "r1", "t1")
	require.NoError(t, err)
	require.Len(t, results, 90)
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("c%03d", i), r.ClientId)
		assert.Equal(t, 1.0, r.Score)
		assert.Equal(t, "structured", r.Method)
	}
	assert.Equal(t, 1, clients.profileCalls)
	assert.Zero(t, clients.embeddingCalls)
	assert.Zero(t, similarity.calls)
}

func TestMatchRule_SemanticFallback(t *testing.T) {
	scores := []float32{0.9, 0.3, 0.75, 0.69, 0.8}
	clients := &fakeClientStore{}
	for i, score := range scores {
		clients.clients = append(clients.clients, clientModel.ClientWithProfile{
			Client:  clientModel.Client{ClientId: fmt.Sprintf("e%d", i), Status: "inactive"},
			Profile: &clientModel.ClientProfile{ProfileVector: []float32{score, 0}},
		})
	}
	clients.clients = append(clients.clients, clientModel.ClientWithProfile{
		Client: clientModel.Client{ClientId: "no-vector", Status: "inactive"},
	})
	similarity := &vectorSimilarity{}
	svc := newService(&fakeRuleStore{rules: []ruleModel.MatchingRule{andRule("r1", eq("status", "active"))}},
		clients, similarity, nil)

	results, err := svc.MatchRule(context.Background(), "r1", "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"e0", "e4", "e2"}, clientIds(results))
	for _, r := range results {
		assert.Equal(t, "semantic", r.Method)
		assert.GreaterOrEqual(t, r.Score, 0.7)
	}
	assert.Equal(t, 1, clients.embeddingCalls)
	assert.Equal(t, 5, similarity.calls)
}

func TestMatchRule_ProfileFieldWithoutProfile(t *testing.T) {
	clients := &fakeClientStore{clients: []clientModel.ClientWithProfile{
		{Client: clientModel.Client{ClientId: "bare"}},
		{Client: clientModel.Client{ClientId: "shop"}, Profile: &clientModel.ClientProfile{Settore: "commercio"}},
	}}
	svc := newService(&fakeRuleStore{rules: []ruleModel.MatchingRule{andRule("r1", eq("profile.settore", "commercio"))}},
		clients, &vectorSimilarity{}, nil)

	results, err := svc.MatchRule(context.Background(), "r1", "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"shop"}, clientIds(results))
}

func TestMatchRule_Idempotent(t *testing.T) {
	rule := ruleModel.MatchingRule{RuleId: "r1", IsActive: true, Conditions: ruleModel.Group{Operator: "OR",
		Rules: []ruleModel.Condition{eq("status", "active"), eq("region", "Lazio")}}}
	clients := &fakeClientStore{clients: []clientModel.ClientWithProfile{
		{Client: clientModel.Client{ClientId: "a", Region: "Lazio"}},
		{Client: clientModel.Client{ClientId: "b", Status: "active", Region: "Lazio"}},
		{Client: clientModel.Client{ClientId: "c", Status: "active"}},
	}}
	svc := newService(&fakeRuleStore{rules: []ruleModel.MatchingRule{rule}}, clients, &vectorSimilarity{}, nil)

	first, err := svc.MatchRule(context.Background(), "r1", "t1")
	require.NoError(t, err)
	second, err := svc.MatchRule(context.Background(), "r1", "t1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"b", "a", "c"}, clientIds(first))
}

func TestMatchRule_DownstreamFailure(t *testing.T) {
	boom := errors.New("connection reset")
	svc := newService(&fakeRuleStore{rules: []ruleModel.MatchingRule{andRule("r1", eq("status", "active"))}},
		&fakeClientStore{err: boom}, &vectorSimilarity{}, nil)
	_, err := svc.MatchRule(context.Background(), "r1", "t1")
	assert.ErrorIs(t, err, boom)

	_, err = newService(&fakeRuleStore{err: boom}, &fakeClientStore{}, &vectorSimilarity{}, nil).
		MatchRule(context.Background(), "r1", "t1")
	assert.ErrorIs(t, err, boom)
}

func TestMatchRuleAndNotify(t *testing.T) {
	sink := &recordingSink{}
	rules := &fakeRuleStore{rules: []ruleModel.MatchingRule{
		andRule("r1", eq("status", "active")),
		andRule("r2", eq("status", "archived")),
	}}
	svc := newService(rules, &fakeClientStore{clients: statusClients(3, 2)}, &vectorSimilarity{}, sink)

	results, err := svc.MatchRuleAndNotify(context.Background(), "r1", "t1")
	require.NoError(t, err)
	assert.Len(t, results, 2)
	require.Len(t, sink.batches, 1)
	assert.Equal(t, "t1", sink.batches[0].TenantId)
	assert.Equal(t, "rule r1", sink.batches[0].RuleName)
	assert.Equal(t, results, sink.batches[0].Results)

	results, err = svc.MatchRuleAndNotify(context.Background(), "r2", "t1")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Len(t, sink.batches, 1)
}

// ---------------------------------------------------------------------------
// MatchClientToRules
// ---------------------------------------------------------------------------

func TestMatchClientToRules(t *testing.T) {
	orRule := ruleModel.MatchingRule{RuleId: "partial", Name: "partial", IsActive: true,
		Conditions: ruleModel.Group{Operator: "OR", Rules: []ruleModel.Condition{
			eq("status", "active"), eq("region", "Sicilia"),
		}}}
	future := andRule("future", eq("status", "active"))
	future.ValidFrom = date(2026, 1, 1)
	expired := andRule("expired", eq("status", "active"))
	expired.ValidTo = date(2024, 12, 31)
	inactive := andRule("inactive", eq("status", "active"))
	inactive.IsActive = false

	rules := &fakeRuleStore{rules: []ruleModel.MatchingRule{
		orRule,
		andRule("full", eq("status", "active")),
		future, expired, inactive,
		andRule("miss", eq("status", "closed")),
	}}
	clients := &fakeClientStore{clients: []clientModel.ClientWithProfile{{
		Client:  clientModel.Client{ClientId: "c1", Status: "active"},
		Profile: &clientModel.ClientProfile{ProfileVector: []float32{0.99}},
	}}}
	similarity := &vectorSimilarity{}
	svc := newService(rules, clients, similarity, nil)

	matches, err := svc.MatchClientToRules(context.Background(), "c1", "t1")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, model.RuleMatch{RuleId: "full", RuleName: "rule full", Score: 1, Method: "structured"}, matches[0])
	assert.Equal(t, model.RuleMatch{RuleId: "partial", RuleName: "partial", Score: 0.5, Method: "structured"}, matches[1])
	assert.Equal(t, 1, clients.getCalls)
	assert.Zero(t, clients.embeddingCalls)
	assert.Zero(t, similarity.calls)
}

func TestMatchClientToRules_ClientNotFound(t *testing.T) {
	svc := newService(&fakeRuleStore{}, &fakeClientStore{}, &vectorSimilarity{}, nil)
	_, err := svc.MatchClientToRules(context.Background(), "ghost", "t1")
	requireClientError(t, err, http.StatusNotFound, errors2.CLIENT_NOT_FOUND.Code)
}

func TestMatchClientToRules_NoRules(t *testing.T) {
	svc := newService(&fakeRuleStore{}, &fakeClientStore{clients: statusClients(1, 1)}, &vectorSimilarity{}, nil)
	matches, err := svc.MatchClientToRules(context.Background(), "c000", "t1")
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

// ---------------------------------------------------------------------------
// MatchAllRules
// ---------------------------------------------------------------------------

func TestMatchAllRules_IsolatesFailures(t *testing.T) {
	future := andRule("future", eq("status", "active"))
	future.ValidFrom = date(2030, 1, 1)
	rules := &fakeRuleStore{rules: []ruleModel.MatchingRule{
		andRule("semantic-broken", eq("status", "nobody")),
		andRule("matches", eq("status", "active")),
		future,
		andRule("also-unmatched", ruleModel.Leaf{Field: "status", Op: "eq", Value: "nobody"}),
	}}
	clients := &fakeClientStore{clients: []clientModel.ClientWithProfile{
		{Client: clientModel.Client{ClientId: "c1", Status: "active"},
			Profile: &clientModel.ClientProfile{ProfileVector: []float32{0.2}}},
	}}
	sink := &recordingSink{}
	svc := newService(rules, clients, &vectorSimilarity{err: errors.New("embedding timeout")}, sink)

	report, err := svc.MatchAllRules(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", report.TenantId)
	assert.Equal(t, 3, report.Evaluated)
	assert.Equal(t, 1, report.Matched)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, []string{"semantic-broken", "also-unmatched"}, report.FailedIds)

	require.Len(t, sink.batches, 1)
	assert.Equal(t, "matches", sink.batches[0].RuleId)
}

func TestMatchAllRules_RuleListFailure(t *testing.T) {
	boom := errors.New("db down")
	svc := newService(&fakeRuleStore{err: boom}, &fakeClientStore{}, &vectorSimilarity{}, nil)
	_, err := svc.MatchAllRules(context.Background(), "t1")
	assert.ErrorIs(t, err, boom)
}

func TestMatchAllRules_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := newService(&fakeRuleStore{rules: []ruleModel.MatchingRule{andRule("r1", eq("status", "active"))}},
		&fakeClientStore{clients: statusClients(1, 1)}, &vectorSimilarity{}, nil)
	report, err := svc.MatchAllRules(ctx, "t1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Evaluated)
}

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

package managers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	healthProvider "github.com/studiohub/normative-matching-service/internal/health_check/provider"
	"github.com/studiohub/normative-matching-service/internal/matching/model"
	"github.com/studiohub/normative-matching-service/internal/matching/service"
	ruleModel "github.com/studiohub/normative-matching-service/internal/matching_rules/model"
	ruleService "github.com/studiohub/normative-matching-service/internal/matching_rules/service"
	"github.com/studiohub/normative-matching-service/internal/system/config"
	"github.com/studiohub/normative-matching-service/internal/system/constants"
	"github.com/studiohub/normative-matching-service/internal/system/database/dbtest"
	"github.com/studiohub/normative-matching-service/internal/system/log"
	"github.com/studiohub/normative-matching-service/internal/system/security"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

type recordingMatcher struct {
	calls []string
}

func (f *recordingMatcher) MatchRule(_ context.Context, ruleId, tenantId string) ([]model.MatchResult, error) {
	f.calls = append(f.calls, "rule:"+tenantId+":"+ruleId)
	return []model.MatchResult{}, nil
}

func (f *recordingMatcher) MatchRuleAndNotify(ctx context.Context, ruleId, tenantId string) ([]model.MatchResult, error) {
	return f.MatchRule(ctx, ruleId, tenantId)
}

func (f *recordingMatcher) MatchClientToRules(_ context.Context, clientId, tenantId string) ([]model.RuleMatch, error) {
	f.calls = append(f.calls, "client:"+tenantId+":"+clientId)
	return []model.RuleMatch{}, nil
}

func (f *recordingMatcher) MatchAllRules(_ context.Context, tenantId string) (model.BatchReport, error) {
	f.calls = append(f.calls, "tenant:"+tenantId)
	return model.BatchReport{TenantId: tenantId}, nil
}

type matcherProvider struct {
	svc *recordingMatcher
}

func (p *matcherProvider) GetMatchingService() service.MatchingServiceInterface {
	return p.svc
}

type staticRules struct{}

func (staticRules) GetMatchingRules(_ context.Context, _ string) ([]ruleModel.MatchingRule, error) {
	return []ruleModel.MatchingRule{}, nil
}

func (staticRules) GetMatchingRule(_ context.Context, ruleId string) (*ruleModel.MatchingRule, error) {
	return &ruleModel.MatchingRule{RuleId: ruleId, Name: "rule " + ruleId}, nil
}

type rulesProvider struct{}

func (rulesProvider) GetMatchingRuleService() ruleService.MatchingRuleServiceInterface {
	return staticRules{}
}

func newMux(t *testing.T) (*http.ServeMux, *recordingMatcher) {
	matcher := &recordingMatcher{}
	mux := http.NewServeMux()
	manager := NewServiceManager(mux, Providers{
		Health:     healthProvider.NewHealthCheckProvider(dbtest.NewFakeProvider(nil)),
		Rules:      rulesProvider{},
		Matching:   &matcherProvider{svc: matcher},
		Authorizer: security.NewAuthorizer(config.AuthConfig{}),
	})
	require.NoError(t, manager.RegisterServices(constants.ApiBasePath))
	return mux, matcher
}

func TestRegisterServices_Routes(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		status int
		call   string
	}{
		{"list rules", http.MethodGet, "/t/studio-a/api/v1/matching-rules", http.StatusOK, ""},
		{"get rule", http.MethodGet, "/t/studio-a/api/v1/matching-rules/r1", http.StatusOK, ""},
		{"run rule", http.MethodPost, "/t/studio-a/api/v1/matching-rules/r1/matches", http.StatusOK, "rule:studio-a:r1"},
		{"run tenant", http.MethodPost, "/t/studio-b/api/v1/matching-rules/matches", http.StatusOK, "tenant:studio-b"},
		{"client rules", http.MethodGet, "/t/studio-a/api/v1/clients/c7/matching-rules", http.StatusOK, "client:studio-a:c7"},
		{"unknown resource", http.MethodGet, "/t/studio-a/api/v1/invoices", http.StatusNotFound, ""},
		{"wrong method", http.MethodDelete, "/t/studio-a/api/v1/matching-rules/r1", http.StatusNotFound, ""},
		{"health", http.MethodGet, "/health", http.StatusOK, ""},
		{"ready", http.MethodGet, "/ready", http.StatusOK, ""},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, matcher := newMux(t)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			if tt.call != "" {
				assert.Equal(t, []string{tt.call}, matcher.calls)
			}
		})
	}
}

func TestRegisterServices_DefaultTenantRedirect(t *testing.T) {
	mux, _ := newMux(t)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/matching-rules", nil))

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/t/default/api/v1/matching-rules", rec.Header().Get("Location"))
}

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

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiohub/normative-matching-service/internal/matching_rules/model"
	"github.com/studiohub/normative-matching-service/internal/matching_rules/service"
	"github.com/studiohub/normative-matching-service/internal/system/config"
	errors2 "github.com/studiohub/normative-matching-service/internal/system/errors"
	"github.com/studiohub/normative-matching-service/internal/system/log"
	"github.com/studiohub/normative-matching-service/internal/system/security"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

type fakeService struct {
	rules    []model.MatchingRule
	ruleType string
}

func (f *fakeService) GetMatchingRules(_ context.Context, ruleType string) ([]model.MatchingRule, error) {
	f.ruleType = ruleType
	return f.rules, nil
}

func (f *fakeService) GetMatchingRule(_ context.Context, ruleId string) (*model.MatchingRule, error) {
	for i := range f.rules {
		if f.rules[i].RuleId == ruleId {
			return &f.rules[i], nil
		}
	}
	return nil, errors2.NewClientError(errors2.MATCHING_RULE_NOT_FOUND, http.StatusNotFound)
}

type fakeProvider struct {
	svc *fakeService
}

func (p *fakeProvider) GetMatchingRuleService() service.MatchingRuleServiceInterface {
	return p.svc
}

func newHandler(auth config.AuthConfig) (*MatchingRulesHandler, *fakeService) {
	svc := &fakeService{rules: []model.MatchingRule{
		{RuleId: "r1", Name: "IVA trimestrale", RuleType: "NORMATIVA", Priority: 10, IsActive: true},
	}}
	return NewMatchingRulesHandler(&fakeProvider{svc: svc}, security.NewAuthorizer(auth)), svc
}

func TestGetMatchingRules(t *testing.T) {
	h, svc := newHandler(config.AuthConfig{})

	rec := httptest.NewRecorder()
	h.GetMatchingRules(rec, httptest.NewRequest(http.MethodGet, "/matching-rules?rule_type=NORMATIVA", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "NORMATIVA", svc.ruleType)
	var body []model.MatchingRuleAPIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "IVA trimestrale", body[0].Name)
}

func TestGetMatchingRule(t *testing.T) {
	h, _ := newHandler(config.AuthConfig{})

	req := httptest.NewRequest(http.MethodGet, "/matching-rules/r1", nil)
	req.SetPathValue("ruleId", "r1")
	rec := httptest.NewRecorder()
	h.GetMatchingRule(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/matching-rules/r9", nil)
	req.SetPathValue("ruleId", "r9")
	rec = httptest.NewRecorder()
	h.GetMatchingRule(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMatchingRules_RequiresToken(t *testing.T) {
	h, _ := newHandler(config.AuthConfig{Enabled: true, JWTSecret: "secret"})

	rec := httptest.NewRecorder()
	h.GetMatchingRules(rec, httptest.NewRequest(http.MethodGet, "/matching-rules", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

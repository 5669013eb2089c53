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

package services

import (
	"net/http"
	"strings"

	matchingHandler "github.com/studiohub/normative-matching-service/internal/matching/handler"
	matchingProvider "github.com/studiohub/normative-matching-service/internal/matching/provider"
	ruleHandler "github.com/studiohub/normative-matching-service/internal/matching_rules/handler"
	ruleProvider "github.com/studiohub/normative-matching-service/internal/matching_rules/provider"
	"github.com/studiohub/normative-matching-service/internal/system/security"
)

// MatchingRulesService routes the /matching-rules endpoints.
type MatchingRulesService struct {
	rulesHandler    *ruleHandler.MatchingRulesHandler
	matchingHandler *matchingHandler.MatchingHandler
}

func NewMatchingRulesService(rules ruleProvider.MatchingRuleProviderInterface,
	matching matchingProvider.MatchingProviderInterface, authorize security.Authorizer) *MatchingRulesService {

	return &MatchingRulesService{
		rulesHandler:    ruleHandler.NewMatchingRulesHandler(rules, authorize),
		matchingHandler: matchingHandler.NewMatchingHandler(matching, authorize),
	}
}

// Route handles all tenant-aware matching rule endpoints
func (s *MatchingRulesService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method
	// /matching-rules/{ruleId}[/matches]
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")

	switch {
	case method == http.MethodGet && path == "/matching-rules":
		s.rulesHandler.GetMatchingRules(w, r)

	case method == http.MethodPost && path == "/matching-rules/matches":
		s.matchingHandler.RunTenantMatch(w, r)

	case method == http.MethodGet && len(segments) == 2:
		r.SetPathValue("ruleId", segments[1])
		s.rulesHandler.GetMatchingRule(w, r)

	case method == http.MethodPost && len(segments) == 3 && segments[2] == "matches":
		r.SetPathValue("ruleId", segments[1])
		s.matchingHandler.RunRuleMatch(w, r)

	default:
		http.NotFound(w, r)
	}
}

// ClientsService routes the /clients endpoints.
type ClientsService struct {
	matchingHandler *matchingHandler.MatchingHandler
}

func NewClientsService(matching matchingProvider.MatchingProviderInterface,
	authorize security.Authorizer) *ClientsService {

	return &ClientsService{
		matchingHandler: matchingHandler.NewMatchingHandler(matching, authorize),
	}
}

// Route handles the tenant-aware client endpoints.
func (s *ClientsService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	// /clients/{clientId}/matching-rules
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")

	switch {
	case r.Method == http.MethodGet && len(segments) == 3 && segments[2] == "matching-rules":
		r.SetPathValue("clientId", segments[1])
		s.matchingHandler.GetClientMatchingRules(w, r)

	default:
		http.NotFound(w, r)
	}
}

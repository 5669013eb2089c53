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
	"net/http"

	"github.com/studiohub/normative-matching-service/internal/matching_rules/model"
	"github.com/studiohub/normative-matching-service/internal/matching_rules/provider"
	"github.com/studiohub/normative-matching-service/internal/system/constants"
	"github.com/studiohub/normative-matching-service/internal/system/security"
	"github.com/studiohub/normative-matching-service/internal/system/utils"
)

type MatchingRulesHandler struct {
	provider  provider.MatchingRuleProviderInterface
	authorize security.Authorizer
}

func NewMatchingRulesHandler(provider provider.MatchingRuleProviderInterface,
	authorize security.Authorizer) *MatchingRulesHandler {

	return &MatchingRulesHandler{provider: provider, authorize: authorize}
}

// GetMatchingRules handles fetching all rules, optionally filtered by ?rule_type=.
func (h *MatchingRulesHandler) GetMatchingRules(w http.ResponseWriter, r *http.Request) {

	if _, err := h.authorize(r, constants.ScopeRulesView); err != nil {
		utils.HandleError(w, r, err)
		return
	}

	rules, err := h.provider.GetMatchingRuleService().GetMatchingRules(r.Context(), r.URL.Query().Get("rule_type"))
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}

	response := make([]model.MatchingRuleAPIResponse, 0, len(rules))
	for i := range rules {
		response = append(response, rules[i].ToAPIResponse())
	}
	utils.RespondJSON(w, http.StatusOK, response)
}

// GetMatchingRule handles fetching a single rule.
func (h *MatchingRulesHandler) GetMatchingRule(w http.ResponseWriter, r *http.Request) {

	if _, err := h.authorize(r, constants.ScopeRulesView); err != nil {
		utils.HandleError(w, r, err)
		return
	}
	ruleId, err := utils.RequirePathParam(r, "ruleId")
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}

	rule, err := h.provider.GetMatchingRuleService().GetMatchingRule(r.Context(), ruleId)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, rule.ToAPIResponse())
}

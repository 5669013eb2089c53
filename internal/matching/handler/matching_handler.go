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

	"github.com/studiohub/normative-matching-service/internal/matching/model"
	"github.com/studiohub/normative-matching-service/internal/matching/provider"
	"github.com/studiohub/normative-matching-service/internal/system/constants"
	ctxutil "github.com/studiohub/normative-matching-service/internal/system/context"
	"github.com/studiohub/normative-matching-service/internal/system/log"
	"github.com/studiohub/normative-matching-service/internal/system/security"
	"github.com/studiohub/normative-matching-service/internal/system/utils"
)

type MatchingHandler struct {
	provider  provider.MatchingProviderInterface
	authorize security.Authorizer
}

func NewMatchingHandler(provider provider.MatchingProviderInterface, authorize security.Authorizer) *MatchingHandler {
	return &MatchingHandler{provider: provider, authorize: authorize}
}

// RunRuleMatch evaluates one rule against the tenant's clients.
func (h *MatchingHandler) RunRuleMatch(w http.ResponseWriter, r *http.Request) {

	subject, err := h.authorize(r, constants.ScopeMatchRun)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	ruleId, err := utils.RequirePathParam(r, "ruleId")
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	var request model.RunMatchRequest
	if err := utils.DecodeJSONBody(r, &request, constants.MatchResultResource); err != nil {
		utils.HandleError(w, r, err)
		return
	}

	tenantId := utils.ExtractTenantId(r)
	matchingService := h.provider.GetMatchingService()
	var results []model.MatchResult
	if request.Notify {
		results, err = matchingService.MatchRuleAndNotify(r.Context(), ruleId, tenantId)
	} else {
		results, err = matchingService.MatchRule(r.Context(), ruleId, tenantId)
	}
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}

	response := model.RuleMatchesAPIResponse{RuleId: ruleId, Count: len(results), Matches: results}
	if len(results) > 0 {
		response.Method = results[0].Method
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   subject,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      ruleId,
		TargetType:    log.TargetTypeMatchingRule,
		ActionID:      log.ActionRunRuleMatch,
		TraceID:       ctxutil.GetTraceID(r.Context()),
		Data: map[string]interface{}{
			"tenant":  tenantId,
			"matches": len(results),
			"method":  response.Method,
			"notify":  request.Notify,
		},
	})
	utils.RespondJSON(w, http.StatusOK, response)
}

// RunTenantMatch evaluates every active rule for the tenant.
func (h *MatchingHandler) RunTenantMatch(w http.ResponseWriter, r *http.Request) {

	subject, err := h.authorize(r, constants.ScopeMatchRun)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}

	tenantId := utils.ExtractTenantId(r)
	report, err := h.provider.GetMatchingService().MatchAllRules(r.Context(), tenantId)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   subject,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      tenantId,
		TargetType:    log.TargetTypeTenant,
		ActionID:      log.ActionRunTenantMatch,
		TraceID:       ctxutil.GetTraceID(r.Context()),
		Data:          report,
	})
	utils.RespondJSON(w, http.StatusOK, report)
}

// GetClientMatchingRules lists the rules that currently apply to a client.
func (h *MatchingHandler) GetClientMatchingRules(w http.ResponseWriter, r *http.Request) {

	subject, err := h.authorize(r, constants.ScopeClientView)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	clientId, err := utils.RequirePathParam(r, "clientId")
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}

	rules, err := h.provider.GetMatchingService().MatchClientToRules(r.Context(), clientId, utils.ExtractTenantId(r))
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   subject,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      clientId,
		TargetType:    log.TargetTypeClient,
		ActionID:      log.ActionInspectClientFit,
		TraceID:       ctxutil.GetTraceID(r.Context()),
	})
	utils.RespondJSON(w, http.StatusOK, model.ClientRulesAPIResponse{
		ClientId: clientId,
		Count:    len(rules),
		Rules:    rules,
	})
}

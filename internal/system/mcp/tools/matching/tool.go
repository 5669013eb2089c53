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

package matching

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	matchingService "github.com/studiohub/normative-matching-service/internal/matching/service"
	ruleModel "github.com/studiohub/normative-matching-service/internal/matching_rules/model"
	ruleService "github.com/studiohub/normative-matching-service/internal/matching_rules/service"
)

// Tools exposes read-only matching operations of one tenant.
type Tools struct {
	tenantId string
	rules    ruleService.MatchingRuleServiceInterface
	matching matchingService.MatchingServiceInterface
}

func NewTools(tenantId string, rules ruleService.MatchingRuleServiceInterface,
	matching matchingService.MatchingServiceInterface) *Tools {

	return &Tools{tenantId: tenantId, rules: rules, matching: matching}
}

func (t *Tools) RegisterTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "nms_list_rules",
		Description: "List normative matching rules, optionally filtered by rule type.",
		Annotations: &mcp.ToolAnnotations{
			Title:        "List Matching Rules",
			ReadOnlyHint: true,
		},
	}, t.listRules)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "nms_match_rule",
		Description: "Find the clients of the studio a matching rule applies to, best match first.",
		Annotations: &mcp.ToolAnnotations{
			Title:        "Match Rule",
			ReadOnlyHint: true,
		},
	}, t.matchRule)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "nms_client_rules",
		Description: "List the active matching rules that currently apply to a client.",
		Annotations: &mcp.ToolAnnotations{
			Title:        "Client Rules",
			ReadOnlyHint: true,
		},
	}, t.clientRules)
}

func (t *Tools) listRules(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListRulesInput,
) (*mcp.CallToolResult, ListRulesOutput, error) {

	rules, err := t.rules.GetMatchingRules(ctx, input.RuleType)
	if err != nil {
		return nil, ListRulesOutput{}, fmt.Errorf("failed to list matching rules: %w", err)
	}
	out := ListRulesOutput{Rules: make([]ruleModel.MatchingRuleAPIResponse, 0, len(rules))}
	for i := range rules {
		out.Rules = append(out.Rules, rules[i].ToAPIResponse())
	}
	return nil, out, nil
}

func (t *Tools) matchRule(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MatchRuleInput,
) (*mcp.CallToolResult, MatchRuleOutput, error) {

	ruleId := strings.TrimSpace(input.RuleID)
	if ruleId == "" {
		return nil, MatchRuleOutput{}, fmt.Errorf("rule_id is required")
	}

	results, err := t.matching.MatchRule(ctx, ruleId, t.tenantId)
	if err != nil {
		return nil, MatchRuleOutput{}, fmt.Errorf("failed to match rule: %w", err)
	}
	return nil, MatchRuleOutput{RuleID: ruleId, Count: len(results), Matches: results}, nil
}

func (t *Tools) clientRules(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClientRulesInput,
) (*mcp.CallToolResult, ClientRulesOutput, error) {

	clientId := strings.TrimSpace(input.ClientID)
	if clientId == "" {
		return nil, ClientRulesOutput{}, fmt.Errorf("client_id is required")
	}

	rules, err := t.matching.MatchClientToRules(ctx, clientId, t.tenantId)
	if err != nil {
		return nil, ClientRulesOutput{}, fmt.Errorf("failed to resolve client rules: %w", err)
	}
	return nil, ClientRulesOutput{ClientID: clientId, Count: len(rules), Rules: rules}, nil
}

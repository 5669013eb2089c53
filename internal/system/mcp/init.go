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

package mcp

import (
	"net/http"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	matchingProvider "github.com/studiohub/normative-matching-service/internal/matching/provider"
	ruleProvider "github.com/studiohub/normative-matching-service/internal/matching_rules/provider"
	"github.com/studiohub/normative-matching-service/internal/system/constants"
	"github.com/studiohub/normative-matching-service/internal/system/security"
	"github.com/studiohub/normative-matching-service/internal/system/utils"
)

// MCPEndpointPath is the tenant relative path of the MCP endpoint.
const MCPEndpointPath = "/mcp"

// NewHandler returns the streamable MCP endpoint. It expects to run behind the tenant dispatcher and
// requires the match-run scope.
func NewHandler(rules ruleProvider.MatchingRuleProviderInterface, matching matchingProvider.MatchingProviderInterface,
	authorize security.Authorizer) http.Handler {

	mcpServer := newServer(rules, matching)

	// Streamable MCP over HTTP
	httpHandler := mcpsdk.NewStreamableHTTPHandler(func(r *http.Request) *mcpsdk.Server {
		return mcpServer.serverFor(utils.ExtractTenantId(r))
	}, nil)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := authorize(r, constants.ScopeMatchRun); err != nil {
			utils.HandleError(w, r, err)
			return
		}
		httpHandler.ServeHTTP(w, r)
	})
}

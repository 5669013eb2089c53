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
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	matchingProvider "github.com/studiohub/normative-matching-service/internal/matching/provider"
	ruleProvider "github.com/studiohub/normative-matching-service/internal/matching_rules/provider"
	matchingTools "github.com/studiohub/normative-matching-service/internal/system/mcp/tools/matching"
)

const serverVersion = "1.0.0"

// server builds one MCP server per tenant so every session stays scoped to the tenant it was opened for.
type server struct {
	rules    ruleProvider.MatchingRuleProviderInterface
	matching matchingProvider.MatchingProviderInterface

	mu      sync.Mutex
	servers map[string]*mcpsdk.Server
}

func newServer(rules ruleProvider.MatchingRuleProviderInterface,
	matching matchingProvider.MatchingProviderInterface) *server {

	return &server{
		rules:    rules,
		matching: matching,
		servers:  make(map[string]*mcpsdk.Server),
	}
}

func (s *server) serverFor(tenantId string) *mcpsdk.Server {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.servers[tenantId]; ok {
		return existing
	}
	mcpServer := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "normative-matching-" + tenantId,
		Version: serverVersion,
	}, nil)
	matchingTools.NewTools(tenantId, s.rules.GetMatchingRuleService(), s.matching.GetMatchingService()).
		RegisterTools(mcpServer)

	s.servers[tenantId] = mcpServer
	return mcpServer
}

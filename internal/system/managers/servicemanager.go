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
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	healthProvider "github.com/studiohub/normative-matching-service/internal/health_check/provider"
	matchingProvider "github.com/studiohub/normative-matching-service/internal/matching/provider"
	ruleProvider "github.com/studiohub/normative-matching-service/internal/matching_rules/provider"
	"github.com/studiohub/normative-matching-service/internal/system/constants"
	nmsmcp "github.com/studiohub/normative-matching-service/internal/system/mcp"
	"github.com/studiohub/normative-matching-service/internal/system/security"
	"github.com/studiohub/normative-matching-service/internal/system/services"
	"github.com/studiohub/normative-matching-service/internal/system/utils"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

// Providers carries the dependencies the HTTP services are built from.
type Providers struct {
	Health     healthProvider.HealthCheckProviderInterface
	Rules      ruleProvider.MatchingRuleProviderInterface
	Matching   matchingProvider.MatchingProviderInterface
	Authorizer security.Authorizer
}

type ServiceManager struct {
	mux       *http.ServeMux
	providers Providers
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux, providers Providers) ServiceManagerInterface {

	return &ServiceManager{
		mux:       mux,
		providers: providers,
	}
}

func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	utils.RewriteToDefaultTenant(apiBasePath, sm.mux, constants.DefaultTenant)

	healthService := services.NewHealthService(sm.providers.Health)
	rulesService := services.NewMatchingRulesService(sm.providers.Rules, sm.providers.Matching,
		sm.providers.Authorizer)
	clientsService := services.NewClientsService(sm.providers.Matching, sm.providers.Authorizer)
	mcpHandler := nmsmcp.NewHandler(sm.providers.Rules, sm.providers.Matching, sm.providers.Authorizer)

	sm.mux.HandleFunc("GET /health", healthService.Route)
	sm.mux.HandleFunc("GET /ready", healthService.Route)
	sm.mux.Handle("GET /metrics", promhttp.Handler())

	// Single tenant dispatcher for all services
	utils.MountTenantDispatcher(sm.mux, apiBasePath, func(w http.ResponseWriter, r *http.Request) {
		// Internal path after tenant and base path stripping
		path := strings.TrimSuffix(r.URL.Path, "/")

		switch {
		case path == "/"+constants.MatchingRulesApiPath || strings.HasPrefix(path, "/"+constants.MatchingRulesApiPath+"/"):
			rulesService.Route(w, r)
		case strings.HasPrefix(path, "/"+constants.ClientsApiPath+"/"):
			clientsService.Route(w, r)
		case path == nmsmcp.MCPEndpointPath:
			mcpHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
	return nil
}

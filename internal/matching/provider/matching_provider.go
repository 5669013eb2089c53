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

package provider

import (
	clientStore "github.com/studiohub/normative-matching-service/internal/clients/store"
	"github.com/studiohub/normative-matching-service/internal/matching/engine"
	"github.com/studiohub/normative-matching-service/internal/matching/service"
	ruleStore "github.com/studiohub/normative-matching-service/internal/matching_rules/store"
	dbprovider "github.com/studiohub/normative-matching-service/internal/system/database/provider"
)

// MatchingProviderInterface defines the interface for the matching provider.
type MatchingProviderInterface interface {
	GetMatchingService() service.MatchingServiceInterface
}

// MatchingProvider wires the matching service to the postgres stores.
type MatchingProvider struct {
	matchingService service.MatchingServiceInterface
}

// NewMatchingProvider creates a new instance of MatchingProvider.
func NewMatchingProvider(dbProvider dbprovider.DBProviderInterface, similarity engine.SimilarityBackend,
	opts service.Options) MatchingProviderInterface {

	return &MatchingProvider{
		matchingService: service.NewMatchingService(
			ruleStore.NewMatchingRuleStore(dbProvider),
			clientStore.NewClientStore(dbProvider),
			similarity,
			opts,
		),
	}
}

// GetMatchingService returns the matching service instance.
func (p *MatchingProvider) GetMatchingService() service.MatchingServiceInterface {
	return p.matchingService
}

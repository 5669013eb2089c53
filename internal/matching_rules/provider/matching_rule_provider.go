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
	"github.com/studiohub/normative-matching-service/internal/matching_rules/service"
	"github.com/studiohub/normative-matching-service/internal/matching_rules/store"
	dbprovider "github.com/studiohub/normative-matching-service/internal/system/database/provider"
)

// MatchingRuleProviderInterface defines the interface for the matching rule provider.
type MatchingRuleProviderInterface interface {
	GetMatchingRuleService() service.MatchingRuleServiceInterface
}

// MatchingRuleProvider is the default implementation of the MatchingRuleProviderInterface.
type MatchingRuleProvider struct {
	dbProvider dbprovider.DBProviderInterface
}

// NewMatchingRuleProvider creates a new instance of MatchingRuleProvider.
func NewMatchingRuleProvider(dbProvider dbprovider.DBProviderInterface) MatchingRuleProviderInterface {
	return &MatchingRuleProvider{dbProvider: dbProvider}
}

// GetMatchingRuleService returns the matching rule service instance.
func (p *MatchingRuleProvider) GetMatchingRuleService() service.MatchingRuleServiceInterface {
	return service.NewMatchingRuleService(store.NewMatchingRuleStore(p.dbProvider))
}

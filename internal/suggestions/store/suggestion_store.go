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

package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	matchModel "github.com/studiohub/normative-matching-service/internal/matching/model"
	"github.com/studiohub/normative-matching-service/internal/system/database/provider"
	"github.com/studiohub/normative-matching-service/internal/system/database/scripts"
	errors2 "github.com/studiohub/normative-matching-service/internal/system/errors"
	"github.com/studiohub/normative-matching-service/internal/system/log"
)

// SuggestionStore persists rule suggestions produced by matching. Re-running a match for the same
// tenant, rule and client refreshes the existing suggestion.
type SuggestionStore struct {
	dbProvider provider.DBProviderInterface
}

func NewSuggestionStore(dbProvider provider.DBProviderInterface) *SuggestionStore {
	return &SuggestionStore{dbProvider: dbProvider}
}

// SaveSuggestions upserts one suggestion per match result and returns the number stored.
func (s *SuggestionStore) SaveSuggestions(ctx context.Context, batch matchModel.RuleMatchBatch) (int, error) {

	logger := log.GetLogger().WithContext(ctx)
	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for storing suggestions of rule: %s", batch.RuleId)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.UpsertRuleSuggestion[s.dbProvider.GetDBType()]
	stored := 0
	for _, result := range batch.Results {
		_, err := dbClient.Execute(ctx, query, uuid.New().String(), batch.TenantId, batch.RuleId,
			result.ClientId, result.Score, result.Method)
		if err != nil {
			errorMsg := fmt.Sprintf("Failed to store suggestion of rule: %s for client: %s", batch.RuleId,
				result.ClientId)
			logger.Debug(errorMsg, log.Error(err))
			return stored, errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.STORE_SUGGESTION.Code,
				Message:     errors2.STORE_SUGGESTION.Message,
				Description: errorMsg,
			}, err)
		}
		stored++
	}

	logger.Debug(fmt.Sprintf("Stored %d suggestions for rule: %s", stored, batch.RuleId),
		log.String("tenant", batch.TenantId))
	return stored, nil
}

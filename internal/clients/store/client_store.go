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

	"github.com/pkg/errors"

	"github.com/studiohub/normative-matching-service/internal/clients/model"
	"github.com/studiohub/normative-matching-service/internal/system/database/client"
	"github.com/studiohub/normative-matching-service/internal/system/database/provider"
	"github.com/studiohub/normative-matching-service/internal/system/database/scripts"
	errors2 "github.com/studiohub/normative-matching-service/internal/system/errors"
	"github.com/studiohub/normative-matching-service/internal/system/log"
)

// ClientStore reads tenant clients and their profiles.
type ClientStore struct {
	dbProvider provider.DBProviderInterface
}

func NewClientStore(dbProvider provider.DBProviderInterface) *ClientStore {
	return &ClientStore{dbProvider: dbProvider}
}

// ListClientsWithProfiles returns every non-deleted client of the tenant with its optional profile in a
// single joined query.
func (s *ClientStore) ListClientsWithProfiles(ctx context.Context, tenantId string) ([]model.ClientWithProfile, error) {
	rows, err := s.query(ctx, scripts.ListClientsWithProfiles, tenantId, tenantId)
	if err != nil {
		return nil, err
	}
	return mapClients(rows)
}

// ListClientsWithEmbeddings returns the clients whose profile has an embedding vector.
func (s *ClientStore) ListClientsWithEmbeddings(ctx context.Context, tenantId string) ([]model.ClientWithProfile, error) {
	rows, err := s.query(ctx, scripts.ListClientsWithEmbeddings, tenantId, tenantId)
	if err != nil {
		return nil, err
	}
	return mapClients(rows)
}

// GetClientWithProfile returns nil, nil when the client does not exist in the tenant or is deleted.
func (s *ClientStore) GetClientWithProfile(ctx context.Context, tenantId, clientId string) (*model.ClientWithProfile, error) {
	rows, err := s.query(ctx, scripts.GetClientWithProfile, tenantId, tenantId, clientId)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		log.GetLogger().Debug(fmt.Sprintf("No client found for client_id: %s", clientId), log.String("tenant", tenantId))
		return nil, nil
	}
	entry, err := mapClient(rows[0])
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListTenants returns the tenants that own at least one client.
func (s *ClientStore) ListTenants(ctx context.Context) ([]string, error) {
	rows, err := s.query(ctx, scripts.ListTenants, "*")
	if err != nil {
		return nil, err
	}
	tenants := make([]string, 0, len(rows))
	for _, row := range rows {
		tenants = append(tenants, client.StringValue(row, "tenant_id"))
	}
	return tenants, nil
}

func (s *ClientStore) query(ctx context.Context, queries map[string]string, tenantId string,
	args ...interface{}) ([]map[string]interface{}, error) {

	logger := log.GetLogger().WithContext(ctx)
	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching clients of tenant: %s", tenantId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	rows, err := dbClient.ExecuteQuery(ctx, queries[s.dbProvider.GetDBType()], args...)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching clients of tenant: %s", tenantId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CLIENTS.Code,
			Message:     errors2.FETCH_CLIENTS.Message,
			Description: errorMsg,
		}, err)
	}
	return rows, nil
}

func mapClients(rows []map[string]interface{}) ([]model.ClientWithProfile, error) {
	clients := make([]model.ClientWithProfile, 0, len(rows))
	for _, row := range rows {
		entry, err := mapClient(row)
		if err != nil {
			return nil, err
		}
		clients = append(clients, entry)
	}
	return clients, nil
}

func mapClient(row map[string]interface{}) (model.ClientWithProfile, error) {
	var entry model.ClientWithProfile
	c := model.Client{
		ClientId:      client.StringValue(row, "client_id"),
		TenantId:      client.StringValue(row, "tenant_id"),
		DisplayName:   client.StringValue(row, "display_name"),
		FiscalCode:    client.StringValue(row, "fiscal_code"),
		VatNumber:     client.StringValue(row, "vat_number"),
		LegalForm:     client.StringValue(row, "legal_form"),
		Status:        client.StringValue(row, "status"),
		Region:        client.StringValue(row, "region"),
		Province:      client.StringValue(row, "province"),
		City:          client.StringValue(row, "city"),
		AtecoCode:     client.StringValue(row, "ateco_code"),
		Employees:     client.NullableIntValue(row, "employees"),
		AnnualRevenue: client.NullableFloatValue(row, "annual_revenue"),
		CreatedAt:     client.TimeValue(row, "created_at"),
	}

	var err error
	if c.Tags, err = client.StringArrayValue(row, "tags"); err != nil {
		return entry, decodeError(c.ClientId, "tags", err)
	}
	if c.Attributes, err = client.JSONMapValue(row, "attributes"); err != nil {
		return entry, decodeError(c.ClientId, "attributes", err)
	}
	entry.Client = c

	if client.StringValue(row, "profile_client_id") == "" {
		return entry, nil
	}
	p := &model.ClientProfile{
		ClientId:        c.ClientId,
		Settore:         client.StringValue(row, "settore"),
		RegimeFiscale:   client.StringValue(row, "regime_fiscale"),
		FasciaFatturato: client.StringValue(row, "fascia_fatturato"),
	}
	if p.Certifications, err = client.StringArrayValue(row, "certifications"); err != nil {
		return entry, decodeError(c.ClientId, "certifications", err)
	}
	if p.Attributes, err = client.JSONMapValue(row, "profile_attributes"); err != nil {
		return entry, decodeError(c.ClientId, "profile_attributes", err)
	}
	if p.ProfileVector, err = client.FloatArrayValue(row, "profile_vector"); err != nil {
		return entry, decodeError(c.ClientId, "profile_vector", err)
	}
	entry.Profile = p
	return entry, nil
}

func decodeError(clientId, column string, err error) error {
	errorMsg := fmt.Sprintf("Failed to decode column %s of client: %s", column, clientId)
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.FETCH_CLIENTS.Code,
		Message:     errors2.FETCH_CLIENTS.Message,
		Description: errorMsg,
	}, errors.Wrap(err, column))
}

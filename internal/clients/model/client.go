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

package model

import "time"

// Client is a tenant's customer record.
type Client struct {
	ClientId      string                 `json:"client_id"`
	TenantId      string                 `json:"tenant_id"`
	DisplayName   string                 `json:"display_name"`
	FiscalCode    string                 `json:"fiscal_code,omitempty"`
	VatNumber     string                 `json:"vat_number,omitempty"`
	LegalForm     string                 `json:"legal_form,omitempty"`
	Status        string                 `json:"status,omitempty"`
	Region        string                 `json:"region,omitempty"`
	Province      string                 `json:"province,omitempty"`
	City          string                 `json:"city,omitempty"`
	AtecoCode     string                 `json:"ateco_code,omitempty"`
	Employees     *int                   `json:"employees,omitempty"`
	AnnualRevenue *float64               `json:"annual_revenue,omitempty"`
	Tags          []string               `json:"tags,omitempty"`
	Attributes    map[string]interface{} `json:"attributes,omitempty"`
	CreatedAt     *time.Time             `json:"created_at,omitempty"`
}

// ClientProfile is the optional companion record of a client. ProfileVector is nil when no embedding
// has been computed for the client.
type ClientProfile struct {
	ClientId        string                 `json:"client_id"`
	Settore         string                 `json:"settore,omitempty"`
	RegimeFiscale   string                 `json:"regime_fiscale,omitempty"`
	FasciaFatturato string                 `json:"fascia_fatturato,omitempty"`
	Certifications  []string               `json:"certifications,omitempty"`
	Attributes      map[string]interface{} `json:"attributes,omitempty"`
	ProfileVector   []float32              `json:"-"`
}

// ClientWithProfile pairs a client with its profile, if any.
type ClientWithProfile struct {
	Client  Client
	Profile *ClientProfile
}

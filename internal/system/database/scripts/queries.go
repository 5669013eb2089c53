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

package scripts

const matchingRuleColumns = `rule_id, name, rule_type, conditions::text AS conditions, priority, is_active, valid_from,
       valid_to, COALESCE(category, '') AS category, COALESCE(source_reference, '') AS source_reference,
       COALESCE(description, '') AS description`

var GetMatchingRuleById = map[string]string{
	"postgres": `SELECT ` + matchingRuleColumns + ` FROM matching_rules WHERE rule_id = $1`,
}

var ListActiveMatchingRules = map[string]string{
	"postgres": `SELECT ` + matchingRuleColumns + ` FROM matching_rules WHERE is_active = TRUE
       ORDER BY priority DESC, name`,
}

var ListMatchingRules = map[string]string{
	"postgres": `SELECT ` + matchingRuleColumns + ` FROM matching_rules ORDER BY priority DESC, name`,
}

const clientColumns = `c.client_id, c.tenant_id, c.display_name, COALESCE(c.fiscal_code, '') AS fiscal_code,
       COALESCE(c.vat_number, '') AS vat_number, COALESCE(c.legal_form, '') AS legal_form,
       COALESCE(c.status, '') AS status, COALESCE(c.region, '') AS region, COALESCE(c.province, '') AS province,
       COALESCE(c.city, '') AS city, COALESCE(c.ateco_code, '') AS ateco_code, c.employees, c.annual_revenue,
       c.tags::text AS tags, c.attributes::text AS attributes, c.created_at`

const profileColumns = `p.client_id AS profile_client_id, p.settore, p.regime_fiscale, p.fascia_fatturato,
       p.certifications::text AS certifications, p.attributes::text AS profile_attributes,
       p.profile_vector::text AS profile_vector`

var ListClientsWithProfiles = map[string]string{
	"postgres": `SELECT ` + clientColumns + `, ` + profileColumns + `
       FROM clients c LEFT JOIN client_profiles p ON p.client_id = c.client_id
       WHERE c.tenant_id = $1 AND c.is_deleted = FALSE
       ORDER BY c.created_at, c.client_id`,
}

var ListClientsWithEmbeddings = map[string]string{
	"postgres": `SELECT ` + clientColumns + `, ` + profileColumns + `
       FROM clients c JOIN client_profiles p ON p.client_id = c.client_id
       WHERE c.tenant_id = $1 AND c.is_deleted = FALSE AND p.profile_vector IS NOT NULL
       ORDER BY c.created_at, c.client_id`,
}

var GetClientWithProfile = map[string]string{
	"postgres": `SELECT ` + clientColumns + `, ` + profileColumns + `
       FROM clients c LEFT JOIN client_profiles p ON p.client_id = c.client_id
       WHERE c.tenant_id = $1 AND c.client_id = $2 AND c.is_deleted = FALSE`,
}

var ListTenants = map[string]string{
	"postgres": `SELECT DISTINCT tenant_id FROM clients WHERE is_deleted = FALSE ORDER BY tenant_id`,
}

var UpsertRuleSuggestion = map[string]string{
	"postgres": `INSERT INTO rule_suggestions (suggestion_id, tenant_id, rule_id, client_id, score, method)
       VALUES ($1, $2, $3, $4, $5, $6)
       ON CONFLICT (tenant_id, rule_id, client_id)
       DO UPDATE SET score = EXCLUDED.score, method = EXCLUDED.method, updated_at = now()`,
}

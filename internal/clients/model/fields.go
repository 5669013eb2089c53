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

import "strings"

const attributesPrefix = "attributes."

// clientFields maps rule field names to client accessors. Unset values resolve to nil.
var clientFields = map[string]func(c *Client) interface{}{
	"client_id":      func(c *Client) interface{} { return optString(c.ClientId) },
	"display_name":   func(c *Client) interface{} { return optString(c.DisplayName) },
	"fiscal_code":    func(c *Client) interface{} { return optString(c.FiscalCode) },
	"vat_number":     func(c *Client) interface{} { return optString(c.VatNumber) },
	"legal_form":     func(c *Client) interface{} { return optString(c.LegalForm) },
	"status":         func(c *Client) interface{} { return optString(c.Status) },
	"region":         func(c *Client) interface{} { return optString(c.Region) },
	"province":       func(c *Client) interface{} { return optString(c.Province) },
	"city":           func(c *Client) interface{} { return optString(c.City) },
	"ateco_code":     func(c *Client) interface{} { return optString(c.AtecoCode) },
	"employees":      func(c *Client) interface{} { return optInt(c.Employees) },
	"annual_revenue": func(c *Client) interface{} { return optFloat(c.AnnualRevenue) },
	"tags":           func(c *Client) interface{} { return optStrings(c.Tags) },
}

var profileFields = map[string]func(p *ClientProfile) interface{}{
	"settore":          func(p *ClientProfile) interface{} { return optString(p.Settore) },
	"regime_fiscale":   func(p *ClientProfile) interface{} { return optString(p.RegimeFiscale) },
	"fascia_fatturato": func(p *ClientProfile) interface{} { return optString(p.FasciaFatturato) },
	"certifications":   func(p *ClientProfile) interface{} { return optStrings(p.Certifications) },
}

// Field resolves a rule field name against the client. Names outside the registry are looked up in the
// attribute bag, where dots walk nested objects.
func (c *Client) Field(name string) interface{} {
	if c == nil {
		return nil
	}
	if accessor, ok := clientFields[name]; ok {
		return accessor(c)
	}
	return lookupAttribute(c.Attributes, name)
}

// Field resolves a rule field name against the profile.
func (p *ClientProfile) Field(name string) interface{} {
	if p == nil {
		return nil
	}
	if accessor, ok := profileFields[name]; ok {
		return accessor(p)
	}
	return lookupAttribute(p.Attributes, name)
}

// HasEmbedding reports whether the profile carries a usable vector.
func (p *ClientProfile) HasEmbedding() bool {
	return p != nil && len(p.ProfileVector) > 0
}

func lookupAttribute(attributes map[string]interface{}, name string) interface{} {
	if len(attributes) == 0 || name == "" {
		return nil
	}
	if v, ok := attributes[name]; ok {
		return v
	}
	path := strings.TrimPrefix(name, attributesPrefix)
	var current interface{} = attributes
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = node[segment]
		if !ok {
			return nil
		}
	}
	return current
}

func optString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func optInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}

func optFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func optStrings(s []string) interface{} {
	if s == nil {
		return nil
	}
	return s
}

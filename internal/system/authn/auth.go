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

package authn

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/studiohub/normative-matching-service/internal/system/config"
	errors2 "github.com/studiohub/normative-matching-service/internal/system/errors"
	"github.com/studiohub/normative-matching-service/internal/system/log"
)

const tenantClaim = "tenant"

// Principal is the authenticated caller of a request.
type Principal struct {
	Subject string
	Tenant  string
	Scopes  []string
}

// HasScope reports whether the principal was granted the scope.
func (p *Principal) HasScope(scope string) bool {
	return p != nil && slices.Contains(p.Scopes, scope)
}

// ValidateToken verifies an HS256 bearer token and checks that it was issued for the tenant of the request.
func ValidateToken(token, tenant string, conf config.AuthConfig) (*Principal, error) {

	logger := log.GetLogger()
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if conf.Audience != "" {
		options = append(options, jwt.WithAudience(conf.Audience))
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(conf.JWTSecret), nil
	}, options...)
	if err != nil {
		logger.Debug("Error occurred when validating the access token.", log.Error(err))
		return nil, unauthorizedError("Invalid or expired access token")
	}

	tokenTenant, _ := claims[tenantClaim].(string)
	if tokenTenant != tenant {
		logger.Debug(fmt.Sprintf("Token tenant %q does not match request tenant %q", tokenTenant, tenant))
		return nil, unauthorizedError("Access token was not issued for this tenant")
	}

	subject, _ := claims.GetSubject()
	scope, _ := claims["scope"].(string)
	return &Principal{
		Subject: subject,
		Tenant:  tokenTenant,
		Scopes:  strings.Fields(scope),
	}, nil
}

func unauthorizedError(description string) error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.UN_AUTHORIZED.Code,
		Message:     errors2.UN_AUTHORIZED.Message,
		Description: description,
	}, http.StatusUnauthorized)
}

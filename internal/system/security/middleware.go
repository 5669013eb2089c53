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

package security

import (
	"net/http"
	"strings"

	"github.com/studiohub/normative-matching-service/internal/system/authn"
	"github.com/studiohub/normative-matching-service/internal/system/config"
	ctxutil "github.com/studiohub/normative-matching-service/internal/system/context"
	"github.com/studiohub/normative-matching-service/internal/system/errors"
	"github.com/studiohub/normative-matching-service/internal/system/log"
)

// Authorizer authenticates a request and checks it carries the scope. It returns the caller's subject.
type Authorizer func(r *http.Request, scope string) (string, error)

// NewAuthorizer returns an Authorizer for the given settings. With authentication disabled every request
// is accepted as an anonymous caller.
func NewAuthorizer(conf config.AuthConfig) Authorizer {
	return func(r *http.Request, scope string) (string, error) {
		if !conf.Enabled {
			return "", nil
		}
		return authnAndAuthz(r, scope, conf)
	}
}

func authnAndAuthz(r *http.Request, scope string, conf config.AuthConfig) (string, error) {

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errors.NewClientError(errors.ErrorMessage{
			Code:        errors.UN_AUTHORIZED.Code,
			Message:     errors.UN_AUTHORIZED.Message,
			Description: "Missing or invalid Authorization header",
		}, http.StatusUnauthorized)
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	principal, err := authn.ValidateToken(token, ctxutil.GetTenant(r.Context()), conf)
	if err != nil {
		log.GetLogger().WithContext(r.Context()).Audit(log.AuditEvent{
			InitiatorID:   "unknown",
			InitiatorType: log.InitiatorTypeUser,
			TargetID:      ctxutil.GetTenant(r.Context()),
			TargetType:    log.TargetTypeTenant,
			ActionID:      log.ActionAuthenticationFailure,
			TraceID:       ctxutil.GetTraceID(r.Context()),
		})
		return "", err
	}

	if !principal.HasScope(scope) {
		return "", errors.NewClientError(errors.ErrorMessage{
			Code:        errors.FORBIDDEN.Code,
			Message:     errors.FORBIDDEN.Message,
			Description: "Do not have permission to perform this operation",
		}, http.StatusForbidden)
	}
	return principal.Subject, nil
}

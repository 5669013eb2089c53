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

package engine

import (
	"strings"

	clientModel "github.com/studiohub/normative-matching-service/internal/clients/model"
	"github.com/studiohub/normative-matching-service/internal/system/constants"
)

// Resolve looks up a rule field for a client. A "profile." path is resolved against the profile when the
// client has one; otherwise the literal path is resolved against the client. Missing values are nil.
func Resolve(client *clientModel.Client, profile *clientModel.ClientProfile, path string) interface{} {
	if profile != nil && strings.HasPrefix(path, constants.ProfileFieldPrefix) {
		return profile.Field(strings.TrimPrefix(path, constants.ProfileFieldPrefix))
	}
	return client.Field(path)
}

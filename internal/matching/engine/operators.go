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

	"github.com/studiohub/normative-matching-service/internal/system/constants"
	"github.com/studiohub/normative-matching-service/internal/system/utils"
)

// Compare applies a leaf operator to a resolved value. A nil actual value never matches and unknown
// operators are false.
func Compare(actual interface{}, op string, expected interface{}) bool {
	if actual == nil {
		return false
	}

	switch op {
	case constants.OpEq:
		return expected != nil && utils.ToString(actual) == utils.ToString(expected)
	case constants.OpNeq:
		return expected == nil || utils.ToString(actual) != utils.ToString(expected)
	case constants.OpIn:
		options, ok := utils.ToSlice(expected)
		if !ok {
			return false
		}
		needle := utils.ToString(actual)
		for _, option := range options {
			if option != nil && utils.ToString(option) == needle {
				return true
			}
		}
		return false
	case constants.OpContains:
		if expected == nil {
			return false
		}
		needle := utils.ToString(expected)
		if s, ok := actual.(string); ok {
			return strings.Contains(s, needle)
		}
		items, ok := utils.ToSlice(actual)
		if !ok {
			return false
		}
		for _, item := range items {
			if item != nil && utils.ToString(item) == needle {
				return true
			}
		}
		return false
	case constants.OpGte, constants.OpLte:
		a, ok := utils.ToFloat64(actual)
		if !ok {
			return false
		}
		e, ok := utils.ToFloat64(expected)
		if !ok {
			return false
		}
		if op == constants.OpGte {
			return a >= e
		}
		return a <= e
	default:
		return false
	}
}

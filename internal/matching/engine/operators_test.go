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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		actual   interface{}
		op       string
		expected interface{}
		want     bool
	}{
		{"eq strings", "active", "eq", "active", true},
		{"eq number and text", 5, "eq", "5", true},
		{"eq float and int", 5.0, "eq", 5, true},
		{"eq mismatch", "active", "eq", "inactive", false},
		{"eq nil expected", "active", "eq", nil, false},
		{"neq", "active", "neq", "inactive", true},
		{"neq same", "5", "neq", 5, false},
		{"in list", "c", "in", []interface{}{"a", "b", "c"}, true},
		{"in list mixed types", 3, "in", []interface{}{"1", "3"}, true},
		{"in missing", "d", "in", []interface{}{"a", "b", "c"}, false},
		{"in non-list expected", "c", "in", "c", false},
		{"contains list", []string{"export", "pmi"}, "contains", "pmi", true},
		{"contains list miss", []interface{}{"export"}, "contains", "pmi", false},
		{"contains substring", "commercio al dettaglio", "contains", "dettaglio", true},
		{"contains substring miss", "servizi", "contains", "commercio", false},
		{"contains number actual", 42, "contains", "4", false},
		{"gte", 15, "gte", 10, true},
		{"gte equal", 10.0, "gte", "10", true},
		{"gte below", 5, "gte", 10, false},
		{"lte", "3.5", "lte", 4, true},
		{"lte above", 5, "lte", 4, false},
		{"numeric coercion failure", "many", "gte", 10, false},
		{"numeric expected failure", 10, "lte", "few", false},
		{"unknown operator", "a", "like", "a", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.actual, tt.op, tt.expected))
		})
	}
}

func TestCompare_NilActualNeverMatches(t *testing.T) {
	for _, op := range []string{"eq", "neq", "in", "contains", "gte", "lte", "unknown"} {
		for _, expected := range []interface{}{nil, "x", 1, []interface{}{nil, "x"}} {
			assert.False(t, Compare(nil, op, expected), "op %s expected %v", op, expected)
		}
	}
}

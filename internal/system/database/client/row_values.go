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

package client

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/lib/pq"
)

// Row helpers convert the loosely typed values returned by ExecuteQuery. The lib/pq driver hands back
// text columns as string, integers as int64, floats as float64, dates as time.Time and everything else
// (jsonb, arrays) as raw []byte.

// StringValue returns the column as a string, or "" when NULL.
func StringValue(row map[string]interface{}, column string) string {
	switch v := row[column].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

// IntValue returns the column as an int, or 0 when NULL or not numeric.
func IntValue(row map[string]interface{}, column string) int {
	switch v := row[column].(type) {
	case int64:
		return int(v)
	case int32:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	case []byte:
		i, _ := strconv.Atoi(string(v))
		return i
	default:
		return 0
	}
}

// NullableIntValue returns nil for NULL columns.
func NullableIntValue(row map[string]interface{}, column string) *int {
	if row[column] == nil {
		return nil
	}
	v := IntValue(row, column)
	return &v
}

// NullableFloatValue returns nil for NULL columns.
func NullableFloatValue(row map[string]interface{}, column string) *float64 {
	var out float64
	switch v := row[column].(type) {
	case float64:
		out = v
	case float32:
		out = float64(v)
	case int64:
		out = float64(v)
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return nil
		}
		out = f
	default:
		return nil
	}
	return &out
}

// BoolValue returns the column as a bool, false when NULL.
func BoolValue(row map[string]interface{}, column string) bool {
	v, _ := row[column].(bool)
	return v
}

// TimeValue returns nil for NULL columns.
func TimeValue(row map[string]interface{}, column string) *time.Time {
	v, ok := row[column].(time.Time)
	if !ok {
		return nil
	}
	return &v
}

// StringArrayValue decodes a postgres text[] column.
func StringArrayValue(row map[string]interface{}, column string) ([]string, error) {
	raw := row[column]
	if raw == nil {
		return nil, nil
	}
	var arr pq.StringArray
	if err := arr.Scan(toBytes(raw)); err != nil {
		return nil, err
	}
	return []string(arr), nil
}

// FloatArrayValue decodes a postgres double precision[] column into a float32 vector.
func FloatArrayValue(row map[string]interface{}, column string) ([]float32, error) {
	raw := row[column]
	if raw == nil {
		return nil, nil
	}
	var arr pq.Float64Array
	if err := arr.Scan(toBytes(raw)); err != nil {
		return nil, err
	}
	out := make([]float32, len(arr))
	for i, f := range arr {
		out[i] = float32(f)
	}
	return out, nil
}

// JSONMapValue decodes a jsonb object column; NULL yields a nil map.
func JSONMapValue(row map[string]interface{}, column string) (map[string]interface{}, error) {
	raw := row[column]
	if raw == nil {
		return nil, nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(toBytes(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func toBytes(v interface{}) []byte {
	switch t := v.(type) {
	case []byte:
		return t
	case string:
		return []byte(t)
	default:
		return nil
	}
}

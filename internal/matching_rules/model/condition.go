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

import (
	"encoding/json"
	"strings"
)

// Condition is a node of a matching rule condition tree. It is either a Leaf or a Group.
type Condition interface {
	isCondition()
}

// Leaf compares one resolved field against a literal.
type Leaf struct {
	Field string      `json:"field"`
	Op    string      `json:"op"`
	Value interface{} `json:"value"`
}

// Group combines child conditions with AND or OR.
type Group struct {
	Operator string      `json:"operator"`
	Rules    []Condition `json:"rules"`
}

func (Leaf) isCondition()  {}
func (Group) isCondition() {}

// Nested reports whether any child of the group is itself a group.
func (g Group) Nested() bool {
	for _, child := range g.Rules {
		if _, ok := child.(Group); ok {
			return true
		}
	}
	return false
}

// ParseConditions decodes a stored condition tree. Empty input and JSON null yield a nil Condition.
func ParseConditions(raw []byte) (Condition, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	var decoded interface{}
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return nil, err
	}
	return ConditionFromValue(decoded), nil
}

// ConditionFromValue builds a condition tree from loosely typed JSON data. It never fails: entries that are
// neither a group nor a leaf become an empty Leaf, which never matches.
func ConditionFromValue(v interface{}) Condition {
	if v == nil {
		return nil
	}
	node, ok := v.(map[string]interface{})
	if !ok {
		return Leaf{}
	}

	_, hasOperator := node["operator"]
	_, hasRules := node["rules"]
	if hasOperator || hasRules {
		operator, _ := node["operator"].(string)
		group := Group{Operator: strings.ToUpper(strings.TrimSpace(operator))}
		if children, ok := node["rules"].([]interface{}); ok {
			group.Rules = make([]Condition, 0, len(children))
			for _, child := range children {
				c := ConditionFromValue(child)
				if c == nil {
					c = Leaf{}
				}
				group.Rules = append(group.Rules, c)
			}
		}
		return group
	}

	field, _ := node["field"].(string)
	op, _ := node["op"].(string)
	return Leaf{
		Field: strings.TrimSpace(field),
		Op:    strings.ToLower(strings.TrimSpace(op)),
		Value: node["value"],
	}
}

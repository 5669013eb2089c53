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
	"math"

	clientModel "github.com/studiohub/normative-matching-service/internal/clients/model"
	ruleModel "github.com/studiohub/normative-matching-service/internal/matching_rules/model"
	"github.com/studiohub/normative-matching-service/internal/system/constants"
)

// Evaluator scores a condition tree against a client and its optional profile.
//
// In nested mode a child group counts as true when its own score is above zero. In flat mode only the
// first level is inspected and child groups never match.
type Evaluator struct {
	mode string
}

func NewEvaluator(mode string) *Evaluator {
	if mode != constants.ConditionModeFlat {
		mode = constants.ConditionModeNested
	}
	return &Evaluator{mode: mode}
}

func (e *Evaluator) Mode() string {
	return e.mode
}

// Evaluate returns a score in [0,1]. It has no side effects.
func (e *Evaluator) Evaluate(cond ruleModel.Condition, client *clientModel.Client,
	profile *clientModel.ClientProfile) float64 {

	switch c := cond.(type) {
	case ruleModel.Group:
		return e.scoreGroup(c, client, profile)
	case ruleModel.Leaf:
		if leafTrue(c, client, profile) {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func (e *Evaluator) scoreGroup(group ruleModel.Group, client *clientModel.Client,
	profile *clientModel.ClientProfile) float64 {

	if len(group.Rules) == 0 {
		return 0
	}
	if group.Operator != constants.GroupAnd && group.Operator != constants.GroupOr {
		return 0
	}

	matched := 0
	for _, child := range group.Rules {
		if e.childTrue(child, client, profile) {
			matched++
		} else if group.Operator == constants.GroupAnd {
			return 0
		}
	}

	if group.Operator == constants.GroupAnd {
		return 1
	}
	return roundScore(float64(matched) / float64(len(group.Rules)))
}

func (e *Evaluator) childTrue(child ruleModel.Condition, client *clientModel.Client,
	profile *clientModel.ClientProfile) bool {

	switch c := child.(type) {
	case ruleModel.Leaf:
		return leafTrue(c, client, profile)
	case ruleModel.Group:
		if e.mode == constants.ConditionModeFlat {
			return false
		}
		return e.scoreGroup(c, client, profile) > 0
	default:
		return false
	}
}

func leafTrue(leaf ruleModel.Leaf, client *clientModel.Client, profile *clientModel.ClientProfile) bool {
	if leaf.Field == "" || leaf.Op == "" {
		return false
	}
	return Compare(Resolve(client, profile, leaf.Field), leaf.Op, leaf.Value)
}

func roundScore(score float64) float64 {
	scale := math.Pow(10, constants.ScoreDecimals)
	return math.Round(score*scale) / scale
}

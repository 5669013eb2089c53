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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nms"

var (
	// RuleMatchDuration tracks forward match latency by the method that produced the result.
	RuleMatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "matching",
			Name:      "rule_match_duration_seconds",
			Help:      "Duration of forward rule matches in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method"},
	)

	// RuleMatchesTotal counts matched clients by method.
	RuleMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "matching",
			Name:      "matches_total",
			Help:      "Total number of clients matched by rules",
		},
		[]string{"method"},
	)

	// RuleEvaluationFailures counts rules that failed during batch evaluation.
	RuleEvaluationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "matching",
			Name:      "rule_failures_total",
			Help:      "Total number of rules that failed during batch evaluation",
		},
	)

	// DeliveryFailures counts downstream delivery failures by sink.
	DeliveryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "delivery",
			Name:      "failures_total",
			Help:      "Total number of failed match deliveries",
		},
		[]string{"sink"},
	)

	// DeliveryDropped counts match batches dropped because the delivery queue was full.
	DeliveryDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "delivery",
			Name:      "dropped_total",
			Help:      "Total number of match batches dropped on a full queue",
		},
	)

	// EmbeddingCacheHits counts query embeddings served from cache.
	EmbeddingCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "embedding",
			Name:      "cache_lookups_total",
			Help:      "Query embedding cache lookups by result",
		},
		[]string{"result"},
	)
)

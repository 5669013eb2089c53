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

package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/studiohub/normative-matching-service/internal/matching/model"
	"github.com/studiohub/normative-matching-service/internal/system/constants"
	"github.com/studiohub/normative-matching-service/internal/system/log"
	"github.com/studiohub/normative-matching-service/internal/system/metrics"
)

const deliveryTimeout = 10 * time.Second

// SuggestionSaver persists match results as suggestions.
type SuggestionSaver interface {
	SaveSuggestions(ctx context.Context, batch model.RuleMatchBatch) (int, error)
}

// NotificationPublisher notifies subscribers about new matches.
type NotificationPublisher interface {
	PublishMatches(ctx context.Context, batch model.RuleMatchBatch) error
}

// MatchDeliveryWorker consumes match batches from a bounded queue and hands them to the suggestion store
// and the notification publisher. Delivery failures are logged and never reach the producer.
type MatchDeliveryWorker struct {
	queue       chan model.RuleMatchBatch
	suggestions SuggestionSaver
	publisher   NotificationPublisher

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewMatchDeliveryWorker creates a worker. A nil publisher disables notifications.
func NewMatchDeliveryWorker(queueSize int, suggestions SuggestionSaver,
	publisher NotificationPublisher) *MatchDeliveryWorker {

	if queueSize <= 0 {
		queueSize = constants.DefaultQueueSize
	}
	return &MatchDeliveryWorker{
		queue:       make(chan model.RuleMatchBatch, queueSize),
		suggestions: suggestions,
		publisher:   publisher,
	}
}

// Start launches the consumer. Batches still queued when Stop is called are delivered before it returns.
func (w *MatchDeliveryWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		// Deliveries ignore cancellation of ctx; Stop drains the queue.
		base := context.WithoutCancel(ctx)
		for batch := range w.queue {
			w.deliver(base, batch)
		}
	}()
}

// Submit enqueues a batch without blocking. It returns false when the queue is full or stopped.
func (w *MatchDeliveryWorker) Submit(batch model.RuleMatchBatch) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return false
	}

	select {
	case w.queue <- batch:
		return true
	default:
		metrics.DeliveryDropped.Inc()
		log.GetLogger().Warn(fmt.Sprintf("Delivery queue is full, dropping matches of rule: %s", batch.RuleId),
			log.String("tenant", batch.TenantId), log.Int("matches", len(batch.Results)))
		return false
	}
}

// Stop closes the queue and waits for the consumer to drain it.
func (w *MatchDeliveryWorker) Stop() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()
	w.wg.Wait()
}

func (w *MatchDeliveryWorker) deliver(base context.Context, batch model.RuleMatchBatch) {

	ctx, cancel := context.WithTimeout(base, deliveryTimeout)
	defer cancel()
	logger := log.GetLogger().With(log.String("tenant", batch.TenantId), log.String("rule", batch.RuleId))

	if w.suggestions != nil {
		saved, err := w.suggestions.SaveSuggestions(ctx, batch)
		if err != nil {
			metrics.DeliveryFailures.WithLabelValues("suggestions").Inc()
			logger.Warn("Failed to persist match suggestions", log.Error(err))
		} else {
			logger.Debug(fmt.Sprintf("Persisted %d match suggestions", saved))
		}
	}

	if w.publisher != nil {
		if err := w.publisher.PublishMatches(ctx, batch); err != nil {
			metrics.DeliveryFailures.WithLabelValues("notifications").Inc()
			logger.Warn("Failed to publish match notifications", log.Error(err))
		}
	}
}

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

package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	matchModel "github.com/studiohub/normative-matching-service/internal/matching/model"
	"github.com/studiohub/normative-matching-service/internal/system/config"
	errors2 "github.com/studiohub/normative-matching-service/internal/system/errors"
	"github.com/studiohub/normative-matching-service/internal/system/log"
)

const eventTypeRuleMatched = "rule.matched"

// MatchNotification is the message sent for every matched client.
type MatchNotification struct {
	EventType string    `json:"event_type"`
	TenantId  string    `json:"tenant_id"`
	RuleId    string    `json:"rule_id"`
	RuleName  string    `json:"rule_name"`
	RuleType  string    `json:"rule_type"`
	ClientId  string    `json:"client_id"`
	Score     float64   `json:"score"`
	Method    string    `json:"method"`
	Timestamp time.Time `json:"timestamp"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes match notifications to a Kafka topic, keyed by client so a client's notifications
// stay ordered within a partition.
type Publisher struct {
	writer messageWriter
	topic  string
	now    func() time.Time
}

func NewPublisher(conf config.NotificationConfig) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(conf.Brokers...),
		Topic:                  conf.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: writer, topic: conf.Topic, now: time.Now}
}

// PublishMatches sends one message per result of the batch.
func (p *Publisher) PublishMatches(ctx context.Context, batch matchModel.RuleMatchBatch) error {

	if len(batch.Results) == 0 {
		return nil
	}
	timestamp := p.now().UTC()
	messages := make([]kafka.Message, 0, len(batch.Results))
	for _, result := range batch.Results {
		data, err := json.Marshal(MatchNotification{
			EventType: eventTypeRuleMatched,
			TenantId:  batch.TenantId,
			RuleId:    batch.RuleId,
			RuleName:  batch.RuleName,
			RuleType:  batch.RuleType,
			ClientId:  result.ClientId,
			Score:     result.Score,
			Method:    result.Method,
			Timestamp: timestamp,
		})
		if err != nil {
			return publishError(batch.RuleId, err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(batch.TenantId + "/" + result.ClientId),
			Value: data,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(eventTypeRuleMatched)},
				{Key: "tenant_id", Value: []byte(batch.TenantId)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		return publishError(batch.RuleId, err)
	}
	log.GetLogger().WithContext(ctx).Debug(fmt.Sprintf("Published %d match notifications for rule: %s",
		len(messages), batch.RuleId), log.String("topic", p.topic))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func publishError(ruleId string, cause error) error {
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.PUBLISH_NOTIFICATION.Code,
		Message:     errors2.PUBLISH_NOTIFICATION.Message,
		Description: fmt.Sprintf("Failed to publish match notifications for rule: %s", ruleId),
	}, cause)
}

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

package schedulers

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/studiohub/normative-matching-service/internal/matching/model"
	ctxutil "github.com/studiohub/normative-matching-service/internal/system/context"
	"github.com/studiohub/normative-matching-service/internal/system/log"
)

// TenantLister lists the tenants that own clients.
type TenantLister interface {
	ListTenants(ctx context.Context) ([]string, error)
}

// TenantMatcher runs batch matching for one tenant.
type TenantMatcher interface {
	MatchAllRules(ctx context.Context, tenantId string) (model.BatchReport, error)
}

// MatchScheduler periodically runs batch matching for every tenant.
type MatchScheduler struct {
	tenants     TenantLister
	matcher     TenantMatcher
	interval    time.Duration
	concurrency int
}

func NewMatchScheduler(tenants TenantLister, matcher TenantMatcher, interval time.Duration,
	concurrency int) *MatchScheduler {

	if concurrency <= 0 {
		concurrency = 1
	}
	return &MatchScheduler{
		tenants:     tenants,
		matcher:     matcher,
		interval:    interval,
		concurrency: concurrency,
	}
}

// Start runs a pass immediately and then once per interval until ctx is cancelled.
func (s *MatchScheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce matches all tenants with bounded concurrency. A failing tenant does not affect the others.
func (s *MatchScheduler) RunOnce(ctx context.Context) []model.BatchReport {
	logger := log.GetLogger()

	tenants, err := s.tenants.ListTenants(ctx)
	if err != nil {
		logger.Error("Failed to list tenants for scheduled matching", log.Error(err))
		return nil
	}

	reports := make([]model.BatchReport, len(tenants))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)
	for i, tenantId := range tenants {
		group.Go(func() error {
			traceID := ctxutil.GenerateTraceID()
			tenantCtx := ctxutil.WithTraceID(ctxutil.WithTenant(groupCtx, tenantId), traceID)

			report, err := s.matcher.MatchAllRules(tenantCtx, tenantId)
			if err != nil {
				logger.Error(fmt.Sprintf("Scheduled matching failed for tenant: %s", tenantId), log.Error(err))
				return nil
			}
			reports[i] = report
			logger.Audit(log.AuditEvent{
				InitiatorID:   "scheduler",
				InitiatorType: log.InitiatorTypeSystem,
				TargetID:      tenantId,
				TargetType:    log.TargetTypeTenant,
				ActionID:      log.ActionScheduledMatch,
				TraceID:       traceID,
				Data:          report,
			})
			return nil
		})
	}
	_ = group.Wait()
	return reports
}

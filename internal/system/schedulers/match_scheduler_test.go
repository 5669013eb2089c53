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
	"errors"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/studiohub/normative-matching-service/internal/matching/model"
	"github.com/studiohub/normative-matching-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

type staticTenants struct {
	tenants []string
	err     error
}

func (s staticTenants) ListTenants(_ context.Context) ([]string, error) {
	return s.tenants, s.err
}

type countingMatcher struct {
	mu      sync.Mutex
	seen    []string
	running int32
	peak    int32
	failFor string
}

func (m *countingMatcher) MatchAllRules(_ context.Context, tenantId string) (model.BatchReport, error) {
	current := atomic.AddInt32(&m.running, 1)
	defer atomic.AddInt32(&m.running, -1)
	for {
		peak := atomic.LoadInt32(&m.peak)
		if current <= peak || atomic.CompareAndSwapInt32(&m.peak, peak, current) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	m.mu.Lock()
	m.seen = append(m.seen, tenantId)
	m.mu.Unlock()
	if tenantId == m.failFor {
		return model.BatchReport{}, errors.New("store unavailable")
	}
	return model.BatchReport{TenantId: tenantId, Evaluated: 1}, nil
}

func TestRunOnce_AllTenantsWithinLimit(t *testing.T) {
	matcher := &countingMatcher{failFor: "t2"}
	scheduler := NewMatchScheduler(staticTenants{tenants: []string{"t1", "t2", "t3", "t4", "t5"}}, matcher,
		time.Minute, 2)

	reports := scheduler.RunOnce(context.Background())

	sort.Strings(matcher.seen)
	assert.Equal(t, []string{"t1", "t2", "t3", "t4", "t5"}, matcher.seen)
	assert.LessOrEqual(t, atomic.LoadInt32(&matcher.peak), int32(2))
	assert.Len(t, reports, 5)
	assert.Equal(t, "t1", reports[0].TenantId)
	assert.Equal(t, "", reports[1].TenantId, "failed tenant has no report")
	assert.Equal(t, "t5", reports[4].TenantId)
}

func TestRunOnce_ListTenantsError(t *testing.T) {
	matcher := &countingMatcher{}
	scheduler := NewMatchScheduler(staticTenants{err: errors.New("boom")}, matcher, time.Minute, 2)

	assert.Nil(t, scheduler.RunOnce(context.Background()))
	assert.Empty(t, matcher.seen)
}

func TestStart_StopsOnCancel(t *testing.T) {
	matcher := &countingMatcher{}
	scheduler := NewMatchScheduler(staticTenants{tenants: []string{"t1"}}, matcher, time.Hour, 1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		scheduler.Start(ctx)
		close(done)
	}()
	assert.Eventually(t, func() bool {
		matcher.mu.Lock()
		defer matcher.mu.Unlock()
		return len(matcher.seen) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

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

// Package dbtest provides an in-memory database provider for store unit tests.
package dbtest

import (
	"context"
	"sync"

	"github.com/studiohub/normative-matching-service/internal/system/database/client"
)

// Call records one statement sent to the fake client.
type Call struct {
	Query string
	Args  []interface{}
}

// FakeProvider hands out a FakeClient that returns canned rows.
type FakeProvider struct {
	Client  *FakeClient
	InitErr error
}

func NewFakeProvider(rows []map[string]interface{}) *FakeProvider {
	return &FakeProvider{Client: &FakeClient{Rows: rows}}
}

func (p *FakeProvider) GetDBClient() (client.DBClientInterface, error) {
	if p.InitErr != nil {
		return nil, p.InitErr
	}
	return p.Client, nil
}

func (p *FakeProvider) GetDBType() string {
	return "postgres"
}

// FakeClient returns Rows for every query and records the calls it receives.
type FakeClient struct {
	mu       sync.Mutex
	Rows     []map[string]interface{}
	Err      error
	Affected int64
	Calls    []Call
}

func (c *FakeClient) ExecuteQuery(_ context.Context, query string, args ...interface{}) ([]map[string]interface{}, error) {
	c.record(query, args)
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Rows, nil
}

func (c *FakeClient) Execute(_ context.Context, query string, args ...interface{}) (int64, error) {
	c.record(query, args)
	if c.Err != nil {
		return 0, c.Err
	}
	return c.Affected, nil
}

func (c *FakeClient) Ping(_ context.Context) error {
	return c.Err
}

func (c *FakeClient) Close() error {
	return nil
}

func (c *FakeClient) InitDatabase(_, _ string) error {
	return c.Err
}

// Recorded returns a copy of the recorded calls.
func (c *FakeClient) Recorded() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.Calls...)
}

func (c *FakeClient) record(query string, args []interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls = append(c.Calls, Call{Query: query, Args: args})
}

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

package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiohub/normative-matching-service/internal/system/cache"
	"github.com/studiohub/normative-matching-service/internal/system/config"
	errors2 "github.com/studiohub/normative-matching-service/internal/system/errors"
	"github.com/studiohub/normative-matching-service/internal/system/log"
)

func TestMain(m *testing.M) {
	log.Init("ERROR")
	os.Exit(m.Run())
}

func embeddingServer(t *testing.T, calls *int32, status int, vector []float32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req embeddingRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text-embedding-3-small", req.Model)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"overloaded"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{{"embedding": vector}},
		})
	}))
}

func testConfig(url string) config.EmbeddingConfig {
	return config.EmbeddingConfig{BaseURL: url, Model: "text-embedding-3-small", APIKey: "secret", Timeout: 2}
}

func TestHTTPClient_Embed(t *testing.T) {
	var calls int32
	server := embeddingServer(t, &calls, http.StatusOK, []float32{0.5, -0.25})
	defer server.Close()

	vector, err := NewHTTPClient(testConfig(server.URL)).Embed(context.Background(), "Bando export")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, -0.25}, vector)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestHTTPClient_ErrorStatus(t *testing.T) {
	var calls int32
	server := embeddingServer(t, &calls, http.StatusServiceUnavailable, nil)
	defer server.Close()

	_, err := NewHTTPClient(testConfig(server.URL)).Embed(context.Background(), "Bando export")
	require.Error(t, err)
	assert.True(t, errors2.HasCode(err, errors2.EMBEDDING_REQUEST.Code))
}

func TestHTTPClient_EmptyVector(t *testing.T) {
	var calls int32
	server := embeddingServer(t, &calls, http.StatusOK, []float32{})
	defer server.Close()

	_, err := NewHTTPClient(testConfig(server.URL)).Embed(context.Background(), "x")
	assert.True(t, errors2.HasCode(err, errors2.EMBEDDING_REQUEST.Code))
}

type countingEmbedder struct {
	vector []float32
	calls  int
}

func (e *countingEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	e.calls++
	return e.vector, nil
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"scaled", []float32{1, 1}, []float32{3, 3}, 1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"size mismatch", []float32{1}, []float32{1, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Cosine(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosineBackend_CachesQueryEmbedding(t *testing.T) {
	embedder := &countingEmbedder{vector: []float32{1, 0}}
	backend := NewCosineBackend(embedder, cache.NewCache[[]float32](time.Minute))

	for _, profile := range [][]float32{{1, 0}, {0, 1}, {1, 1}} {
		_, err := backend.Similarity(context.Background(), "Bando export", profile)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, embedder.calls)

	score, err := backend.Similarity(context.Background(), "Bando export", []float32{1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.7071, score, 1e-4)
}

func TestCosineBackend_ClampsAndMismatch(t *testing.T) {
	backend := NewCosineBackend(&countingEmbedder{vector: []float32{1, 0}}, nil)

	score, err := backend.Similarity(context.Background(), "q", []float32{-1, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)

	score, err = backend.Similarity(context.Background(), "q", []float32{1, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

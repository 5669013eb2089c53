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
	"fmt"
	"math"

	"github.com/studiohub/normative-matching-service/internal/system/cache"
	"github.com/studiohub/normative-matching-service/internal/system/log"
	"github.com/studiohub/normative-matching-service/internal/system/metrics"
)

// CosineBackend scores profile vectors by cosine similarity to the embedded query text. Query embeddings
// are cached so a rule text is embedded once per TTL.
type CosineBackend struct {
	embedder Embedder
	queries  *cache.Cache[[]float32]
}

func NewCosineBackend(embedder Embedder, queries *cache.Cache[[]float32]) *CosineBackend {
	return &CosineBackend{embedder: embedder, queries: queries}
}

// Similarity returns a value in [0,1]. Vectors of different dimension, or zero vectors, score 0.
func (b *CosineBackend) Similarity(ctx context.Context, queryText string, vector []float32) (float64, error) {
	query, err := b.queryVector(ctx, queryText)
	if err != nil {
		return 0, err
	}
	if len(query) != len(vector) {
		log.GetLogger().WithContext(ctx).Warn(fmt.Sprintf("Embedding dimension mismatch: query %d, profile %d",
			len(query), len(vector)))
		return 0, nil
	}
	return math.Max(0, Cosine(query, vector)), nil
}

func (b *CosineBackend) queryVector(ctx context.Context, queryText string) ([]float32, error) {
	if b.queries != nil {
		if v, ok := b.queries.Get(queryText); ok {
			metrics.EmbeddingCacheHits.WithLabelValues("hit").Inc()
			return v, nil
		}
		metrics.EmbeddingCacheHits.WithLabelValues("miss").Inc()
	}
	v, err := b.embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, err
	}
	if b.queries != nil {
		b.queries.Set(queryText, v)
	}
	return v, nil
}

// Cosine returns the cosine similarity of two vectors, 0 when their sizes differ or either has zero length.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

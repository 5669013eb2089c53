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
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/studiohub/normative-matching-service/internal/system/config"
	errors2 "github.com/studiohub/normative-matching-service/internal/system/errors"
	"github.com/studiohub/normative-matching-service/internal/system/log"
)

const embeddingsPath = "/embeddings"

// Embedder turns text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// HTTPClient calls an OpenAI compatible embeddings endpoint.
type HTTPClient struct {
	httpClient *resty.Client
	model      string
}

func NewHTTPClient(conf config.EmbeddingConfig) *HTTPClient {
	timeout := time.Duration(conf.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	client := resty.New().
		SetBaseURL(conf.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(conf.RetryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if conf.APIKey != "" {
		client.SetAuthToken(conf.APIKey)
	}
	return &HTTPClient{httpClient: client, model: conf.Model}
}

func (c *HTTPClient) Embed(ctx context.Context, text string) ([]float32, error) {

	logger := log.GetLogger().WithContext(ctx)
	var response embeddingResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(embeddingRequest{Model: c.model, Input: []string{text}}).
		SetResult(&response).
		Post(embeddingsPath)
	if err != nil {
		logger.Debug("Embedding request failed", log.Error(err))
		return nil, embeddingError("Embedding request failed", errors.Wrap(err, "post embeddings"))
	}
	if resp.IsError() {
		errorMsg := fmt.Sprintf("Embedding service responded with status %d", resp.StatusCode())
		logger.Debug(errorMsg, log.String("body", resp.String()))
		return nil, embeddingError(errorMsg, errors.New(resp.Status()))
	}
	if len(response.Data) == 0 || len(response.Data[0].Embedding) == 0 {
		return nil, embeddingError("Embedding service returned no vector", errors.New("empty embedding"))
	}
	return response.Data[0].Embedding, nil
}

func embeddingError(description string, cause error) error {
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.EMBEDDING_REQUEST.Code,
		Message:     errors2.EMBEDDING_REQUEST.Message,
		Description: description,
	}, cause)
}

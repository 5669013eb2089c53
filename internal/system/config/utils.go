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

package config

import (
	"os"
	"path"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/studiohub/normative-matching-service/internal/system/constants"
)

// LoadConfig reads the deployment file, expands environment variables and applies defaults.
func LoadConfig(nmsHome, filePath string) (*Config, error) {
	file, err := os.ReadFile(path.Join(nmsHome, filePath))
	if err != nil {
		return nil, err
	}

	cfg, err := ParseConfig(file)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid configuration in %s", filePath)
	}
	return cfg, nil
}

// ParseConfig decodes a YAML configuration document.
func ParseConfig(raw []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(raw))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Addr.Port == 0 {
		cfg.Addr.Port = 8900
	}
	if cfg.Log.LogLevel == "" {
		cfg.Log.LogLevel = "INFO"
	}
	if cfg.DataSource.SSLMode == "" {
		cfg.DataSource.SSLMode = "disable"
	}
	if cfg.Matching.SemanticThreshold == 0 {
		cfg.Matching.SemanticThreshold = constants.DefaultSemanticThreshold
	}
	if cfg.Matching.Timezone == "" {
		cfg.Matching.Timezone = constants.DefaultTimezone
	}
	if cfg.Matching.ConditionMode == "" {
		cfg.Matching.ConditionMode = constants.ConditionModeNested
	}
	if cfg.Matching.QueryCacheTTL == 0 {
		cfg.Matching.QueryCacheTTL = 600
	}
	if cfg.Embedding.Timeout == 0 {
		cfg.Embedding.Timeout = 5
	}
	if cfg.Notifications.QueueSize == 0 {
		cfg.Notifications.QueueSize = constants.DefaultQueueSize
	}
	if cfg.Scheduler.TenantConcurrency == 0 {
		cfg.Scheduler.TenantConcurrency = 4
	}
}

// OverrideNMSRuntime holds the runtime configuration for the application
func OverrideNMSRuntime(conf Config) {
	runtimeConfig = &NMSRuntime{
		Config: conf,
	}
}

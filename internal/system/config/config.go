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

import "time"

type AddrConfig struct {
	Port int    `yaml:"port" validate:"gte=1,lte=65535"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR debug info warn error"`
}

type AuthConfig struct {
	Enabled            bool     `yaml:"enabled"`
	JWTSecret          string   `yaml:"jwt_secret" validate:"required_if=Enabled true"`
	Audience           string   `yaml:"audience"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type DataSourceConfig struct {
	Hostname        string `yaml:"hostname" validate:"required"`
	Port            int    `yaml:"port" validate:"required"`
	Name            string `yaml:"name" validate:"required"`
	Username        string `yaml:"username" validate:"required"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"sslmode"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime_seconds"`
}

type MatchingConfig struct {
	SemanticThreshold float64 `yaml:"semantic_threshold" validate:"gte=0,lte=1"`
	Timezone          string  `yaml:"timezone"`
	ConditionMode     string  `yaml:"condition_mode" validate:"omitempty,oneof=nested flat"`
	QueryCacheTTL     int     `yaml:"query_cache_ttl_seconds" validate:"gte=0"`
}

type EmbeddingConfig struct {
	BaseURL    string `yaml:"base_url" validate:"omitempty,url"`
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key"`
	Timeout    int    `yaml:"timeout_seconds" validate:"gte=0"`
	RetryCount int    `yaml:"retry_count" validate:"gte=0"`
}

type NotificationConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Brokers   []string `yaml:"brokers" validate:"required_if=Enabled true"`
	Topic     string   `yaml:"topic" validate:"required_if=Enabled true"`
	QueueSize int      `yaml:"queue_size" validate:"gte=0"`
}

type SchedulerConfig struct {
	Enabled           bool `yaml:"enabled"`
	IntervalMinutes   int  `yaml:"interval_minutes" validate:"required_if=Enabled true"`
	TenantConcurrency int  `yaml:"tenant_concurrency" validate:"gte=0"`
}

type Config struct {
	Addr          AddrConfig         `yaml:"addr"`
	Log           LogConfig          `yaml:"log"`
	Auth          AuthConfig         `yaml:"auth"`
	DataSource    DataSourceConfig   `yaml:"datasource"`
	Matching      MatchingConfig     `yaml:"matching"`
	Embedding     EmbeddingConfig    `yaml:"embedding"`
	Notifications NotificationConfig `yaml:"notifications"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
}

// SchedulerInterval returns the configured batch interval.
func (c SchedulerConfig) SchedulerInterval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

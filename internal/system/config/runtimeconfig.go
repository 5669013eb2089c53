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

import "sync"

// NMSRuntime holds the runtime configuration for the matching server.
type NMSRuntime struct {
	NMSHome string `yaml:"nms_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *NMSRuntime
	once          sync.Once
)

// InitializeNMSRuntime initializes the NMSRuntime configuration.
func InitializeNMSRuntime(nmsHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &NMSRuntime{
			NMSHome: nmsHome,
			Config:  *config,
		}
	})

	return nil
}

// GetNMSRuntime returns the NMSRuntime configuration.
func GetNMSRuntime() *NMSRuntime {

	if runtimeConfig == nil {
		panic("NMSRuntime is not initialized")
	}
	return runtimeConfig
}

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

package provider

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/studiohub/normative-matching-service/internal/system/config"
	"github.com/studiohub/normative-matching-service/internal/system/database/client"
)

const postgresDBType = "postgres"

// DBConfig represents the local database configuration.
type DBConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient() (client.DBClientInterface, error)
	GetDBType() string
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct{}

var (
	sharedDB *sql.DB
	dbMu     sync.Mutex
)

// NewDBProvider creates a new instance of DBProvider.
func NewDBProvider() DBProviderInterface {

	return &DBProvider{}
}

// SetTestDB installs an already opened connection, used by integration tests.
func SetTestDB(db *sql.DB) {
	dbMu.Lock()
	defer dbMu.Unlock()
	sharedDB = db
}

// GetDBClient returns a client over the process-wide connection pool, opening it on first use.
func (d *DBProvider) GetDBClient() (client.DBClientInterface, error) {

	dbMu.Lock()
	defer dbMu.Unlock()

	if sharedDB != nil {
		return client.NewSharedDBClient(sharedDB), nil
	}

	runtimeConfig := config.GetNMSRuntime().Config
	dbConfig := getDBConfig(runtimeConfig)

	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}
	applyPoolSettings(db, runtimeConfig.DataSource)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	sharedDB = db
	return client.NewSharedDBClient(sharedDB), nil
}

// GetDBType returns the key used to select dialect specific queries.
func (d *DBProvider) GetDBType() string {
	return postgresDBType
}

// CloseDB closes the process-wide pool.
func CloseDB() error {
	dbMu.Lock()
	defer dbMu.Unlock()
	if sharedDB == nil {
		return nil
	}
	err := sharedDB.Close()
	sharedDB = nil
	return err
}

func applyPoolSettings(db *sql.DB, ds config.DataSourceConfig) {
	if ds.MaxOpenConns > 0 {
		db.SetMaxOpenConns(ds.MaxOpenConns)
	}
	if ds.MaxIdleConns > 0 {
		db.SetMaxIdleConns(ds.MaxIdleConns)
	}
	if ds.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(ds.ConnMaxLifetime) * time.Second)
	}
}

// getDBConfig returns the database configuration based on the provided data source.
func getDBConfig(dataSource config.Config) DBConfig {

	var dbConfig DBConfig

	dbConfig.driverName = postgresDBType
	dbConfig.dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dataSource.DataSource.Hostname, dataSource.DataSource.Port, dataSource.DataSource.Username, dataSource.DataSource.Password,
		dataSource.DataSource.Name, dataSource.DataSource.SSLMode)

	return dbConfig
}

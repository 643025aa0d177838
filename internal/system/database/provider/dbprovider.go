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

// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/asgardeo/idpolicy/internal/system/config"
	"github.com/asgardeo/idpolicy/internal/system/database/client"
	"github.com/asgardeo/idpolicy/internal/system/database/model"
	"github.com/asgardeo/idpolicy/internal/system/log"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const defaultConnectTimeout = 30 * time.Second

// dbConfig represents the resolved driver configuration.
type dbConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(ctx context.Context) (client.DBClientInterface, error)
	Close() error
}

// DBProvider is the implementation of DBProviderInterface for the policy data source.
type DBProvider struct {
	dataSource config.DataSource
	home       string
	dbClient   client.DBClientInterface
	mutex      sync.RWMutex
	logger     *log.Logger
}

// NewDBProvider creates a provider for the given data source. Relative SQLite paths are resolved against home.
func NewDBProvider(dataSource config.DataSource, home string) *DBProvider {
	return &DBProvider{
		dataSource: dataSource,
		home:       home,
		logger:     log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBProvider")),
	}
}

// GetDBClient returns the database client, connecting on first use.
// Not required to close the returned client manually since the provider owns its connection pool.
func (d *DBProvider) GetDBClient(ctx context.Context) (client.DBClientInterface, error) {
	d.mutex.RLock()
	if d.dbClient != nil {
		dbClient := d.dbClient
		d.mutex.RUnlock()
		return dbClient, nil
	}
	d.mutex.RUnlock()

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.dbClient != nil {
		return d.dbClient, nil
	}

	dbClient, err := d.initializeClient(ctx)
	if err != nil {
		return nil, err
	}
	d.dbClient = dbClient
	return dbClient, nil
}

// initializeClient opens the connection pool and waits until the database answers a ping.
func (d *DBProvider) initializeClient(ctx context.Context) (client.DBClientInterface, error) {
	cfg, err := d.getDBConfig()
	if err != nil {
		return nil, err
	}
	dbName := d.dataSource.Name

	db, err := sql.Open(cfg.driverName, cfg.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", dbName, err)
	}

	db.SetMaxOpenConns(d.dataSource.MaxOpenConns)
	db.SetMaxIdleConns(d.dataSource.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(d.dataSource.ConnMaxLifetime) * time.Second)

	if err := d.ping(ctx, db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database %s: %w (close error: %w)", dbName, err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database %s: %w", dbName, err)
	}

	if cfg.driverName == config.DataSourceTypeSQLite {
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			if closeErr := db.Close(); closeErr != nil {
				return nil, fmt.Errorf("failed to enable foreign key constraints for %s: %w (close error: %w)",
					dbName, err, closeErr)
			}
			return nil, fmt.Errorf("failed to enable foreign key constraints for %s: %w", dbName, err)
		}
	}

	d.logger.Debug("Database client initialized", log.String("type", d.dataSource.Type))
	return client.NewDBClient(model.NewDB(db), cfg.driverName), nil
}

// ping retries the connection test with exponential backoff until the connect timeout elapses.
func (d *DBProvider) ping(ctx context.Context, db *sql.DB) error {
	timeout := time.Duration(d.dataSource.ConnectTimeout) * time.Second
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, db.PingContext(ctx)
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(timeout),
		backoff.WithNotify(func(err error, next time.Duration) {
			d.logger.Warn("Database is not reachable, retrying",
				log.Error(err), log.String("retryIn", next.String()))
		}),
	)
	return err
}

// getDBConfig returns the driver configuration for the data source.
func (d *DBProvider) getDBConfig() (dbConfig, error) {
	var cfg dbConfig
	ds := d.dataSource

	switch ds.Type {
	case config.DataSourceTypePostgres:
		cfg.driverName = config.DataSourceTypePostgres
		cfg.dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			ds.Hostname, ds.Port, ds.Username, ds.Password, ds.Name, ds.SSLMode)
		if ds.ConnectTimeout > 0 {
			cfg.dsn = fmt.Sprintf("%s connect_timeout=%d", cfg.dsn, ds.ConnectTimeout)
		}
	case config.DataSourceTypeSQLite:
		cfg.driverName = config.DataSourceTypeSQLite
		dbPath := config.ResolvePath(d.home, ds.Path)
		if dbPath == "" {
			return cfg, errors.New("sqlite database path is not configured")
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return cfg, fmt.Errorf("failed to create database directory: %w", err)
		}
		options := ds.Options
		if options != "" && options[0] != '?' {
			options = "?" + options
		}
		cfg.dsn = dbPath + options
	default:
		return cfg, fmt.Errorf("unsupported database type: %s", ds.Type)
	}

	return cfg, nil
}

// Close closes the database connection pool if it was opened.
func (d *DBProvider) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.dbClient == nil {
		return nil
	}
	err := d.dbClient.Close()
	d.dbClient = nil
	if err != nil {
		return fmt.Errorf("failed to close policy database client: %w", err)
	}
	return nil
}

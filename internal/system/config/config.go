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

// Package config provides structures and functions for loading the deployment configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"

	"github.com/asgardeo/idpolicy/internal/system/constants"
	"github.com/asgardeo/idpolicy/internal/system/log"
)

const (
	// PolicySourceFile loads the policy from a YAML or JSON file.
	PolicySourceFile = "file"
	// PolicySourceDatabase loads the policy from the configuration store.
	PolicySourceDatabase = "database"

	// DataSourceTypePostgres identifies a PostgreSQL data source.
	DataSourceTypePostgres = "postgres"
	// DataSourceTypeSQLite identifies a SQLite data source.
	DataSourceTypeSQLite = "sqlite"

	// HashAlgorithmSHA256 selects salted SHA-256 secret hashing.
	HashAlgorithmSHA256 = "SHA256"
	// HashAlgorithmPBKDF2 selects PBKDF2-HMAC-SHA256 secret hashing.
	HashAlgorithmPBKDF2 = "PBKDF2"
)

// PolicyConfig holds the policy source configuration.
type PolicyConfig struct {
	Source           string `yaml:"source"`
	File             string `yaml:"file"`
	SchemaValidation bool   `yaml:"schema_validation"`
	SeedDatabase     bool   `yaml:"seed_database"`
}

// HashConfig holds the client secret hashing configuration.
type HashConfig struct {
	Algorithm        string `yaml:"algorithm"`
	PBKDF2Iterations int    `yaml:"pbkdf2_iterations"`
}

// SecurityConfig holds the security configuration details.
type SecurityConfig struct {
	Hash HashConfig `yaml:"hash"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type            string `yaml:"type"`
	Hostname        string `yaml:"hostname"`
	Port            int    `yaml:"port"`
	Name            string `yaml:"name"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path"`
	Options         string `yaml:"options"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
	ConnectTimeout  int    `yaml:"connect_timeout"`
}

// DatabaseConfig holds the database configuration details.
type DatabaseConfig struct {
	Policy DataSource `yaml:"policy"`
}

// LogConfig holds the logging configuration details.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config holds the complete deployment configuration.
type Config struct {
	Policy   PolicyConfig   `yaml:"policy"`
	Security SecurityConfig `yaml:"security"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// DefaultConfig returns the configuration used when a value is not present in deployment.yaml.
func DefaultConfig() *Config {
	return &Config{
		Policy: PolicyConfig{
			Source:           PolicySourceFile,
			File:             constants.DefaultPolicyFilePath,
			SchemaValidation: true,
		},
		Security: SecurityConfig{
			Hash: HashConfig{
				Algorithm:        HashAlgorithmSHA256,
				PBKDF2Iterations: 10000,
			},
		},
		Database: DatabaseConfig{
			Policy: DataSource{
				Type:            DataSourceTypeSQLite,
				Path:            constants.DefaultSQLiteDBPath,
				Hostname:        "localhost",
				Port:            5432,
				Name:            "policy",
				SSLMode:         "disable",
				MaxOpenConns:    10,
				MaxIdleConns:    5,
				ConnMaxLifetime: 300,
				ConnectTimeout:  30,
			},
		},
		Log: LogConfig{
			Level:  constants.DefaultLogLevel,
			Format: constants.LogFormatConsole,
		},
	}
}

// LoadConfig loads the configurations from the specified YAML file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode configuration file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Policy.Source {
	case PolicySourceFile, PolicySourceDatabase:
	default:
		return fmt.Errorf("unsupported policy source: %q", c.Policy.Source)
	}
	if c.Policy.Source == PolicySourceFile && c.Policy.File == "" {
		return errors.New("policy file path is required for the file policy source")
	}

	switch c.Security.Hash.Algorithm {
	case HashAlgorithmSHA256, HashAlgorithmPBKDF2:
	default:
		return fmt.Errorf("unsupported hash algorithm: %q", c.Security.Hash.Algorithm)
	}
	if c.Security.Hash.PBKDF2Iterations <= 0 {
		return errors.New("pbkdf2 iterations must be a positive number")
	}

	if c.Policy.Source == PolicySourceDatabase || c.Policy.SeedDatabase {
		switch c.Database.Policy.Type {
		case DataSourceTypePostgres, DataSourceTypeSQLite:
		default:
			return fmt.Errorf("unsupported database type: %q", c.Database.Policy.Type)
		}
	}
	return nil
}

// ResolvePath returns the path joined with the home directory unless it is absolute.
func ResolvePath(home, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(home, path)
}

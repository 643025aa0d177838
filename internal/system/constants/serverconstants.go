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

// Package constants defines global constants used across the system module.
package constants

const (
	// LogLevelEnvironmentVariable is the environment variable name for the log level.
	LogLevelEnvironmentVariable = "LOG_LEVEL"
	// LogFormatEnvironmentVariable is the environment variable name for the log format.
	LogFormatEnvironmentVariable = "LOG_FORMAT"
	// DefaultLogLevel is the default log level used if not specified.
	DefaultLogLevel = "info"
	// LogFormatJSON selects the JSON log encoder.
	LogFormatJSON = "json"
	// LogFormatConsole selects the plain text log encoder.
	LogFormatConsole = "console"
)

// DefaultDeploymentConfigPath is the deployment configuration file path relative to the home directory.
const DefaultDeploymentConfigPath = "repository/conf/deployment.yaml"

// DefaultPolicyFilePath is the policy file path relative to the home directory.
const DefaultPolicyFilePath = "repository/conf/policy.yaml"

// DefaultSQLiteDBPath is the SQLite database path relative to the home directory.
const DefaultSQLiteDBPath = "repository/database/policy.db"

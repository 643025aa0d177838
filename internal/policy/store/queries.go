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

package store

import "github.com/asgardeo/idpolicy/internal/system/database/model"

// listSeparator separates the values of list columns.
const listSeparator = ","

var (
	// QueryCreateIdentityResourceTable creates the identity resource table.
	QueryCreateIdentityResourceTable = model.DBQuery{
		ID: "PLS-DDL-01",
		Query: "CREATE TABLE IF NOT EXISTS POLICY_IDENTITY_RESOURCE (" +
			"NAME VARCHAR(255) PRIMARY KEY, " +
			"DISPLAY_NAME VARCHAR(255) NOT NULL, " +
			"CLAIM_TYPES TEXT NOT NULL DEFAULT '')",
	}
	// QueryCreateAPIScopeTable creates the API scope table.
	QueryCreateAPIScopeTable = model.DBQuery{
		ID: "PLS-DDL-02",
		Query: "CREATE TABLE IF NOT EXISTS POLICY_API_SCOPE (" +
			"NAME VARCHAR(255) PRIMARY KEY, " +
			"DISPLAY_NAME VARCHAR(255) NOT NULL, " +
			"CLAIM_TYPES TEXT NOT NULL DEFAULT '')",
	}
	// QueryCreateClientTable creates the client table.
	QueryCreateClientTable = model.DBQuery{
		ID: "PLS-DDL-03",
		Query: "CREATE TABLE IF NOT EXISTS POLICY_CLIENT (" +
			"CLIENT_ID VARCHAR(255) PRIMARY KEY, " +
			"GRANT_TYPES TEXT NOT NULL, " +
			"ALLOWED_SCOPES TEXT NOT NULL DEFAULT '', " +
			"REDIRECT_URIS TEXT NOT NULL DEFAULT '', " +
			"POST_LOGOUT_REDIRECT_URIS TEXT NOT NULL DEFAULT '', " +
			"ALLOW_OFFLINE_ACCESS SMALLINT NOT NULL DEFAULT 0, " +
			"REQUIRE_CONSENT SMALLINT NOT NULL DEFAULT 0)",
	}
	// QueryCreateClientSecretTable creates the client secret table.
	QueryCreateClientSecretTable = model.DBQuery{
		ID: "PLS-DDL-04",
		PostgresQuery: "CREATE TABLE IF NOT EXISTS POLICY_CLIENT_SECRET (" +
			"ID SERIAL PRIMARY KEY, " +
			"CLIENT_ID VARCHAR(255) NOT NULL REFERENCES POLICY_CLIENT (CLIENT_ID) ON DELETE CASCADE, " +
			"ALGORITHM VARCHAR(32) NOT NULL, " +
			"HASH VARCHAR(512) NOT NULL, " +
			"SALT VARCHAR(255) NOT NULL DEFAULT '', " +
			"ITERATIONS INTEGER NOT NULL DEFAULT 0)",
		SQLiteQuery: "CREATE TABLE IF NOT EXISTS POLICY_CLIENT_SECRET (" +
			"ID INTEGER PRIMARY KEY AUTOINCREMENT, " +
			"CLIENT_ID VARCHAR(255) NOT NULL REFERENCES POLICY_CLIENT (CLIENT_ID) ON DELETE CASCADE, " +
			"ALGORITHM VARCHAR(32) NOT NULL, " +
			"HASH VARCHAR(512) NOT NULL, " +
			"SALT VARCHAR(255) NOT NULL DEFAULT '', " +
			"ITERATIONS INTEGER NOT NULL DEFAULT 0)",
	}

	// QueryGetIdentityResources lists the identity resources.
	QueryGetIdentityResources = model.DBQuery{
		ID:    "PLS-PS-01",
		Query: "SELECT NAME, DISPLAY_NAME, CLAIM_TYPES FROM POLICY_IDENTITY_RESOURCE ORDER BY NAME",
	}
	// QueryGetAPIScopes lists the API scopes.
	QueryGetAPIScopes = model.DBQuery{
		ID:    "PLS-PS-02",
		Query: "SELECT NAME, DISPLAY_NAME, CLAIM_TYPES FROM POLICY_API_SCOPE ORDER BY NAME",
	}
	// QueryGetClients lists the clients.
	QueryGetClients = model.DBQuery{
		ID: "PLS-PS-03",
		Query: "SELECT CLIENT_ID, GRANT_TYPES, ALLOWED_SCOPES, REDIRECT_URIS, POST_LOGOUT_REDIRECT_URIS, " +
			"ALLOW_OFFLINE_ACCESS, REQUIRE_CONSENT FROM POLICY_CLIENT ORDER BY CLIENT_ID",
	}
	// QueryGetClientSecrets lists the client secrets in registration order.
	QueryGetClientSecrets = model.DBQuery{
		ID:    "PLS-PS-04",
		Query: "SELECT CLIENT_ID, ALGORITHM, HASH, SALT, ITERATIONS FROM POLICY_CLIENT_SECRET ORDER BY CLIENT_ID, ID",
	}
	// QueryCountClients counts the registered clients.
	QueryCountClients = model.DBQuery{
		ID:    "PLS-PS-05",
		Query: "SELECT COUNT(*) AS TOTAL FROM POLICY_CLIENT",
	}

	// QueryInsertIdentityResource inserts an identity resource.
	QueryInsertIdentityResource = model.DBQuery{
		ID:            "PLS-SD-01",
		PostgresQuery: "INSERT INTO POLICY_IDENTITY_RESOURCE (NAME, DISPLAY_NAME, CLAIM_TYPES) VALUES ($1, $2, $3)",
		SQLiteQuery:   "INSERT INTO POLICY_IDENTITY_RESOURCE (NAME, DISPLAY_NAME, CLAIM_TYPES) VALUES (?, ?, ?)",
	}
	// QueryInsertAPIScope inserts an API scope.
	QueryInsertAPIScope = model.DBQuery{
		ID:            "PLS-SD-02",
		PostgresQuery: "INSERT INTO POLICY_API_SCOPE (NAME, DISPLAY_NAME, CLAIM_TYPES) VALUES ($1, $2, $3)",
		SQLiteQuery:   "INSERT INTO POLICY_API_SCOPE (NAME, DISPLAY_NAME, CLAIM_TYPES) VALUES (?, ?, ?)",
	}
	// QueryInsertClient inserts a client.
	QueryInsertClient = model.DBQuery{
		ID: "PLS-SD-03",
		PostgresQuery: "INSERT INTO POLICY_CLIENT (CLIENT_ID, GRANT_TYPES, ALLOWED_SCOPES, REDIRECT_URIS, " +
			"POST_LOGOUT_REDIRECT_URIS, ALLOW_OFFLINE_ACCESS, REQUIRE_CONSENT) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		SQLiteQuery: "INSERT INTO POLICY_CLIENT (CLIENT_ID, GRANT_TYPES, ALLOWED_SCOPES, REDIRECT_URIS, " +
			"POST_LOGOUT_REDIRECT_URIS, ALLOW_OFFLINE_ACCESS, REQUIRE_CONSENT) VALUES (?, ?, ?, ?, ?, ?, ?)",
	}
	// QueryInsertClientSecret inserts a client secret.
	QueryInsertClientSecret = model.DBQuery{
		ID: "PLS-SD-04",
		PostgresQuery: "INSERT INTO POLICY_CLIENT_SECRET (CLIENT_ID, ALGORITHM, HASH, SALT, ITERATIONS) " +
			"VALUES ($1, $2, $3, $4, $5)",
		SQLiteQuery: "INSERT INTO POLICY_CLIENT_SECRET (CLIENT_ID, ALGORITHM, HASH, SALT, ITERATIONS) " +
			"VALUES (?, ?, ?, ?, ?)",
	}
)

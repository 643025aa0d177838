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

// Package store provides the SQL configuration store for the authorization policy.
package store

import (
	"fmt"
	"strconv"

	"github.com/asgardeo/idpolicy/internal/policy/model"
	"github.com/asgardeo/idpolicy/internal/system/database/client"
	dbmodel "github.com/asgardeo/idpolicy/internal/system/database/model"
	"github.com/asgardeo/idpolicy/internal/system/log"
	"github.com/asgardeo/idpolicy/internal/system/utils"
)

// PolicyStoreInterface defines the read operations of the configuration store.
type PolicyStoreInterface interface {
	ReadDefinition() (*model.PolicyDefinition, error)
	CountClients() (int64, error)
}

// PolicyStore reads the policy definition from the database.
type PolicyStore struct {
	dbClient client.DBClientInterface
	logger   *log.Logger
}

// NewPolicyStore creates a store backed by the database client.
func NewPolicyStore(dbClient client.DBClientInterface) PolicyStoreInterface {
	return &PolicyStore{
		dbClient: dbClient,
		logger:   log.GetLogger().With(log.String(log.LoggerKeyComponentName, "PolicyStore")),
	}
}

// ReadDefinition reads every policy table into a definition.
func (s *PolicyStore) ReadDefinition() (*model.PolicyDefinition, error) {
	identityResources, err := s.readResources(QueryGetIdentityResources)
	if err != nil {
		return nil, fmt.Errorf("failed to read identity resources: %w", err)
	}
	apiScopes, err := s.readResources(QueryGetAPIScopes)
	if err != nil {
		return nil, fmt.Errorf("failed to read api scopes: %w", err)
	}
	secrets, err := s.readSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to read client secrets: %w", err)
	}
	clients, err := s.readClients(secrets)
	if err != nil {
		return nil, fmt.Errorf("failed to read clients: %w", err)
	}

	s.logger.Debug("Read policy definition from the database",
		log.Int("identityResources", len(identityResources)),
		log.Int("apiScopes", len(apiScopes)),
		log.Int("clients", len(clients)))

	return &model.PolicyDefinition{
		IdentityResources: identityResources,
		APIScopes:         apiScopes,
		Clients:           clients,
	}, nil
}

// CountClients returns the number of registered clients.
func (s *PolicyStore) CountClients() (int64, error) {
	results, err := s.dbClient.Query(QueryCountClients)
	if err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	if len(results) != 1 {
		return 0, fmt.Errorf("unexpected number of results: %d", len(results))
	}
	return parseInt(results[0]["total"])
}

func (s *PolicyStore) readResources(query dbmodel.DBQuery) ([]model.ResourceDefinition, error) {
	results, err := s.dbClient.Query(query)
	if err != nil {
		return nil, err
	}

	resources := make([]model.ResourceDefinition, 0, len(results))
	for _, row := range results {
		name, err := parseString(row["name"])
		if err != nil {
			return nil, fmt.Errorf("invalid name: %w", err)
		}
		displayName, err := parseString(row["display_name"])
		if err != nil {
			return nil, fmt.Errorf("invalid display name for %q: %w", name, err)
		}
		resources = append(resources, model.ResourceDefinition{
			Name:        name,
			DisplayName: displayName,
			UserClaims:  utils.ParseStringArray(row["claim_types"], listSeparator),
		})
	}
	return resources, nil
}

func (s *PolicyStore) readSecrets() (map[string][]model.SecretDefinition, error) {
	results, err := s.dbClient.Query(QueryGetClientSecrets)
	if err != nil {
		return nil, err
	}

	secrets := make(map[string][]model.SecretDefinition)
	for _, row := range results {
		clientID, err := parseString(row["client_id"])
		if err != nil {
			return nil, fmt.Errorf("invalid client id: %w", err)
		}
		algorithm, err := parseString(row["algorithm"])
		if err != nil {
			return nil, fmt.Errorf("invalid algorithm for client %q: %w", clientID, err)
		}
		hashValue, err := parseString(row["hash"])
		if err != nil {
			return nil, fmt.Errorf("invalid hash for client %q: %w", clientID, err)
		}
		salt, err := parseOptionalString(row["salt"])
		if err != nil {
			return nil, fmt.Errorf("invalid salt for client %q: %w", clientID, err)
		}
		iterations, err := parseInt(row["iterations"])
		if err != nil {
			return nil, fmt.Errorf("invalid iterations for client %q: %w", clientID, err)
		}
		secrets[clientID] = append(secrets[clientID], model.SecretDefinition{
			Algorithm:  algorithm,
			Hash:       hashValue,
			Salt:       salt,
			Iterations: int(iterations),
		})
	}
	return secrets, nil
}

func (s *PolicyStore) readClients(secrets map[string][]model.SecretDefinition) ([]model.ClientDefinition, error) {
	results, err := s.dbClient.Query(QueryGetClients)
	if err != nil {
		return nil, err
	}

	clients := make([]model.ClientDefinition, 0, len(results))
	for _, row := range results {
		clientID, err := parseString(row["client_id"])
		if err != nil {
			return nil, fmt.Errorf("invalid client id: %w", err)
		}
		allowOffline, err := parseBool(row["allow_offline_access"])
		if err != nil {
			return nil, fmt.Errorf("invalid offline access flag for client %q: %w", clientID, err)
		}
		requireConsent, err := parseBool(row["require_consent"])
		if err != nil {
			return nil, fmt.Errorf("invalid consent flag for client %q: %w", clientID, err)
		}
		clients = append(clients, model.ClientDefinition{
			ClientID:               clientID,
			Secrets:                secrets[clientID],
			AllowedGrantTypes:      utils.ParseStringArray(row["grant_types"], listSeparator),
			AllowedScopes:          utils.ParseStringArray(row["allowed_scopes"], listSeparator),
			RedirectURIs:           utils.ParseStringArray(row["redirect_uris"], listSeparator),
			PostLogoutRedirectURIs: utils.ParseStringArray(row["post_logout_redirect_uris"], listSeparator),
			AllowOfflineAccess:     allowOffline,
			RequireConsent:         requireConsent,
		})
	}
	return clients, nil
}

func parseString(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("expected a string column value, got %T", value)
	}
}

func parseOptionalString(value interface{}) (string, error) {
	if value == nil {
		return "", nil
	}
	return parseString(value)
}

func parseInt(value interface{}) (int64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("expected an integer column value, got %T", value)
	}
}

func parseBool(value interface{}) (bool, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	n, err := parseInt(value)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

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

import (
	"fmt"
	"strings"

	"github.com/asgardeo/idpolicy/internal/policy/model"
	"github.com/asgardeo/idpolicy/internal/policy/registry"
	"github.com/asgardeo/idpolicy/internal/system/database/client"
	dbmodel "github.com/asgardeo/idpolicy/internal/system/database/model"
	"github.com/asgardeo/idpolicy/internal/system/log"
	"github.com/asgardeo/idpolicy/internal/system/utils"
)

// SeederInterface defines the operations that prepare the configuration store.
type SeederInterface interface {
	EnsureSchema() error
	SeedIfEmpty(reg *registry.Registry) (bool, error)
}

// Seeder writes a built registry into an empty configuration store.
type Seeder struct {
	dbClient client.DBClientInterface
	store    PolicyStoreInterface
	logger   *log.Logger
}

// NewSeeder creates a seeder for the database client.
func NewSeeder(dbClient client.DBClientInterface) SeederInterface {
	return &Seeder{
		dbClient: dbClient,
		store:    NewPolicyStore(dbClient),
		logger:   log.GetLogger().With(log.String(log.LoggerKeyComponentName, "PolicySeeder")),
	}
}

// EnsureSchema creates the policy tables when they do not exist.
func (s *Seeder) EnsureSchema() error {
	for _, query := range []dbmodel.DBQuery{
		QueryCreateIdentityResourceTable,
		QueryCreateAPIScopeTable,
		QueryCreateClientTable,
		QueryCreateClientSecretTable,
	} {
		if _, err := s.dbClient.Execute(query); err != nil {
			return fmt.Errorf("failed to create policy schema (%s): %w", query.GetID(), err)
		}
	}
	return nil
}

// SeedIfEmpty inserts the registry in one transaction when the store has no clients.
// It reports whether anything was written.
func (s *Seeder) SeedIfEmpty(reg *registry.Registry) (bool, error) {
	count, err := s.store.CountClients()
	if err != nil {
		return false, err
	}
	if count > 0 {
		s.logger.Info("Configuration store already has clients, skipping seeding", log.Any("clients", count))
		return false, nil
	}

	tx, err := s.dbClient.BeginTx()
	if err != nil {
		return false, fmt.Errorf("failed to begin seeding transaction: %w", err)
	}

	if err := s.insertDefinition(tx, registry.ToDefinition(reg)); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			s.logger.Error("Failed to roll back seeding transaction", log.Error(rollbackErr))
			return false, fmt.Errorf("%w (rollback error: %w)", err, rollbackErr)
		}
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit seeding transaction: %w", err)
	}

	s.logger.Info("Seeded the configuration store", log.String(log.LoggerKeyRevision, reg.Revision()))
	return true, nil
}

func (s *Seeder) insertDefinition(tx dbmodel.TxInterface, def *model.PolicyDefinition) error {
	for _, resource := range def.IdentityResources {
		claims, err := joinList(resource.UserClaims)
		if err != nil {
			return fmt.Errorf("identity resource %q: %w", resource.Name, err)
		}
		if _, err := tx.Exec(QueryInsertIdentityResource, resource.Name, resource.DisplayName, claims); err != nil {
			return fmt.Errorf("failed to insert identity resource %q: %w", resource.Name, err)
		}
	}
	for _, scope := range def.APIScopes {
		claims, err := joinList(scope.UserClaims)
		if err != nil {
			return fmt.Errorf("api scope %q: %w", scope.Name, err)
		}
		if _, err := tx.Exec(QueryInsertAPIScope, scope.Name, scope.DisplayName, claims); err != nil {
			return fmt.Errorf("failed to insert api scope %q: %w", scope.Name, err)
		}
	}
	for _, c := range def.Clients {
		if err := s.insertClient(tx, c); err != nil {
			return err
		}
		s.logger.Debug("Seeded client", log.String(log.LoggerKeyClientID, c.ClientID))
	}
	return nil
}

func (s *Seeder) insertClient(tx dbmodel.TxInterface, c model.ClientDefinition) error {
	columns := make([]string, 0, 4)
	for _, values := range [][]string{c.AllowedGrantTypes, c.AllowedScopes, c.RedirectURIs, c.PostLogoutRedirectURIs} {
		joined, err := joinList(values)
		if err != nil {
			return fmt.Errorf("client %q: %w", c.ClientID, err)
		}
		columns = append(columns, joined)
	}

	if _, err := tx.Exec(QueryInsertClient, c.ClientID, columns[0], columns[1], columns[2], columns[3],
		boolToInt(c.AllowOfflineAccess), boolToInt(c.RequireConsent)); err != nil {
		return fmt.Errorf("failed to insert client %q: %w", c.ClientID, err)
	}
	for _, secret := range c.Secrets {
		if _, err := tx.Exec(QueryInsertClientSecret, c.ClientID, secret.Algorithm, secret.Hash,
			secret.Salt, secret.Iterations); err != nil {
			return fmt.Errorf("failed to insert secret for client %q: %w", c.ClientID, err)
		}
	}
	return nil
}

// joinList encodes a list column and rejects values that contain the separator.
func joinList(values []string) (string, error) {
	for _, value := range values {
		if strings.Contains(value, listSeparator) {
			return "", fmt.Errorf("value %q cannot be stored in a list column", value)
		}
	}
	return utils.JoinStringArray(values, listSeparator), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

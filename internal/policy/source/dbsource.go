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

package source

import (
	"context"
	"fmt"

	"github.com/asgardeo/idpolicy/internal/policy/model"
	"github.com/asgardeo/idpolicy/internal/policy/store"
	"github.com/asgardeo/idpolicy/internal/system/database/provider"
)

// DatabaseSource reads a policy from the configuration store.
type DatabaseSource struct {
	dbProvider provider.DBProviderInterface
}

// NewDatabaseSource creates a policy source backed by the configuration store.
func NewDatabaseSource(dbProvider provider.DBProviderInterface) *DatabaseSource {
	return &DatabaseSource{dbProvider: dbProvider}
}

// Load reads the policy tables.
func (s *DatabaseSource) Load(ctx context.Context) (*model.PolicyDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dbClient, err := s.dbProvider.GetDBClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	return store.NewPolicyStore(dbClient).ReadDefinition()
}

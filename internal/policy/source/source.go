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

// Package source loads policy definitions from a policy file or the configuration store.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/asgardeo/idpolicy/internal/policy/model"
	"github.com/asgardeo/idpolicy/internal/policy/registry"
	"github.com/asgardeo/idpolicy/internal/system/config"
	"github.com/asgardeo/idpolicy/internal/system/crypto/hash"
	"github.com/asgardeo/idpolicy/internal/system/database/provider"
)

// PolicySourceInterface defines how a policy definition is obtained.
type PolicySourceInterface interface {
	Load(ctx context.Context) (*model.PolicyDefinition, error)
}

// GetPolicySource returns the policy source selected by the configuration.
func GetPolicySource(cfg *config.Config, home string,
	dbProvider provider.DBProviderInterface) (PolicySourceInterface, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required to select a policy source")
	}

	switch cfg.Policy.Source {
	case config.PolicySourceFile:
		return NewFileSource(config.ResolvePath(home, cfg.Policy.File), cfg.Policy.SchemaValidation), nil
	case config.PolicySourceDatabase:
		if dbProvider == nil {
			return nil, errors.New("the database policy source requires a database provider")
		}
		return NewDatabaseSource(dbProvider), nil
	default:
		return nil, fmt.Errorf("unsupported policy source: %s", cfg.Policy.Source)
	}
}

// Loader returns a registry loader that reads the source and builds a registry, hashing
// plaintext secrets with the hasher.
func Loader(src PolicySourceInterface, hasher hash.HasherInterface) registry.LoaderFunc {
	return func(ctx context.Context) (*registry.Registry, error) {
		def, err := src.Load(ctx)
		if err != nil {
			return nil, err
		}
		return registry.BuildFromDefinition(def, hasher)
	}
}

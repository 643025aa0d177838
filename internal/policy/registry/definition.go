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

package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/asgardeo/idpolicy/internal/policy/model"
	"github.com/asgardeo/idpolicy/internal/system/crypto/hash"
)

// BuildFromDefinition converts a serialisable policy into a registry. Plaintext secrets are hashed
// with the hasher; pre-hashed credentials are kept as declared.
func BuildFromDefinition(def *model.PolicyDefinition, hasher hash.HasherInterface) (*Registry, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: policy definition is empty", ErrInvalidConfiguration)
	}
	if hasher == nil {
		return nil, errors.New("a secret hasher is required to build the policy")
	}

	builder := NewBuilder()
	for _, resource := range def.IdentityResources {
		builder.AddIdentityResource(toIdentityResource(resource))
	}
	for _, scope := range def.APIScopes {
		builder.AddAPIScope(model.APIScope{
			Name:        scope.Name,
			DisplayName: scope.DisplayName,
			ClaimTypes:  scope.UserClaims,
		})
	}

	for _, clientDef := range def.Clients {
		client := model.Client{
			ClientID:               clientDef.ClientID,
			AllowedScopes:          clientDef.AllowedScopes,
			RedirectURIs:           clientDef.RedirectURIs,
			PostLogoutRedirectURIs: clientDef.PostLogoutRedirectURIs,
			AllowOfflineAccess:     clientDef.AllowOfflineAccess,
			RequireConsent:         clientDef.RequireConsent,
		}
		for _, grantType := range clientDef.AllowedGrantTypes {
			client.AllowedGrantTypes = append(client.AllowedGrantTypes, model.GrantType(grantType))
		}
		for i, secret := range clientDef.Secrets {
			credential, err := toCredential(secret, hasher)
			if err != nil {
				builder.addError(fmt.Errorf("client %q secret %d: %w", clientDef.ClientID, i, err))
				continue
			}
			client.Secrets = append(client.Secrets, credential)
		}
		builder.AddClient(client)
	}

	return builder.Build()
}

// toIdentityResource expands a bare standard scope name to its standard claims.
func toIdentityResource(def model.ResourceDefinition) model.IdentityResource {
	if len(def.UserClaims) == 0 {
		if standard, ok := model.StandardIdentityResource(def.Name); ok {
			if def.DisplayName != "" {
				standard.DisplayName = def.DisplayName
			}
			return standard
		}
	}
	return model.IdentityResource{
		Name:        def.Name,
		DisplayName: def.DisplayName,
		ClaimTypes:  def.UserClaims,
	}
}

func toCredential(secret model.SecretDefinition, hasher hash.HasherInterface) (hash.Credential, error) {
	if secret.IsPlaintext() {
		if secret.Value == "" {
			return hash.Credential{}, errors.New("secret must set a value or a hash")
		}
		return hasher.NewCredential([]byte(secret.Value))
	}
	if secret.Value != "" {
		return hash.Credential{}, errors.New("secret must not set both a value and a hash")
	}
	return hash.Credential{
		Algorithm:  hash.CredAlgorithm(strings.ToUpper(secret.Algorithm)),
		Hash:       strings.ToLower(secret.Hash),
		Salt:       secret.Salt,
		Iterations: secret.Iterations,
	}, nil
}

// ToDefinition converts a registry back into its serialisable form with hashed secrets.
func ToDefinition(reg *Registry) *model.PolicyDefinition {
	def := &model.PolicyDefinition{}
	for _, resource := range reg.IdentityResources() {
		def.IdentityResources = append(def.IdentityResources, model.ResourceDefinition{
			Name:        resource.Name,
			DisplayName: resource.DisplayName,
			UserClaims:  resource.ClaimTypes,
		})
	}
	for _, scope := range reg.APIScopes() {
		def.APIScopes = append(def.APIScopes, model.ResourceDefinition{
			Name:        scope.Name,
			DisplayName: scope.DisplayName,
			UserClaims:  scope.ClaimTypes,
		})
	}
	for _, client := range reg.Clients() {
		clientDef := model.ClientDefinition{
			ClientID:               client.ClientID,
			RedirectURIs:           client.RedirectURIs,
			PostLogoutRedirectURIs: client.PostLogoutRedirectURIs,
			AllowOfflineAccess:     client.AllowOfflineAccess,
			RequireConsent:         client.RequireConsent,
			AllowedScopes:          client.AllowedScopes,
		}
		for _, grantType := range client.AllowedGrantTypes {
			clientDef.AllowedGrantTypes = append(clientDef.AllowedGrantTypes, string(grantType))
		}
		for _, secret := range client.Secrets {
			clientDef.Secrets = append(clientDef.Secrets, model.SecretDefinition{
				Algorithm:  string(secret.Algorithm),
				Hash:       secret.Hash,
				Salt:       secret.Salt,
				Iterations: secret.Iterations,
			})
		}
		def.Clients = append(def.Clients, clientDef)
	}
	return def
}

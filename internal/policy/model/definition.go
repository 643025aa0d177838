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

package model

// PolicyDefinition is the serialisable form of a policy, as read from a file or the configuration store.
type PolicyDefinition struct {
	IdentityResources []ResourceDefinition `yaml:"identity_resources" json:"identity_resources"`
	APIScopes         []ResourceDefinition `yaml:"api_scopes" json:"api_scopes"`
	Clients           []ClientDefinition   `yaml:"clients" json:"clients"`
}

// ResourceDefinition declares an identity resource or an API scope.
type ResourceDefinition struct {
	Name        string   `yaml:"name" json:"name"`
	DisplayName string   `yaml:"display_name,omitempty" json:"display_name,omitempty"`
	UserClaims  []string `yaml:"user_claims,omitempty" json:"user_claims,omitempty"`
}

// SecretDefinition is either a plaintext value hashed at load time or a pre-hashed credential.
type SecretDefinition struct {
	Value      string `yaml:"value,omitempty" json:"value,omitempty"`
	Algorithm  string `yaml:"algorithm,omitempty" json:"algorithm,omitempty"`
	Hash       string `yaml:"hash,omitempty" json:"hash,omitempty"`
	Salt       string `yaml:"salt,omitempty" json:"salt,omitempty"`
	Iterations int    `yaml:"iterations,omitempty" json:"iterations,omitempty"`
}

// IsPlaintext reports whether the secret still has to be hashed.
func (s SecretDefinition) IsPlaintext() bool {
	return s.Hash == ""
}

// ClientDefinition declares a client registration.
type ClientDefinition struct {
	ClientID               string             `yaml:"client_id" json:"client_id"`
	Secrets                []SecretDefinition `yaml:"secrets,omitempty" json:"secrets,omitempty"`
	AllowedGrantTypes      []string           `yaml:"allowed_grant_types" json:"allowed_grant_types"`
	RedirectURIs           []string           `yaml:"redirect_uris,omitempty" json:"redirect_uris,omitempty"`
	PostLogoutRedirectURIs []string           `yaml:"post_logout_redirect_uris,omitempty" json:"post_logout_redirect_uris,omitempty"`
	AllowOfflineAccess     bool               `yaml:"allow_offline_access,omitempty" json:"allow_offline_access,omitempty"`
	RequireConsent         bool               `yaml:"require_consent,omitempty" json:"require_consent,omitempty"`
	AllowedScopes          []string           `yaml:"allowed_scopes,omitempty" json:"allowed_scopes,omitempty"`
}

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

import (
	"github.com/asgardeo/idpolicy/internal/system/crypto/hash"
	"github.com/asgardeo/idpolicy/internal/system/utils"
)

// IdentityResource is a named bundle of user claims released through user info.
type IdentityResource struct {
	Name        string
	DisplayName string
	ClaimTypes  []string
}

// Clone returns a deep copy of the identity resource.
func (r IdentityResource) Clone() IdentityResource {
	r.ClaimTypes = utils.CopyStrings(r.ClaimTypes)
	return r
}

// APIScope grants access to a protected resource; its claims are embedded in the access token.
type APIScope struct {
	Name        string
	DisplayName string
	ClaimTypes  []string
}

// Clone returns a deep copy of the API scope.
func (s APIScope) Clone() APIScope {
	s.ClaimTypes = utils.CopyStrings(s.ClaimTypes)
	return s
}

// Client is a registered OAuth2 client.
type Client struct {
	ClientID               string
	Secrets                []hash.Credential
	AllowedGrantTypes      []GrantType
	AllowedScopes          []string
	RedirectURIs           []string
	PostLogoutRedirectURIs []string
	AllowOfflineAccess     bool
	RequireConsent         bool
}

// IsAllowedGrantType checks if the provided grant type is allowed.
func (c *Client) IsAllowedGrantType(grantType GrantType) bool {
	for _, allowedGrantType := range c.AllowedGrantTypes {
		if grantType == allowedGrantType {
			return true
		}
	}
	return false
}

// HasInteractiveGrant reports whether any allowed grant type involves a user.
func (c *Client) HasInteractiveGrant() bool {
	for _, allowedGrantType := range c.AllowedGrantTypes {
		if allowedGrantType.IsInteractive() {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the client.
func (c *Client) Clone() *Client {
	clone := *c
	clone.Secrets = append([]hash.Credential{}, c.Secrets...)
	clone.AllowedGrantTypes = append([]GrantType{}, c.AllowedGrantTypes...)
	clone.AllowedScopes = utils.CopyStrings(c.AllowedScopes)
	clone.RedirectURIs = utils.CopyStrings(c.RedirectURIs)
	clone.PostLogoutRedirectURIs = utils.CopyStrings(c.PostLogoutRedirectURIs)
	return &clone
}

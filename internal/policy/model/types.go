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

// Package model defines the data structures of the authorization policy.
package model

// GrantType is the OAuth2 flow variant a client may use.
type GrantType string

const (
	// GrantTypeClientCredentials is the machine to machine flow.
	GrantTypeClientCredentials GrantType = "client_credentials"
	// GrantTypeAuthorizationCode is the interactive browser flow.
	GrantTypeAuthorizationCode GrantType = "authorization_code"
)

// IsValid checks whether the grant type is supported.
func (g GrantType) IsValid() bool {
	switch g {
	case GrantTypeClientCredentials, GrantTypeAuthorizationCode:
		return true
	default:
		return false
	}
}

// IsInteractive reports whether the grant type involves a user and a browser redirect.
func (g GrantType) IsInteractive() bool {
	return g == GrantTypeAuthorizationCode
}

// ScopeKind tells how the claims of a resolved scope are released.
type ScopeKind string

const (
	// ScopeKindIdentity claims are released through the user info endpoint.
	ScopeKindIdentity ScopeKind = "identity"
	// ScopeKindAPI claims are embedded in the access token.
	ScopeKindAPI ScopeKind = "api"
	// ScopeKindOfflineAccess requests a refresh token and carries no claims.
	ScopeKindOfflineAccess ScopeKind = "offline_access"
)

// RedirectPurpose selects which registered redirect set a candidate URI is matched against.
type RedirectPurpose string

const (
	// RedirectPurposeLogin matches against the redirect URIs.
	RedirectPurposeLogin RedirectPurpose = "login"
	// RedirectPurposeLogout matches against the post logout redirect URIs.
	RedirectPurposeLogout RedirectPurpose = "logout"
)

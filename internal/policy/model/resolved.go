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

import "github.com/asgardeo/idpolicy/internal/system/utils"

// ResolvedScope describes a requested scope after it was looked up in the registry.
type ResolvedScope struct {
	Name        string    `json:"name"`
	Kind        ScopeKind `json:"kind"`
	DisplayName string    `json:"display_name,omitempty"`
	ClaimTypes  []string  `json:"claim_types"`
}

// ResolvedScopes is the result of resolving a scope request.
type ResolvedScopes []ResolvedScope

// Names returns the scope names in resolution order.
func (r ResolvedScopes) Names() []string {
	names := make([]string, 0, len(r))
	for _, scope := range r {
		names = append(names, scope.Name)
	}
	return names
}

// IdentityClaimTypes returns the sorted claim types released through user info.
func (r ResolvedScopes) IdentityClaimTypes() []string {
	return r.claimTypes(ScopeKindIdentity)
}

// AccessTokenClaimTypes returns the sorted claim types embedded in the access token.
func (r ResolvedScopes) AccessTokenClaimTypes() []string {
	return r.claimTypes(ScopeKindAPI)
}

// HasOfflineAccess reports whether a refresh token was requested.
func (r ResolvedScopes) HasOfflineAccess() bool {
	for _, scope := range r {
		if scope.Kind == ScopeKindOfflineAccess {
			return true
		}
	}
	return false
}

func (r ResolvedScopes) claimTypes(kind ScopeKind) []string {
	var claims []string
	for _, scope := range r {
		if scope.Kind == kind {
			claims = append(claims, scope.ClaimTypes...)
		}
	}
	return utils.DedupSorted(claims)
}

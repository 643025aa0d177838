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

package authz

import "github.com/asgardeo/idpolicy/internal/policy/model"

// AuthorizationRequest holds the parameters of an authorization request that the policy decides on.
type AuthorizationRequest struct {
	ClientID     string
	ResponseType string
	RedirectURI  string
	Scopes       []string
}

// TokenRequest holds the parameters of a client credentials token request.
type TokenRequest struct {
	GrantType    string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// Decision is the outcome of an accepted request.
type Decision struct {
	ClientID          string               `json:"client_id"`
	Scopes            model.ResolvedScopes `json:"scopes"`
	RequireConsent    bool                 `json:"require_consent"`
	IssueRefreshToken bool                 `json:"issue_refresh_token"`
}

// ErrorResponse is an OAuth2 error returned for a rejected request.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

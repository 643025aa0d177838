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

// Package constants defines the reserved names, claim types and OAuth codes used by the policy registry.
package constants

// Standard OpenID Connect scope names.
const (
	ScopeOpenID        = "openid"
	ScopeProfile       = "profile"
	ScopeEmail         = "email"
	ScopeAddress       = "address"
	ScopePhone         = "phone"
	ScopeOfflineAccess = "offline_access"
)

// Standard OpenID Connect claim types.
const (
	ClaimSubject             = "sub"
	ClaimName                = "name"
	ClaimFamilyName          = "family_name"
	ClaimGivenName           = "given_name"
	ClaimMiddleName          = "middle_name"
	ClaimNickname            = "nickname"
	ClaimPreferredUsername   = "preferred_username"
	ClaimProfile             = "profile"
	ClaimPicture             = "picture"
	ClaimWebsite             = "website"
	ClaimGender              = "gender"
	ClaimBirthdate           = "birthdate"
	ClaimZoneInfo            = "zoneinfo"
	ClaimLocale              = "locale"
	ClaimUpdatedAt           = "updated_at"
	ClaimEmail               = "email"
	ClaimEmailVerified       = "email_verified"
	ClaimAddress             = "address"
	ClaimPhoneNumber         = "phone_number"
	ClaimPhoneNumberVerified = "phone_number_verified"
	ClaimRole                = "role"
)

// OAuth2 error codes.
const (
	ErrorInvalidRequest     = "invalid_request"
	ErrorInvalidClient      = "invalid_client"
	ErrorUnauthorizedClient = "unauthorized_client"
	ErrorInvalidScope       = "invalid_scope"
	ErrorServerError        = "server_error"

	ErrorUnsupportedGrantType    = "unsupported_grant_type"
	ErrorUnsupportedResponseType = "unsupported_response_type"
)

// ResponseTypeCode is the only response type accepted by an authorization request.
const ResponseTypeCode = "code"

// InvalidCredentialsMessage is the only message reported for a failed client authentication.
const InvalidCredentialsMessage = "invalid client credentials"

// ReservedScopeNames lists the scope names that cannot be registered.
var ReservedScopeNames = []string{ScopeOfflineAccess}

// IsReservedScope checks whether the scope name is built in.
func IsReservedScope(name string) bool {
	for _, reserved := range ReservedScopeNames {
		if reserved == name {
			return true
		}
	}
	return false
}

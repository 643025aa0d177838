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

import "github.com/asgardeo/idpolicy/internal/policy/constants"

var standardIdentityResources = map[string]IdentityResource{
	constants.ScopeOpenID: {
		Name:        constants.ScopeOpenID,
		DisplayName: "Your user identifier",
		ClaimTypes:  []string{constants.ClaimSubject},
	},
	constants.ScopeProfile: {
		Name:        constants.ScopeProfile,
		DisplayName: "User profile",
		ClaimTypes: []string{
			constants.ClaimName, constants.ClaimFamilyName, constants.ClaimGivenName,
			constants.ClaimMiddleName, constants.ClaimNickname, constants.ClaimPreferredUsername,
			constants.ClaimProfile, constants.ClaimPicture, constants.ClaimWebsite,
			constants.ClaimGender, constants.ClaimBirthdate, constants.ClaimZoneInfo,
			constants.ClaimLocale, constants.ClaimUpdatedAt,
		},
	},
	constants.ScopeEmail: {
		Name:        constants.ScopeEmail,
		DisplayName: "Your email address",
		ClaimTypes:  []string{constants.ClaimEmail, constants.ClaimEmailVerified},
	},
	constants.ScopeAddress: {
		Name:        constants.ScopeAddress,
		DisplayName: "Your postal address",
		ClaimTypes:  []string{constants.ClaimAddress},
	},
	constants.ScopePhone: {
		Name:        constants.ScopePhone,
		DisplayName: "Your phone number",
		ClaimTypes:  []string{constants.ClaimPhoneNumber, constants.ClaimPhoneNumberVerified},
	},
}

// StandardIdentityResource returns the OpenID Connect defined identity resource with the given name.
func StandardIdentityResource(name string) (IdentityResource, bool) {
	resource, ok := standardIdentityResources[name]
	if !ok {
		return IdentityResource{}, false
	}
	return resource.Clone(), true
}

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

	"github.com/asgardeo/idpolicy/internal/policy/constants"
	"github.com/asgardeo/idpolicy/internal/policy/model"
	"github.com/asgardeo/idpolicy/internal/system/error/serviceerror"
)

// ErrInvalidConfiguration is wrapped by every error returned when a policy fails validation.
var ErrInvalidConfiguration = errors.New("invalid policy configuration")

// UnknownScopeError is returned when a requested scope is not registered.
type UnknownScopeError struct {
	Scope string
}

func (e *UnknownScopeError) Error() string {
	return fmt.Sprintf("unknown scope: %q", e.Scope)
}

// ServiceError returns the service error describing the failure.
func (e *UnknownScopeError) ServiceError() *serviceerror.ServiceError {
	return constants.ErrorUnknownScope.WithDescription("The scope %q is not registered", e.Scope)
}

// ScopeNotAllowedError is returned when a client requests scopes outside its allow-list.
type ScopeNotAllowedError struct {
	ClientID string
	Scopes   []string
}

func (e *ScopeNotAllowedError) Error() string {
	return fmt.Sprintf("scopes not allowed for client %q: %s", e.ClientID, strings.Join(e.Scopes, " "))
}

// ServiceError returns the service error describing the failure.
func (e *ScopeNotAllowedError) ServiceError() *serviceerror.ServiceError {
	return constants.ErrorScopeNotAllowed.WithDescription("The client is not allowed to request: %s",
		strings.Join(e.Scopes, " "))
}

// InvalidRedirectError is returned when a redirect URI is not an exact registered match.
type InvalidRedirectError struct {
	ClientID string
	URI      string
	Purpose  model.RedirectPurpose
}

func (e *InvalidRedirectError) Error() string {
	return fmt.Sprintf("invalid %s redirect uri %q for client %q", e.Purpose, e.URI, e.ClientID)
}

// ServiceError returns the service error describing the failure.
func (e *InvalidRedirectError) ServiceError() *serviceerror.ServiceError {
	err := constants.ErrorInvalidRedirect
	return &err
}

// InvalidCredentialsError is returned when client authentication fails.
// It carries nothing that tells an unknown client apart from a wrong secret.
type InvalidCredentialsError struct{}

func (e *InvalidCredentialsError) Error() string {
	return constants.InvalidCredentialsMessage
}

// ServiceError returns the service error describing the failure.
func (e *InvalidCredentialsError) ServiceError() *serviceerror.ServiceError {
	err := constants.ErrorInvalidCredentials
	return &err
}

// GrantTypeNotAllowedError is returned when a client is not registered for a grant type.
type GrantTypeNotAllowedError struct {
	ClientID  string
	GrantType model.GrantType
}

func (e *GrantTypeNotAllowedError) Error() string {
	return fmt.Sprintf("grant type %q is not allowed for client %q", e.GrantType, e.ClientID)
}

// ServiceError returns the service error describing the failure.
func (e *GrantTypeNotAllowedError) ServiceError() *serviceerror.ServiceError {
	return constants.ErrorGrantTypeNotAllowed.WithDescription("The grant type %q is not allowed for the client",
		e.GrantType)
}

// ToOAuthError maps a query error to the OAuth2 error code and description reported to the caller.
func ToOAuthError(err error) (string, string) {
	var (
		unknownScope    *UnknownScopeError
		scopeNotAllowed *ScopeNotAllowedError
		invalidRedirect *InvalidRedirectError
		invalidClient   *InvalidCredentialsError
		grantNotAllowed *GrantTypeNotAllowedError
	)

	switch {
	case errors.As(err, &unknownScope):
		return constants.ErrorInvalidScope, unknownScope.ServiceError().ErrorDescription
	case errors.As(err, &scopeNotAllowed):
		return constants.ErrorInvalidScope, scopeNotAllowed.ServiceError().ErrorDescription
	case errors.As(err, &invalidRedirect):
		return constants.ErrorInvalidRequest, invalidRedirect.ServiceError().ErrorDescription
	case errors.As(err, &invalidClient):
		return constants.ErrorInvalidClient, invalidClient.ServiceError().ErrorDescription
	case errors.As(err, &grantNotAllowed):
		return constants.ErrorUnauthorizedClient, grantNotAllowed.ServiceError().ErrorDescription
	default:
		return constants.ErrorServerError, constants.InternalServerError.ErrorDescription
	}
}

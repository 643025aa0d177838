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

package constants

import "github.com/asgardeo/idpolicy/internal/system/error/serviceerror"

// Client errors for policy queries.
var (
	// ErrorUnknownScope is the error returned when a requested scope is not registered.
	ErrorUnknownScope = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "POL-1001",
		Error:            "Unknown scope",
		ErrorDescription: "The requested scope is not registered",
	}
	// ErrorScopeNotAllowed is the error returned when a client requests a scope outside its allow-list.
	ErrorScopeNotAllowed = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "POL-1002",
		Error:            "Scope not allowed",
		ErrorDescription: "One or more requested scopes are not allowed for the client",
	}
	// ErrorInvalidRedirect is the error returned when a redirect URI is not an exact registered match.
	ErrorInvalidRedirect = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "POL-1003",
		Error:            "Invalid redirect URI",
		ErrorDescription: "The redirect URI is not registered for the client",
	}
	// ErrorInvalidCredentials is the error returned when client authentication fails.
	ErrorInvalidCredentials = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "POL-1004",
		Error:            "Invalid client credentials",
		ErrorDescription: "Client authentication failed",
	}
	// ErrorGrantTypeNotAllowed is the error returned when a client uses a grant type it is not registered for.
	ErrorGrantTypeNotAllowed = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "POL-1005",
		Error:            "Grant type not allowed",
		ErrorDescription: "The grant type is not allowed for the client",
	}
)

// Server errors for policy loading.
var (
	// ErrorInvalidConfiguration is the error returned when the policy fails validation.
	ErrorInvalidConfiguration = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "POL-5001",
		Error:            "Invalid policy configuration",
		ErrorDescription: "The policy configuration failed validation",
	}
	// ErrorPolicySourceFailure is the error returned when the policy cannot be read from its source.
	ErrorPolicySourceFailure = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "POL-5002",
		Error:            "Policy source failure",
		ErrorDescription: "The policy could not be read from the configured source",
	}
	// InternalServerError is the error returned for unexpected failures.
	InternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "POL-5000",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)

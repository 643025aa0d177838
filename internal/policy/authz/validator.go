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

// Package authz combines the policy queries into the checks made for authorization and
// client credentials token requests.
package authz

import (
	"github.com/asgardeo/idpolicy/internal/policy/constants"
	"github.com/asgardeo/idpolicy/internal/policy/model"
	"github.com/asgardeo/idpolicy/internal/policy/registry"
	"github.com/asgardeo/idpolicy/internal/system/log"
)

// RequestValidatorInterface defines the request checks backed by the policy.
type RequestValidatorInterface interface {
	ValidateAuthorizationRequest(req AuthorizationRequest) (*Decision, *ErrorResponse)
	ValidateTokenRequest(req TokenRequest) (*Decision, *ErrorResponse)
}

// RequestValidator checks requests against a policy.
type RequestValidator struct {
	policy registry.PolicyServiceInterface
	logger *log.Logger
}

// NewRequestValidator creates a request validator for the policy.
func NewRequestValidator(policy registry.PolicyServiceInterface) RequestValidatorInterface {
	return &RequestValidator{
		policy: policy,
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RequestValidator")),
	}
}

// ValidateAuthorizationRequest checks an authorization code flow request.
func (v *RequestValidator) ValidateAuthorizationRequest(req AuthorizationRequest) (*Decision, *ErrorResponse) {
	if req.ResponseType == "" {
		return nil, invalidRequest("Missing response_type parameter")
	}
	if req.ResponseType != constants.ResponseTypeCode {
		return nil, &ErrorResponse{
			Error:            constants.ErrorUnsupportedResponseType,
			ErrorDescription: "Unsupported response type",
		}
	}
	if req.ClientID == "" {
		return nil, invalidRequest("Missing client_id parameter")
	}
	if req.RedirectURI == "" {
		return nil, invalidRequest("Missing redirect_uri parameter")
	}

	if err := v.policy.ValidateGrantType(req.ClientID, model.GrantTypeAuthorizationCode); err != nil {
		return nil, toErrorResponse(err)
	}
	if err := v.policy.ValidateRedirect(req.ClientID, model.GrantTypeAuthorizationCode, req.RedirectURI,
		model.RedirectPurposeLogin); err != nil {
		return nil, toErrorResponse(err)
	}
	if len(req.Scopes) == 0 {
		return nil, invalidRequest("Missing scope parameter")
	}

	resolved, errResp := v.authorizeScopes(req.ClientID, req.Scopes)
	if errResp != nil {
		return nil, errResp
	}

	return &Decision{
		ClientID:          req.ClientID,
		Scopes:            resolved,
		RequireConsent:    v.policy.RequiresConsent(req.ClientID),
		IssueRefreshToken: resolved.HasOfflineAccess(),
	}, nil
}

// ValidateTokenRequest checks a client credentials token request. Without requested scopes the
// client receives every API scope it is allowed.
func (v *RequestValidator) ValidateTokenRequest(req TokenRequest) (*Decision, *ErrorResponse) {
	if req.GrantType != string(model.GrantTypeClientCredentials) {
		return nil, &ErrorResponse{
			Error:            constants.ErrorUnsupportedGrantType,
			ErrorDescription: "Unsupported grant type",
		}
	}
	if req.ClientID == "" || req.ClientSecret == "" {
		return nil, invalidRequest("Client ID and secret are required")
	}

	if err := v.policy.VerifyClientSecret(req.ClientID, req.ClientSecret); err != nil {
		v.logger.Debug("Client authentication failed",
			log.String(log.LoggerKeyClientID, log.MaskString(req.ClientID)))
		return nil, toErrorResponse(err)
	}
	if err := v.policy.ValidateGrantType(req.ClientID, model.GrantTypeClientCredentials); err != nil {
		return nil, toErrorResponse(err)
	}

	requested := req.Scopes
	if len(requested) == 0 {
		requested = v.allowedAPIScopes(req.ClientID)
		if len(requested) == 0 {
			return nil, &ErrorResponse{
				Error:            constants.ErrorInvalidScope,
				ErrorDescription: "No scopes are allowed for the client",
			}
		}
	}

	resolved, errResp := v.authorizeScopes(req.ClientID, requested)
	if errResp != nil {
		return nil, errResp
	}
	for _, scope := range resolved {
		if scope.Kind != model.ScopeKindAPI {
			return nil, &ErrorResponse{
				Error:            constants.ErrorInvalidScope,
				ErrorDescription: "Only API scopes can be requested with the client_credentials grant",
			}
		}
	}

	return &Decision{ClientID: req.ClientID, Scopes: resolved}, nil
}

// authorizeScopes checks the client's allow-list before resolving the scopes.
func (v *RequestValidator) authorizeScopes(clientID string, requested []string) (model.ResolvedScopes,
	*ErrorResponse) {
	allowed, err := v.policy.AuthorizeClientScopes(clientID, requested)
	if err != nil {
		return nil, toErrorResponse(err)
	}
	resolved, err := v.policy.ResolveScopes(allowed)
	if err != nil {
		return nil, toErrorResponse(err)
	}
	return resolved, nil
}

func (v *RequestValidator) allowedAPIScopes(clientID string) []string {
	client, ok := v.policy.GetClient(clientID)
	if !ok {
		return nil
	}
	resolved, err := v.policy.ResolveScopes(client.AllowedScopes)
	if err != nil {
		return nil
	}

	var scopes []string
	for _, scope := range resolved {
		if scope.Kind == model.ScopeKindAPI {
			scopes = append(scopes, scope.Name)
		}
	}
	return scopes
}

func invalidRequest(description string) *ErrorResponse {
	return &ErrorResponse{Error: constants.ErrorInvalidRequest, ErrorDescription: description}
}

func toErrorResponse(err error) *ErrorResponse {
	code, description := registry.ToOAuthError(err)
	return &ErrorResponse{Error: code, ErrorDescription: description}
}

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

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asgardeo/idpolicy/internal/policy/authz"
	"github.com/asgardeo/idpolicy/internal/policy/constants"
	"github.com/asgardeo/idpolicy/internal/policy/model"
)

func newAuthorizeRequestCmd(opts *options) *cobra.Command {
	req := authz.AuthorizationRequest{}

	cmd := &cobra.Command{
		Use:   "authorize-request --client ID --redirect-uri URI SCOPE...",
		Short: "Decide an authorization code flow request",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.loadRegistry(cmd.Context())
			if err != nil {
				return err
			}

			req.Scopes = args
			decision, errResp := authz.NewRequestValidator(reg).ValidateAuthorizationRequest(req)
			if errResp != nil {
				return fmt.Errorf("%s: %s", errResp.Error, errResp.ErrorDescription)
			}
			return writeDecision(cmd, opts, decision)
		},
	}
	cmd.Flags().StringVar(&req.ClientID, "client", "", "Client identifier")
	cmd.Flags().StringVar(&req.RedirectURI, "redirect-uri", "", "Redirect URI of the request")
	cmd.Flags().StringVar(&req.ResponseType, "response-type", constants.ResponseTypeCode, "Response type of the request")
	return cmd
}

func newTokenRequestCmd(opts *options) *cobra.Command {
	req := authz.TokenRequest{}

	cmd := &cobra.Command{
		Use:   "token-request --client ID --secret SECRET [SCOPE...]",
		Short: "Decide a client credentials token request",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.loadRegistry(cmd.Context())
			if err != nil {
				return err
			}

			req.Scopes = args
			decision, errResp := authz.NewRequestValidator(reg).ValidateTokenRequest(req)
			if errResp != nil {
				return fmt.Errorf("%s: %s", errResp.Error, errResp.ErrorDescription)
			}
			return writeDecision(cmd, opts, decision)
		},
	}
	cmd.Flags().StringVar(&req.ClientID, "client", "", "Client identifier")
	cmd.Flags().StringVar(&req.ClientSecret, "secret", "", "Plaintext client secret")
	cmd.Flags().StringVar(&req.GrantType, "grant", string(model.GrantTypeClientCredentials), "Grant type of the request")
	return cmd
}

func writeDecision(cmd *cobra.Command, opts *options, decision *authz.Decision) error {
	if opts.jsonOutput {
		return writeJSON(cmd, decision)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scopes: %s\n", strings.Join(decision.Scopes.Names(), " "))
	fmt.Fprintf(out, "Identity claims: %s\n", strings.Join(decision.Scopes.IdentityClaimTypes(), " "))
	fmt.Fprintf(out, "Access token claims: %s\n", strings.Join(decision.Scopes.AccessTokenClaimTypes(), " "))
	fmt.Fprintf(out, "Consent required: %t\n", decision.RequireConsent)
	fmt.Fprintf(out, "Refresh token: %t\n", decision.IssueRefreshToken)
	return nil
}

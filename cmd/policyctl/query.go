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

	"github.com/asgardeo/idpolicy/internal/policy/model"
)

type validateOutput struct {
	Valid             bool   `json:"valid"`
	Revision          string `json:"revision"`
	IdentityResources int    `json:"identity_resources"`
	APIScopes         int    `json:"api_scopes"`
	Clients           int    `json:"clients"`
}

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the policy and report whether it is valid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.loadRegistry(cmd.Context())
			if err != nil {
				return err
			}

			out := validateOutput{
				Valid:             true,
				Revision:          reg.Revision(),
				IdentityResources: len(reg.IdentityResources()),
				APIScopes:         len(reg.APIScopes()),
				Clients:           len(reg.Clients()),
			}
			if opts.jsonOutput {
				return writeJSON(cmd, out)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Policy is valid: %d identity resources, %d API scopes, %d clients\n",
				out.IdentityResources, out.APIScopes, out.Clients)
			fmt.Fprintf(cmd.OutOrStdout(), "Revision: %s\n", out.Revision)
			return nil
		},
	}
}

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve SCOPE...",
		Short: "Resolve scope names to identity resources and API scopes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.loadRegistry(cmd.Context())
			if err != nil {
				return err
			}

			resolved, err := reg.ResolveScopes(args)
			if err != nil {
				return policyError(err)
			}
			if opts.jsonOutput {
				return writeJSON(cmd, resolved)
			}
			for _, scope := range resolved {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", scope.Name, scope.Kind,
					strings.Join(scope.ClaimTypes, " "))
			}
			return nil
		},
	}
}

func newAuthorizeCmd(opts *options) *cobra.Command {
	var clientID string

	cmd := &cobra.Command{
		Use:   "authorize --client ID SCOPE...",
		Short: "Check that a client may request the scopes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.loadRegistry(cmd.Context())
			if err != nil {
				return err
			}

			allowed, err := reg.AuthorizeClientScopes(clientID, args)
			if err != nil {
				return policyError(err)
			}
			if opts.jsonOutput {
				return writeJSON(cmd, map[string]interface{}{"client_id": clientID, "scopes": allowed})
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(allowed, " "))
			return nil
		},
	}
	cmd.Flags().StringVar(&clientID, "client", "", "Client identifier")
	_ = cmd.MarkFlagRequired("client")
	return cmd
}

func newCheckRedirectCmd(opts *options) *cobra.Command {
	var (
		clientID  string
		grantType string
		logout    bool
	)

	cmd := &cobra.Command{
		Use:   "check-redirect --client ID URI",
		Short: "Check that a URI is a registered redirect target of a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.loadRegistry(cmd.Context())
			if err != nil {
				return err
			}

			purpose := model.RedirectPurposeLogin
			if logout {
				purpose = model.RedirectPurposeLogout
			}
			if err := reg.ValidateRedirect(clientID, model.GrantType(grantType), args[0], purpose); err != nil {
				return policyError(err)
			}
			if opts.jsonOutput {
				return writeJSON(cmd, map[string]interface{}{"client_id": clientID, "uri": args[0],
					"purpose": purpose, "allowed": true})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Redirect URI is allowed for %s\n", purpose)
			return nil
		},
	}
	cmd.Flags().StringVar(&clientID, "client", "", "Client identifier")
	cmd.Flags().StringVar(&grantType, "grant", string(model.GrantTypeAuthorizationCode), "Grant type of the flow")
	cmd.Flags().BoolVar(&logout, "logout", false, "Match against the post logout redirect URIs")
	_ = cmd.MarkFlagRequired("client")
	return cmd
}

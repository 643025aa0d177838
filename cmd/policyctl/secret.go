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
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/asgardeo/idpolicy/internal/policy/model"
	"github.com/asgardeo/idpolicy/internal/system/crypto/hash"
	"github.com/asgardeo/idpolicy/internal/system/log"
)

func newVerifySecretCmd(opts *options) *cobra.Command {
	var (
		clientID string
		secret   string
	)

	cmd := &cobra.Command{
		Use:   "verify-secret --client ID [--secret SECRET]",
		Short: "Verify a client secret; reads the secret from standard input when --secret is not set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("secret") {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no secret was given on standard input")
				}
				secret = strings.TrimRight(line, "\r\n")
			}

			reg, err := opts.loadRegistry(cmd.Context())
			if err != nil {
				return err
			}

			if err := reg.VerifyClientSecret(clientID, secret); err != nil {
				opts.logger.Warn("Client authentication failed",
					log.String(log.LoggerKeyClientID, log.MaskString(clientID)))
				return policyError(err)
			}
			if opts.jsonOutput {
				return writeJSON(cmd, map[string]interface{}{"client_id": clientID, "valid": true})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Client credentials are valid")
			return nil
		},
	}
	cmd.Flags().StringVar(&clientID, "client", "", "Client identifier")
	cmd.Flags().StringVar(&secret, "secret", "", "Plaintext client secret")
	_ = cmd.MarkFlagRequired("client")
	return cmd
}

func newHashSecretCmd(opts *options) *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:   "hash-secret SECRET",
		Short: "Hash a client secret for use in a policy file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if algorithm == "" {
				algorithm = opts.cfg.Security.Hash.Algorithm
			}
			hasher, err := hash.NewHasher(algorithm, opts.cfg.Security.Hash.PBKDF2Iterations)
			if err != nil {
				return err
			}
			credential, err := hasher.NewCredential([]byte(args[0]))
			if err != nil {
				return fmt.Errorf("failed to hash the secret: %w", err)
			}

			secret := model.SecretDefinition{
				Algorithm:  string(credential.Algorithm),
				Hash:       credential.Hash,
				Salt:       credential.Salt,
				Iterations: credential.Iterations,
			}
			if opts.jsonOutput {
				return writeJSON(cmd, secret)
			}
			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)
			if err := encoder.Encode([]model.SecretDefinition{secret}); err != nil {
				return err
			}
			return encoder.Close()
		},
	}
	cmd.Flags().StringVar(&algorithm, "algorithm", "", "Hash algorithm (SHA256 or PBKDF2; default: security.hash.algorithm)")
	return cmd
}

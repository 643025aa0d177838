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

	"github.com/spf13/cobra"

	"github.com/asgardeo/idpolicy/internal/system/log"
)

func newSeedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the policy tables and seed an empty configuration store from the policy file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hasher, err := opts.newHasher()
			if err != nil {
				return err
			}

			dbProvider := opts.newDBProvider()
			defer func() {
				if err := dbProvider.Close(); err != nil {
					opts.logger.Error("Failed to close the database", log.Error(err))
				}
			}()

			seeded, err := opts.seed(cmd.Context(), dbProvider, hasher)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd, map[string]interface{}{"seeded": seeded})
			}
			if seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration store seeded from the policy file")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration store already has clients; nothing was seeded")
			}
			return nil
		},
	}
}

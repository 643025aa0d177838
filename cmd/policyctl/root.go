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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/asgardeo/idpolicy/internal/policy/registry"
	"github.com/asgardeo/idpolicy/internal/policy/source"
	"github.com/asgardeo/idpolicy/internal/policy/store"
	"github.com/asgardeo/idpolicy/internal/system/config"
	"github.com/asgardeo/idpolicy/internal/system/constants"
	"github.com/asgardeo/idpolicy/internal/system/crypto/hash"
	"github.com/asgardeo/idpolicy/internal/system/database/provider"
	"github.com/asgardeo/idpolicy/internal/system/error/serviceerror"
	"github.com/asgardeo/idpolicy/internal/system/log"
)

// options holds the persistent flags and the configuration resolved from them.
type options struct {
	home       string
	configPath string
	policyPath string
	logLevel   string
	jsonOutput bool

	cfg    *config.Config
	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "policyctl",
		Short: "Validate and query an identity policy",
		Long: `policyctl loads the identity resources, API scopes and clients of an identity policy
and answers the authorization questions a token service asks about them.

The policy is read from the file or the configuration store selected in deployment.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initialize()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.home, "home", "", "Home directory that relative paths are resolved against (default: working directory)")
	flags.StringVar(&opts.configPath, "config", "", "Deployment configuration file (default: <home>/"+
		constants.DefaultDeploymentConfigPath+")")
	flags.StringVar(&opts.policyPath, "policy", "", "Policy file; overrides the configured policy source")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Output command results in JSON format")

	rootCmd.AddCommand(
		newValidateCmd(opts),
		newResolveCmd(opts),
		newAuthorizeCmd(opts),
		newCheckRedirectCmd(opts),
		newAuthorizeRequestCmd(opts),
		newTokenRequestCmd(opts),
		newVerifySecretCmd(opts),
		newHashSecretCmd(opts),
		newSeedCmd(opts),
	)
	return rootCmd
}

// initialize loads the deployment configuration and configures logging.
func (o *options) initialize() error {
	if o.home == "" {
		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get the working directory: %w", err)
		}
		o.home = dir
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	if o.policyPath != "" {
		policyPath, err := filepath.Abs(o.policyPath)
		if err != nil {
			return fmt.Errorf("invalid policy path: %w", err)
		}
		cfg.Policy.Source = config.PolicySourceFile
		cfg.Policy.File = policyPath
	}

	logLevel := cfg.Log.Level
	if envLevel := os.Getenv(constants.LogLevelEnvironmentVariable); envLevel != "" {
		logLevel = envLevel
	}
	if o.logLevel != "" {
		logLevel = o.logLevel
	}
	if err := log.Configure(logLevel, cfg.Log.Format); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	o.cfg = cfg
	o.logger = log.GetLogger().With(log.String(log.LoggerKeyComponentName, "PolicyCtl"))
	return nil
}

// loadConfig reads the deployment configuration. A missing default file yields the defaults.
func (o *options) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = filepath.Join(o.home, constants.DefaultDeploymentConfigPath)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.DefaultConfig(), nil
		}
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load deployment configuration: %w", err)
	}
	return cfg, nil
}

func (o *options) newHasher() (hash.HasherInterface, error) {
	return hash.NewHasher(o.cfg.Security.Hash.Algorithm, o.cfg.Security.Hash.PBKDF2Iterations)
}

func (o *options) newDBProvider() provider.DBProviderInterface {
	return provider.NewDBProvider(o.cfg.Database.Policy, o.home)
}

// loadRegistry builds the registry from the configured policy source. An empty configuration
// store is seeded from the policy file first when seeding is enabled.
func (o *options) loadRegistry(ctx context.Context) (*registry.Registry, error) {
	hasher, err := o.newHasher()
	if err != nil {
		return nil, err
	}

	var dbProvider provider.DBProviderInterface
	if o.cfg.Policy.Source == config.PolicySourceDatabase {
		dbProvider = o.newDBProvider()
		defer func() {
			if err := dbProvider.Close(); err != nil {
				o.logger.Error("Failed to close the database", log.Error(err))
			}
		}()
		if o.cfg.Policy.SeedDatabase {
			if _, err := o.seed(ctx, dbProvider, hasher); err != nil {
				return nil, err
			}
		}
	}

	src, err := source.GetPolicySource(o.cfg, o.home, dbProvider)
	if err != nil {
		return nil, err
	}
	return source.Loader(src, hasher)(ctx)
}

// seed writes the policy file into the configuration store unless it already has clients.
func (o *options) seed(ctx context.Context, dbProvider provider.DBProviderInterface,
	hasher hash.HasherInterface) (bool, error) {
	fileSource := source.NewFileSource(config.ResolvePath(o.home, o.cfg.Policy.File), o.cfg.Policy.SchemaValidation)
	reg, err := source.Loader(fileSource, hasher)(ctx)
	if err != nil {
		return false, err
	}

	dbClient, err := dbProvider.GetDBClient(ctx)
	if err != nil {
		return false, err
	}
	seeder := store.NewSeeder(dbClient)
	if err := seeder.EnsureSchema(); err != nil {
		return false, err
	}
	return seeder.SeedIfEmpty(reg)
}

// writeJSON prints the value as indented JSON.
func writeJSON(cmd *cobra.Command, v interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// policyError renders a query error with its OAuth2 error code.
func policyError(err error) error {
	var serviceErr interface{ ServiceError() *serviceerror.ServiceError }
	if !errors.As(err, &serviceErr) {
		return err
	}
	code, description := registry.ToOAuthError(err)
	return fmt.Errorf("%s (%s): %s", code, serviceErr.ServiceError().Code, description)
}

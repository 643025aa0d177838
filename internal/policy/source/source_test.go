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

package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/idpolicy/internal/policy/registry"
	"github.com/asgardeo/idpolicy/internal/policy/store"
	"github.com/asgardeo/idpolicy/internal/system/config"
	"github.com/asgardeo/idpolicy/internal/system/crypto/hash"
	dbmodel "github.com/asgardeo/idpolicy/internal/system/database/model"
	"github.com/asgardeo/idpolicy/tests/mocks/databasemock"
)

const testPolicy = `
identity_resources:
  - name: openid
  - name: profile
  - name: roles
    display_name: User role(s)
    user_claims: [role]
api_scopes:
  - name: api1
    display_name: My API
    user_claims: [role]
clients:
  - client_id: client
    secrets:
      - algorithm: SHA256
        hash: 2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b
    allowed_grant_types: [client_credentials]
    allowed_scopes: [api1]
  - client_id: mvc
    secrets:
      - value: secret
    allowed_grant_types: [authorization_code]
    redirect_uris: [https://localhost:44342/signin-oidc]
    post_logout_redirect_uris: [https://localhost:44342/signout-callback-oidc]
    allow_offline_access: true
    require_consent: true
    allowed_scopes: [openid, profile, roles, api1]
`

func writePolicyFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}
	return path
}

type FileSourceTestSuite struct {
	suite.Suite
}

func TestFileSourceSuite(t *testing.T) {
	suite.Run(t, new(FileSourceTestSuite))
}

func (suite *FileSourceTestSuite) TestLoadYAML() {
	path := writePolicyFile(suite.T(), "policy.yaml", testPolicy)

	def, err := NewFileSource(path, true).Load(context.Background())

	suite.Require().NoError(err)
	assert.Len(suite.T(), def.IdentityResources, 3)
	assert.Len(suite.T(), def.APIScopes, 1)
	suite.Require().Len(def.Clients, 2)
	assert.False(suite.T(), def.Clients[0].Secrets[0].IsPlaintext())
	assert.Equal(suite.T(), "secret", def.Clients[1].Secrets[0].Value)
	assert.True(suite.T(), def.Clients[1].AllowOfflineAccess)
}

func (suite *FileSourceTestSuite) TestLoadJSON() {
	path := writePolicyFile(suite.T(), "policy.json", `{
  "api_scopes": [{"name": "api1"}],
  "clients": [{
    "client_id": "client",
    "secrets": [{"value": "secret"}],
    "allowed_grant_types": ["client_credentials"],
    "allowed_scopes": ["api1"]
  }]
}`)

	def, err := NewFileSource(path, true).Load(context.Background())

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "client", def.Clients[0].ClientID)
	assert.Equal(suite.T(), []string{"client_credentials"}, def.Clients[0].AllowedGrantTypes)
}

func (suite *FileSourceTestSuite) TestSchemaViolations() {
	testCases := []struct {
		name     string
		document string
		location string
	}{
		{
			name:     "UnknownGrantType",
			document: "clients:\n  - client_id: c\n    allowed_grant_types: [password]\n",
			location: "/clients/0/allowed_grant_types/0",
		},
		{
			name:     "UnknownProperty",
			document: "api_scopes:\n  - name: api1\n    scopes: [a]\n",
			location: "/api_scopes/0",
		},
		{
			name:     "MissingClientID",
			document: "clients:\n  - allowed_grant_types: [client_credentials]\n",
			location: "/clients/0",
		},
		{
			name:     "SecretWithValueAndHash",
			document: "clients:\n  - client_id: c\n    allowed_grant_types: [client_credentials]\n" +
				"    secrets:\n      - value: s\n        algorithm: SHA256\n        hash: abcd\n",
			location: "/clients/0/secrets/0",
		},
		{
			name:     "WhitespaceInScopeName",
			document: "identity_resources:\n  - name: \"open id\"\n",
			location: "/identity_resources/0/name",
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			path := writePolicyFile(t, "policy.yaml", tc.document)

			def, err := NewFileSource(path, true).Load(context.Background())

			assert.Nil(t, def)
			assert.ErrorIs(t, err, registry.ErrInvalidConfiguration)
			assert.ErrorContains(t, err, tc.location)
		})
	}
}

func (suite *FileSourceTestSuite) TestSchemaReportsEveryViolation() {
	_, err := Parse([]byte("clients:\n  - client_id: a\n    allowed_grant_types: [password]\n"+
		"  - client_id: b\n    allowed_grant_types: [implicit]\n"), true)

	assert.ErrorContains(suite.T(), err, "/clients/0/allowed_grant_types/0")
	assert.ErrorContains(suite.T(), err, "/clients/1/allowed_grant_types/0")
}

func (suite *FileSourceTestSuite) TestUnknownFieldWithoutSchemaValidation() {
	_, err := Parse([]byte("api_scopes:\n  - name: api1\n    scopes: [a]\n"), false)

	assert.ErrorContains(suite.T(), err, "failed to decode policy document")
}

func (suite *FileSourceTestSuite) TestLoadErrors() {
	testCases := []struct {
		name        string
		path        func(t *testing.T) string
		errContains string
	}{
		{"EmptyPath", func(t *testing.T) string { return "" }, "not configured"},
		{"UnsupportedExtension", func(t *testing.T) string {
			return writePolicyFile(t, "policy.toml", testPolicy)
		}, "unsupported policy file type"},
		{"MissingFile", func(t *testing.T) string {
			return filepath.Join(t.TempDir(), "missing.yaml")
		}, "failed to read policy file"},
		{"EmptyFile", func(t *testing.T) string {
			return writePolicyFile(t, "policy.yaml", "  \n")
		}, "policy document is empty"},
		{"CommentsOnly", func(t *testing.T) string {
			return writePolicyFile(t, "policy.yaml", "# nothing here\n")
		}, "policy document is empty"},
		{"MalformedYAML", func(t *testing.T) string {
			return writePolicyFile(t, "policy.yaml", "clients: [\n")
		}, "failed to parse policy document"},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			_, err := NewFileSource(tc.path(t), true).Load(context.Background())
			assert.ErrorContains(t, err, tc.errContains)
		})
	}
}

func (suite *FileSourceTestSuite) TestLoadCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileSource(writePolicyFile(suite.T(), "policy.yaml", testPolicy), true).Load(ctx)

	assert.ErrorIs(suite.T(), err, context.Canceled)
}

func TestDatabaseSourceLoad(t *testing.T) {
	mockClient := &databasemock.MockDBClient{
		MockQuery: func(query dbmodel.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
			if query.ID == store.QueryGetAPIScopes.ID {
				return []map[string]interface{}{{"name": "api1", "display_name": "My API", "claim_types": "role"}}, nil
			}
			return []map[string]interface{}{}, nil
		},
	}

	def, err := NewDatabaseSource(&databasemock.MockDBProvider{Client: mockClient}).Load(context.Background())

	assert.NoError(t, err)
	assert.Len(t, def.APIScopes, 1)
	assert.Empty(t, def.Clients)
}

func TestDatabaseSourceProviderError(t *testing.T) {
	src := NewDatabaseSource(&databasemock.MockDBProvider{Err: errors.New("connection refused")})

	_, err := src.Load(context.Background())

	assert.ErrorContains(t, err, "connection refused")
}

func TestGetPolicySource(t *testing.T) {
	cfg := config.DefaultConfig()

	src, err := GetPolicySource(cfg, "/opt/idpolicy", nil)
	assert.NoError(t, err)
	fileSource, ok := src.(*FileSource)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join("/opt/idpolicy", cfg.Policy.File), fileSource.path)

	cfg.Policy.Source = config.PolicySourceDatabase
	_, err = GetPolicySource(cfg, "", nil)
	assert.Error(t, err)

	src, err = GetPolicySource(cfg, "", &databasemock.MockDBProvider{})
	assert.NoError(t, err)
	assert.IsType(t, &DatabaseSource{}, src)

	cfg.Policy.Source = "ldap"
	_, err = GetPolicySource(cfg, "", nil)
	assert.ErrorContains(t, err, "unsupported policy source")

	_, err = GetPolicySource(nil, "", nil)
	assert.Error(t, err)
}

func TestLoaderBuildsRegistry(t *testing.T) {
	hasher, err := hash.NewHasher("SHA256", 0)
	if err != nil {
		t.Fatalf("failed to create hasher: %v", err)
	}
	path := writePolicyFile(t, "policy.yaml", testPolicy)

	reg, err := Loader(NewFileSource(path, true), hasher)(context.Background())
	if err != nil {
		t.Fatalf("failed to load registry: %v", err)
	}
	holder, err := registry.NewHolder(reg)
	if err != nil {
		t.Fatalf("failed to create holder: %v", err)
	}

	assert.NoError(t, holder.VerifyClientSecret("client", "secret"))
	assert.NoError(t, holder.VerifyClientSecret("mvc", "secret"))
	assert.True(t, holder.RequiresConsent("mvc"))

	assert.NoError(t, holder.Reload(context.Background(), Loader(NewFileSource(path, true), hasher)))
	assert.NotEqual(t, reg.Revision(), holder.Current().Revision())
}

func TestLoaderPropagatesSourceErrors(t *testing.T) {
	hasher, _ := hash.NewHasher("SHA256", 0)
	path := writePolicyFile(t, "policy.yaml", "clients:\n  - client_id: c\n    allowed_grant_types: [client_credentials]\n")

	_, err := Loader(NewFileSource(path, true), hasher)(context.Background())

	assert.ErrorIs(t, err, registry.ErrInvalidConfiguration)
	assert.ErrorContains(t, err, "has no secrets")
}

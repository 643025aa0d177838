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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/idpolicy/internal/policy/registry"
	"github.com/asgardeo/idpolicy/internal/system/crypto/hash"
)

const (
	testLoginURI  = "https://localhost:44342/signin-oidc"
	testLogoutURI = "https://localhost:44342/signout-callback-oidc"
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
  - name: api2
clients:
  - client_id: client
    secrets:
      - value: secret
    allowed_grant_types: [client_credentials]
    allowed_scopes: [api1, api2]
  - client_id: mvc
    secrets:
      - algorithm: SHA256
        hash: 2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b
    allowed_grant_types: [authorization_code]
    redirect_uris: [https://localhost:44342/signin-oidc]
    post_logout_redirect_uris: [https://localhost:44342/signout-callback-oidc]
    allow_offline_access: true
    require_consent: true
    allowed_scopes: [openid, profile, roles, api1]
`

type PolicyCtlTestSuite struct {
	suite.Suite
	home       string
	policyPath string
}

func TestPolicyCtlSuite(t *testing.T) {
	suite.Run(t, new(PolicyCtlTestSuite))
}

func (suite *PolicyCtlTestSuite) SetupTest() {
	suite.home = suite.T().TempDir()
	suite.policyPath = suite.writeFile("policy.yaml", testPolicy)
}

func (suite *PolicyCtlTestSuite) writeFile(name, content string) string {
	path := filepath.Join(suite.home, name)
	suite.Require().NoError(os.MkdirAll(filepath.Dir(path), 0750))
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0600))
	return path
}

// run executes policyctl against the test home and returns standard output.
func (suite *PolicyCtlTestSuite) run(stdin string, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--home", suite.home, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (suite *PolicyCtlTestSuite) TestValidate() {
	out, err := suite.run("", "--policy", suite.policyPath, "validate")

	suite.Require().NoError(err)
	assert.Contains(suite.T(), out, "Policy is valid: 3 identity resources, 2 API scopes, 2 clients")
	assert.Contains(suite.T(), out, "Revision: ")
}

func (suite *PolicyCtlTestSuite) TestValidateJSON() {
	out, err := suite.run("", "--policy", suite.policyPath, "--json", "validate")
	suite.Require().NoError(err)

	var result validateOutput
	suite.Require().NoError(json.Unmarshal([]byte(out), &result))
	assert.True(suite.T(), result.Valid)
	assert.Equal(suite.T(), 2, result.Clients)
	assert.NotEmpty(suite.T(), result.Revision)
}

func (suite *PolicyCtlTestSuite) TestValidateUsesDefaultPolicyLocation() {
	suite.writeFile(filepath.Join("repository", "conf", "policy.yaml"), testPolicy)

	out, err := suite.run("", "validate")

	suite.Require().NoError(err)
	assert.Contains(suite.T(), out, "2 clients")
}

func (suite *PolicyCtlTestSuite) TestValidateInvalidPolicy() {
	path := suite.writeFile("broken.yaml", `
api_scopes:
  - name: api1
clients:
  - client_id: client
    allowed_grant_types: [client_credentials]
    allowed_scopes: [api1, api9]
`)

	_, err := suite.run("", "--policy", path, "validate")

	assert.ErrorIs(suite.T(), err, registry.ErrInvalidConfiguration)
	assert.ErrorContains(suite.T(), err, "has no secrets")
	assert.ErrorContains(suite.T(), err, "undeclared scope \"api9\"")
}

func (suite *PolicyCtlTestSuite) TestConfigErrors() {
	_, err := suite.run("", "--config", filepath.Join(suite.home, "missing.yaml"), "validate")
	assert.ErrorContains(suite.T(), err, "failed to load deployment configuration")

	_, err = suite.run("", "--policy", suite.policyPath, "--log-level", "chatty", "validate")
	assert.ErrorContains(suite.T(), err, "invalid log level")
}

func (suite *PolicyCtlTestSuite) TestResolve() {
	out, err := suite.run("", "--policy", suite.policyPath, "resolve", "openid", "roles", "api1", "offline_access")

	suite.Require().NoError(err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	suite.Require().Len(lines, 4)
	assert.Equal(suite.T(), "openid\tidentity\tsub", lines[0])
	assert.Equal(suite.T(), "roles\tidentity\trole", lines[1])
	assert.Equal(suite.T(), "api1\tapi\trole", lines[2])
	assert.Equal(suite.T(), "offline_access\toffline_access", lines[3])
}

func (suite *PolicyCtlTestSuite) TestResolveUnknownScope() {
	_, err := suite.run("", "--policy", suite.policyPath, "resolve", "openid", "email")

	assert.ErrorContains(suite.T(), err, "invalid_scope (POL-1001)")
}

func (suite *PolicyCtlTestSuite) TestAuthorize() {
	testCases := []struct {
		name        string
		args        []string
		expected    string
		errContains string
	}{
		{"InteractiveClient", []string{"--client", "mvc", "openid", "api1", "offline_access"},
			"openid api1 offline_access", ""},
		{"MachineClient", []string{"--client", "client", "api2", "api1"}, "api2 api1", ""},
		{"DisallowedScope", []string{"--client", "client", "openid", "api1"}, "", "invalid_scope (POL-1002)"},
		{"OfflineAccessNotAllowed", []string{"--client", "client", "offline_access"}, "",
			"invalid_scope (POL-1002)"},
		{"UnknownClient", []string{"--client", "nobody", "api1"}, "", "invalid_scope (POL-1002)"},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			out, err := suite.run("", append([]string{"--policy", suite.policyPath, "authorize"}, tc.args...)...)
			if tc.errContains != "" {
				assert.ErrorContains(t, err, tc.errContains)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, strings.TrimSpace(out))
		})
	}
}

func (suite *PolicyCtlTestSuite) TestAuthorizeRequiresClient() {
	_, err := suite.run("", "--policy", suite.policyPath, "authorize", "api1")

	assert.ErrorContains(suite.T(), err, "\"client\" not set")
}

func (suite *PolicyCtlTestSuite) TestCheckRedirect() {
	testCases := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"Login", []string{"--client", "mvc", testLoginURI}, false},
		{"Logout", []string{"--client", "mvc", "--logout", testLogoutURI}, false},
		{"LoginURIForLogout", []string{"--client", "mvc", "--logout", testLoginURI}, true},
		{"TrailingSlash", []string{"--client", "mvc", testLoginURI + "/"}, true},
		{"MachineClient", []string{"--client", "client", testLoginURI}, true},
		{"NonInteractiveGrant", []string{"--client", "mvc", "--grant", "client_credentials", testLoginURI}, true},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			out, err := suite.run("", append([]string{"--policy", suite.policyPath, "check-redirect"}, tc.args...)...)
			if tc.wantErr {
				assert.ErrorContains(t, err, "invalid_request (POL-1003)")
				return
			}
			assert.NoError(t, err)
			assert.Contains(t, out, "Redirect URI is allowed")
		})
	}
}

func (suite *PolicyCtlTestSuite) TestVerifySecret() {
	out, err := suite.run("", "--policy", suite.policyPath, "verify-secret", "--client", "client", "--secret", "secret")
	suite.Require().NoError(err)
	assert.Contains(suite.T(), out, "Client credentials are valid")

	_, err = suite.run("secret\n", "--policy", suite.policyPath, "verify-secret", "--client", "mvc")
	assert.NoError(suite.T(), err)

	for _, args := range [][]string{
		{"--client", "mvc", "--secret", "wrong"},
		{"--client", "nobody", "--secret", "secret"},
	} {
		_, err = suite.run("", append([]string{"--policy", suite.policyPath, "verify-secret"}, args...)...)
		assert.ErrorContains(suite.T(), err, "invalid_client (POL-1004)")
	}
}

func (suite *PolicyCtlTestSuite) TestVerifySecretEmptyStdin() {
	_, err := suite.run("", "--policy", suite.policyPath, "verify-secret", "--client", "mvc")

	assert.ErrorContains(suite.T(), err, "no secret was given")
}

func (suite *PolicyCtlTestSuite) TestHashSecret() {
	out, err := suite.run("", "hash-secret", "s3cret")
	suite.Require().NoError(err)
	assert.Contains(suite.T(), out, "- algorithm: SHA256")
	assert.Contains(suite.T(), out, "hash: ")

	out, err = suite.run("", "--json", "hash-secret", "--algorithm", "PBKDF2", "s3cret")
	suite.Require().NoError(err)

	var credential hash.Credential
	suite.Require().NoError(json.Unmarshal([]byte(out), &credential))
	assert.Equal(suite.T(), hash.PBKDF2, credential.Algorithm)
	assert.True(suite.T(), hash.Verify([]byte("s3cret"), credential))
	assert.False(suite.T(), hash.Verify([]byte("secret"), credential))

	_, err = suite.run("", "hash-secret", "--algorithm", "MD5", "s3cret")
	assert.Error(suite.T(), err)
}

func (suite *PolicyCtlTestSuite) TestAuthorizeRequest() {
	out, err := suite.run("", "--policy", suite.policyPath, "authorize-request", "--client", "mvc",
		"--redirect-uri", testLoginURI, "openid", "roles", "api1", "offline_access")

	suite.Require().NoError(err)
	assert.Contains(suite.T(), out, "Scopes: openid roles api1 offline_access")
	assert.Contains(suite.T(), out, "Identity claims: role sub")
	assert.Contains(suite.T(), out, "Access token claims: role")
	assert.Contains(suite.T(), out, "Consent required: true")
	assert.Contains(suite.T(), out, "Refresh token: true")

	_, err = suite.run("", "--policy", suite.policyPath, "authorize-request", "--client", "mvc",
		"--redirect-uri", testLogoutURI, "openid")
	assert.ErrorContains(suite.T(), err, "invalid_request")
}

func (suite *PolicyCtlTestSuite) TestTokenRequest() {
	out, err := suite.run("", "--policy", suite.policyPath, "--json", "token-request", "--client", "client",
		"--secret", "secret")
	suite.Require().NoError(err)

	var decision struct {
		ClientID string `json:"client_id"`
		Scopes   []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		} `json:"scopes"`
	}
	suite.Require().NoError(json.Unmarshal([]byte(out), &decision))
	assert.Equal(suite.T(), "client", decision.ClientID)
	suite.Require().Len(decision.Scopes, 2)
	assert.Equal(suite.T(), "api1", decision.Scopes[0].Name)
	assert.Equal(suite.T(), "api", decision.Scopes[1].Kind)

	_, err = suite.run("", "--policy", suite.policyPath, "token-request", "--client", "client", "--secret", "x")
	assert.ErrorContains(suite.T(), err, "invalid_client")
}

func (suite *PolicyCtlTestSuite) TestSeedAndLoadFromDatabase() {
	configPath := suite.writeFile("deployment.yaml", `
policy:
  source: database
  file: policy.yaml
database:
  policy:
    type: sqlite
    path: database/policy.db
    max_open_conns: 1
`)

	out, err := suite.run("", "--config", configPath, "seed")
	suite.Require().NoError(err)
	assert.Contains(suite.T(), out, "Configuration store seeded")

	out, err = suite.run("", "--config", configPath, "seed")
	suite.Require().NoError(err)
	assert.Contains(suite.T(), out, "nothing was seeded")

	out, err = suite.run("", "--config", configPath, "validate")
	suite.Require().NoError(err)
	assert.Contains(suite.T(), out, "3 identity resources, 2 API scopes, 2 clients")

	_, err = suite.run("", "--config", configPath, "verify-secret", "--client", "client", "--secret", "secret")
	assert.NoError(suite.T(), err)
}

func (suite *PolicyCtlTestSuite) TestSeedOnLoad() {
	configPath := suite.writeFile("deployment.yaml", `
policy:
  source: database
  file: policy.yaml
  seed_database: true
database:
  policy:
    type: sqlite
    path: database/policy.db
`)

	out, err := suite.run("", "--config", configPath, "authorize", "--client", "mvc", "roles")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "roles", strings.TrimSpace(out))
}

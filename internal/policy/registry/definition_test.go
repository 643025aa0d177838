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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asgardeo/idpolicy/internal/policy/model"
	"github.com/asgardeo/idpolicy/internal/system/crypto/hash"
)

func TestBuildFromDefinitionNilInputs(t *testing.T) {
	_, err := BuildFromDefinition(nil, newSHA256Hasher(t))
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))

	_, err = BuildFromDefinition(newTestDefinition(), nil)
	assert.Error(t, err)
}

func TestBuildFromDefinitionKeepsPreHashedSecret(t *testing.T) {
	def := newTestDefinition()
	def.Clients[0].Secrets = []model.SecretDefinition{{
		Algorithm: "sha256",
		Hash:      "2BB80D537B1DA3E38BD30361AA855686BDE0EACD7162FEF6A25FE97BF527A25B",
	}}

	reg, err := BuildFromDefinition(def, newSHA256Hasher(t))

	assert.NoError(t, err)
	client, _ := reg.GetClient("client")
	assert.Equal(t, hash.Credential{
		Algorithm: hash.SHA256,
		Hash:      "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b",
	}, client.Secrets[0])
	assert.NoError(t, reg.VerifyClientSecret("client", "secret"))
}

func TestBuildFromDefinitionSecretProblems(t *testing.T) {
	testCases := []struct {
		name    string
		secret  model.SecretDefinition
		wantErr string
	}{
		{"Empty", model.SecretDefinition{}, "must set a value or a hash"},
		{"Both", model.SecretDefinition{Value: "secret", Algorithm: "SHA256", Hash: "abc"}, "not set both"},
		{"UnknownAlgorithm", model.SecretDefinition{Algorithm: "MD5", Hash: "abc"}, "unsupported algorithm"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			def := newTestDefinition()
			def.Clients[0].Secrets = []model.SecretDefinition{tc.secret}

			_, err := BuildFromDefinition(def, newSHA256Hasher(t))

			assert.True(t, errors.Is(err, ErrInvalidConfiguration))
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestBuildFromDefinitionStandardResourceDisplayName(t *testing.T) {
	def := &model.PolicyDefinition{
		IdentityResources: []model.ResourceDefinition{
			{Name: "email", DisplayName: "Email"},
			{Name: "custom"},
		},
	}

	reg, err := BuildFromDefinition(def, newSHA256Hasher(t))

	assert.NoError(t, err)
	resources := reg.IdentityResources()
	assert.Equal(t, "custom", resources[0].Name)
	assert.Empty(t, resources[0].ClaimTypes)
	assert.Equal(t, "Email", resources[1].DisplayName)
	assert.Equal(t, []string{"email", "email_verified"}, resources[1].ClaimTypes)
}

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

package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAbsoluteURI(t *testing.T) {
	testCases := []struct {
		name    string
		uri     string
		isValid bool
	}{
		{"HTTPS", "https://localhost:44342/signin-oidc", true},
		{"WithQuery", "https://client.example.com/cb?x=1", true},
		{"CustomScheme", "com.example.app://callback", true},
		{"Empty", "", false},
		{"Relative", "/signin-oidc", false},
		{"NoHost", "https:///signin-oidc", false},
		{"Fragment", "https://localhost/cb#frag", false},
		{"EmptyFragment", "https://localhost/cb#", false},
		{"Malformed", "https://local host/%zz", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAbsoluteURI(tc.uri)
			if tc.isValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGenerateUUID(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	first := GenerateUUID()
	assert.Regexp(t, pattern, first)
	assert.NotEqual(t, first, GenerateUUID())
}

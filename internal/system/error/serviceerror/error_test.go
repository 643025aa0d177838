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

package serviceerror

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDescriptionDoesNotMutateOriginal(t *testing.T) {
	base := ServiceError{
		Code:             "POL-1001",
		Type:             ClientErrorType,
		Error:            "Unknown scope",
		ErrorDescription: "The requested scope is not registered",
	}

	custom := base.WithDescription("scope %q is not registered", "api9")

	assert.Equal(t, `scope "api9" is not registered`, custom.ErrorDescription)
	assert.Equal(t, "The requested scope is not registered", base.ErrorDescription)
	assert.Equal(t, base.Code, custom.Code)
}

func TestString(t *testing.T) {
	assert.Equal(t, "POL-5001: Internal server error",
		ServiceError{Code: "POL-5001", Type: ServerErrorType, Error: "Internal server error"}.String())
	assert.Equal(t, "POL-1001: Unknown scope (api9)",
		ServiceError{Code: "POL-1001", Error: "Unknown scope", ErrorDescription: "api9"}.String())
}

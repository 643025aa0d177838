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
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/asgardeo/idpolicy/internal/policy/registry"
)

const policySchemaURL = "policy.schema.json"

//go:embed schema/policy.schema.json
var policySchema []byte

var compilePolicySchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(policySchemaURL, bytes.NewReader(policySchema)); err != nil {
		return nil, fmt.Errorf("failed to add policy schema: %w", err)
	}
	return compiler.Compile(policySchemaURL)
})

// ValidateDocument checks a decoded policy document against the policy schema. Every violation
// is reported with the JSON pointer of the offending value.
func ValidateDocument(document interface{}) error {
	schema, err := compilePolicySchema()
	if err != nil {
		return fmt.Errorf("failed to compile policy schema: %w", err)
	}

	// The validator expects the value types produced by encoding/json.
	raw, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to convert policy document: %w", err)
	}
	var normalized interface{}
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return fmt.Errorf("failed to convert policy document: %w", err)
	}

	err = schema.Validate(normalized)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("failed to validate policy document: %w", err)
	}

	var errs *multierror.Error
	collectViolations(validationErr, &errs)
	if errs == nil {
		return fmt.Errorf("%w: %w", registry.ErrInvalidConfiguration, validationErr)
	}
	return fmt.Errorf("%w: %w", registry.ErrInvalidConfiguration, errs)
}

func collectViolations(err *jsonschema.ValidationError, errs **multierror.Error) {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		*errs = multierror.Append(*errs, fmt.Errorf("%s: %s", location, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectViolations(cause, errs)
	}
}

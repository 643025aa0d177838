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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/asgardeo/idpolicy/internal/policy/model"
	"github.com/asgardeo/idpolicy/internal/system/log"
)

// FileSource reads a policy from a YAML or JSON file.
type FileSource struct {
	path             string
	schemaValidation bool
	logger           *log.Logger
}

// NewFileSource creates a policy source for the file at path.
func NewFileSource(path string, schemaValidation bool) *FileSource {
	return &FileSource{
		path:             path,
		schemaValidation: schemaValidation,
		logger:           log.GetLogger().With(log.String(log.LoggerKeyComponentName, "PolicyFileSource")),
	}
}

// Load reads and decodes the policy file.
func (s *FileSource) Load(ctx context.Context) (*model.PolicyDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.path == "" {
		return nil, errors.New("policy file path is not configured")
	}
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("unsupported policy file type: %s", s.path)
	}

	data, err := os.ReadFile(filepath.Clean(s.path))
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	def, err := Parse(data, s.schemaValidation)
	if err != nil {
		return nil, fmt.Errorf("policy file %s: %w", s.path, err)
	}

	s.logger.Debug("Loaded policy file", log.String("path", s.path),
		log.Bool("schemaValidation", s.schemaValidation))
	return def, nil
}

// Parse decodes a YAML or JSON policy document. When validate is set the document is checked
// against the policy schema before it is decoded.
func Parse(data []byte, validate bool) (*model.PolicyDefinition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("policy document is empty")
	}

	if validate {
		var document interface{}
		if err := yaml.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("failed to parse policy document: %w", err)
		}
		if document == nil {
			return nil, errors.New("policy document is empty")
		}
		if err := ValidateDocument(document); err != nil {
			return nil, err
		}
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var def model.PolicyDefinition
	if err := decoder.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("policy document is empty")
		}
		return nil, fmt.Errorf("failed to decode policy document: %w", err)
	}
	return &def, nil
}

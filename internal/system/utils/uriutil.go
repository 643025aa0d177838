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
	"errors"
	"net/url"
	"strings"
)

// ValidateAbsoluteURI checks that the value is an absolute URI with a scheme and host and without a fragment.
func ValidateAbsoluteURI(value string) error {
	if value == "" {
		return errors.New("uri is empty")
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("uri must be absolute with a scheme and host")
	}
	if strings.Contains(value, "#") {
		return errors.New("uri must not contain a fragment")
	}
	return nil
}

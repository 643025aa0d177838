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

// Package databasemock provides mock implementations of the database interfaces for testing.
package databasemock

import (
	"context"

	"github.com/asgardeo/idpolicy/internal/system/database/client"
	"github.com/asgardeo/idpolicy/internal/system/database/model"
	"github.com/asgardeo/idpolicy/internal/system/database/provider"
)

// QueryCall records a single Query or Execute invocation.
type QueryCall struct {
	Query model.DBQuery
	Args  []interface{}
}

// MockDBClient is a mock implementation of the DBClientInterface.
type MockDBClient struct {
	// MockQuery defines the behavior for the Query method.
	MockQuery func(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error)
	// MockExecute defines the behavior for the Execute method.
	MockExecute func(query model.DBQuery, args ...interface{}) (int64, error)
	// MockBeginTx defines the behavior for the BeginTx method.
	MockBeginTx func() (model.TxInterface, error)
	// MockClose defines the behavior for the Close method.
	MockClose func() error
	// Type is returned by DBType. Defaults to "sqlite".
	Type string

	// QueryCalls tracks the arguments passed to Query.
	QueryCalls []QueryCall
	// ExecuteCalls tracks the arguments passed to Execute.
	ExecuteCalls []QueryCall
	// BeginTxCalls tracks the calls to BeginTx.
	BeginTxCalls int
	// CloseCalls tracks the calls to Close.
	CloseCalls int
}

var _ client.DBClientInterface = (*MockDBClient)(nil)

// Query mocks the Query method of the DBClientInterface.
func (m *MockDBClient) Query(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
	m.QueryCalls = append(m.QueryCalls, QueryCall{query, args})

	if m.MockQuery != nil {
		return m.MockQuery(query, args...)
	}
	return []map[string]interface{}{}, nil
}

// Execute mocks the Execute method of the DBClientInterface.
func (m *MockDBClient) Execute(query model.DBQuery, args ...interface{}) (int64, error) {
	m.ExecuteCalls = append(m.ExecuteCalls, QueryCall{query, args})

	if m.MockExecute != nil {
		return m.MockExecute(query, args...)
	}
	return 0, nil
}

// BeginTx mocks the BeginTx method of the DBClientInterface.
func (m *MockDBClient) BeginTx() (model.TxInterface, error) {
	m.BeginTxCalls++

	if m.MockBeginTx != nil {
		return m.MockBeginTx()
	}
	return &MockTx{}, nil
}

// DBType mocks the DBType method of the DBClientInterface.
func (m *MockDBClient) DBType() string {
	if m.Type == "" {
		return "sqlite"
	}
	return m.Type
}

// Close mocks the Close method of the DBClientInterface.
func (m *MockDBClient) Close() error {
	m.CloseCalls++

	if m.MockClose != nil {
		return m.MockClose()
	}
	return nil
}

// MockDBProvider is a mock implementation of the DBProviderInterface.
type MockDBProvider struct {
	// Client is returned by GetDBClient when Err is nil.
	Client client.DBClientInterface
	// Err is returned by GetDBClient when set.
	Err error
	// CloseCalls tracks the calls to Close.
	CloseCalls int
}

var _ provider.DBProviderInterface = (*MockDBProvider)(nil)

// GetDBClient mocks the GetDBClient method of the DBProviderInterface.
func (m *MockDBProvider) GetDBClient(ctx context.Context) (client.DBClientInterface, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Client, nil
}

// Close mocks the Close method of the DBProviderInterface.
func (m *MockDBProvider) Close() error {
	m.CloseCalls++
	return nil
}

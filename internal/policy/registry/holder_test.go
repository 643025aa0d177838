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
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/idpolicy/internal/policy/model"
)

type HolderTestSuite struct {
	suite.Suite
	initial *Registry
	holder  *Holder
}

func TestHolderSuite(t *testing.T) {
	suite.Run(t, new(HolderTestSuite))
}

func (suite *HolderTestSuite) SetupTest() {
	reg, err := BuildFromDefinition(newTestDefinition(), newSHA256Hasher(suite.T()))
	suite.Require().NoError(err)
	suite.initial = reg

	suite.holder, err = NewHolder(reg)
	suite.Require().NoError(err)
}

func (suite *HolderTestSuite) TestNewHolderRejectsNil() {
	holder, err := NewHolder(nil)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), holder)
}

func (suite *HolderTestSuite) TestSwap() {
	replacement, err := NewBuilder().AddAPIScope(model.APIScope{Name: "api9"}).Build()
	suite.Require().NoError(err)

	previous, err := suite.holder.Swap(replacement)

	suite.Require().NoError(err)
	assert.Same(suite.T(), suite.initial, previous)
	assert.Same(suite.T(), replacement, suite.holder.Current())

	_, err = suite.holder.Swap(nil)
	assert.Error(suite.T(), err)
	assert.Same(suite.T(), replacement, suite.holder.Current())
}

func (suite *HolderTestSuite) TestReloadSuccess() {
	def := newTestDefinition()
	def.APIScopes = append(def.APIScopes, model.ResourceDefinition{Name: "api3"})

	err := suite.holder.Reload(context.Background(), func(ctx context.Context) (*Registry, error) {
		return BuildFromDefinition(def, newSHA256Hasher(suite.T()))
	})

	suite.Require().NoError(err)
	assert.NotEqual(suite.T(), suite.initial.Revision(), suite.holder.Current().Revision())
	_, err = suite.holder.ResolveScopes([]string{"api3"})
	assert.NoError(suite.T(), err)
}

func (suite *HolderTestSuite) TestReloadFailureKeepsCurrent() {
	def := newTestDefinition()
	def.APIScopes = append(def.APIScopes, model.ResourceDefinition{Name: "api1"})

	err := suite.holder.Reload(context.Background(), func(ctx context.Context) (*Registry, error) {
		return BuildFromDefinition(def, newSHA256Hasher(suite.T()))
	})

	assert.True(suite.T(), errors.Is(err, ErrInvalidConfiguration))
	assert.Same(suite.T(), suite.initial, suite.holder.Current())
}

func (suite *HolderTestSuite) TestReloadNilRegistry() {
	err := suite.holder.Reload(context.Background(), func(ctx context.Context) (*Registry, error) {
		return nil, nil
	})

	assert.Error(suite.T(), err)
	assert.Same(suite.T(), suite.initial, suite.holder.Current())
}

func (suite *HolderTestSuite) TestReloadCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false

	err := suite.holder.Reload(ctx, func(ctx context.Context) (*Registry, error) {
		called = true
		return suite.initial, nil
	})

	assert.ErrorIs(suite.T(), err, context.Canceled)
	assert.False(suite.T(), called)
}

func (suite *HolderTestSuite) TestDelegation() {
	_, err := suite.holder.ResolveScopes([]string{"openid"})
	assert.NoError(suite.T(), err)
	_, err = suite.holder.AuthorizeClientScopes("client", []string{"api1"})
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.holder.ValidateRedirect("mvc", model.GrantTypeAuthorizationCode,
		testLoginURI, model.RedirectPurposeLogin))
	assert.NoError(suite.T(), suite.holder.VerifyClientSecret("client", "secret"))
	assert.NoError(suite.T(), suite.holder.ValidateGrantType("client", model.GrantTypeClientCredentials))
	_, ok := suite.holder.GetClient("mvc")
	assert.True(suite.T(), ok)
	assert.True(suite.T(), suite.holder.RequiresConsent("mvc"))
	assert.True(suite.T(), suite.holder.AllowsOfflineAccess("mvc"))
}

// Readers racing a reload must always see either the old or the new registry in full.
func (suite *HolderTestSuite) TestConcurrentReadersDuringReload() {
	withAPI3 := newTestDefinition()
	withAPI3.APIScopes = append(withAPI3.APIScopes, model.ResourceDefinition{Name: "api3"})
	withAPI3.Clients[0].AllowedScopes = append(withAPI3.Clients[0].AllowedScopes, "api3")
	next, err := BuildFromDefinition(withAPI3, newSHA256Hasher(suite.T()))
	suite.Require().NoError(err)

	var wg sync.WaitGroup
	done := make(chan struct{})
	failures := make(chan string, 16)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				reg := suite.holder.Current()
				_, resolveErr := reg.ResolveScopes([]string{"api3"})
				_, authorizeErr := reg.AuthorizeClientScopes("client", []string{"api3"})
				if (resolveErr == nil) != (authorizeErr == nil) {
					select {
					case failures <- "observed a partially updated registry":
					default:
					}
				}
			}
		}()
	}

	for i := 0; i < 100; i++ {
		target := next
		if i%2 == 1 {
			target = suite.initial
		}
		suite.Require().NoError(suite.holder.Reload(context.Background(),
			func(ctx context.Context) (*Registry, error) { return target, nil }))
	}
	close(done)
	wg.Wait()
	close(failures)

	for failure := range failures {
		suite.T().Error(failure)
	}
}

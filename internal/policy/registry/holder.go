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
	"sync/atomic"

	"github.com/asgardeo/idpolicy/internal/policy/model"
	"github.com/asgardeo/idpolicy/internal/system/log"
)

// LoaderFunc builds a complete replacement registry.
type LoaderFunc func(ctx context.Context) (*Registry, error)

// Holder publishes the current registry. Readers never block and always observe a fully built registry.
type Holder struct {
	current atomic.Pointer[Registry]
	logger  *log.Logger
}

var _ PolicyServiceInterface = (*Holder)(nil)

// NewHolder creates a holder publishing the given registry.
func NewHolder(reg *Registry) (*Holder, error) {
	if reg == nil {
		return nil, errors.New("initial registry must not be nil")
	}
	h := &Holder{
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "PolicyHolder")),
	}
	h.current.Store(reg)
	return h, nil
}

// Current returns the registry published at the time of the call.
func (h *Holder) Current() *Registry {
	return h.current.Load()
}

// Swap publishes a new registry and returns the previous one.
func (h *Holder) Swap(reg *Registry) (*Registry, error) {
	if reg == nil {
		return nil, errors.New("registry must not be nil")
	}
	previous := h.current.Swap(reg)
	h.logger.Info("Policy registry swapped",
		log.String("previousRevision", previous.Revision()),
		log.String(log.LoggerKeyRevision, reg.Revision()))
	return previous, nil
}

// Reload builds a replacement with the loader and publishes it only when the build succeeds.
// The current registry stays in place on failure.
func (h *Holder) Reload(ctx context.Context, loader LoaderFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	reg, err := loader(ctx)
	if err != nil {
		h.logger.Error("Policy reload failed, keeping the current registry",
			log.String(log.LoggerKeyRevision, h.Current().Revision()), log.Error(err))
		return err
	}
	if reg == nil {
		return errors.New("loader returned no registry")
	}
	_, err = h.Swap(reg)
	return err
}

// ResolveScopes delegates to the current registry.
func (h *Holder) ResolveScopes(requested []string) (model.ResolvedScopes, error) {
	return h.Current().ResolveScopes(requested)
}

// AuthorizeClientScopes delegates to the current registry.
func (h *Holder) AuthorizeClientScopes(clientID string, requested []string) ([]string, error) {
	return h.Current().AuthorizeClientScopes(clientID, requested)
}

// ValidateRedirect delegates to the current registry.
func (h *Holder) ValidateRedirect(clientID string, grantType model.GrantType, candidateURI string,
	purpose model.RedirectPurpose) error {
	return h.Current().ValidateRedirect(clientID, grantType, candidateURI, purpose)
}

// VerifyClientSecret delegates to the current registry.
func (h *Holder) VerifyClientSecret(clientID, secret string) error {
	return h.Current().VerifyClientSecret(clientID, secret)
}

// ValidateGrantType delegates to the current registry.
func (h *Holder) ValidateGrantType(clientID string, grantType model.GrantType) error {
	return h.Current().ValidateGrantType(clientID, grantType)
}

// GetClient delegates to the current registry.
func (h *Holder) GetClient(clientID string) (*model.Client, bool) {
	return h.Current().GetClient(clientID)
}

// RequiresConsent delegates to the current registry.
func (h *Holder) RequiresConsent(clientID string) bool {
	return h.Current().RequiresConsent(clientID)
}

// AllowsOfflineAccess delegates to the current registry.
func (h *Holder) AllowsOfflineAccess(clientID string) bool {
	return h.Current().AllowsOfflineAccess(clientID)
}

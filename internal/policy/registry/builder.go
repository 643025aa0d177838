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
	"crypto/rand"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/asgardeo/idpolicy/internal/policy/constants"
	"github.com/asgardeo/idpolicy/internal/policy/model"
	"github.com/asgardeo/idpolicy/internal/system/crypto/hash"
	"github.com/asgardeo/idpolicy/internal/system/log"
	"github.com/asgardeo/idpolicy/internal/system/utils"
)

// Builder collects policy entities and validates them eagerly into an immutable Registry.
type Builder struct {
	identityResources []model.IdentityResource
	apiScopes         []model.APIScope
	clients           []model.Client
	errs              *multierror.Error
	logger            *log.Logger
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "PolicyBuilder")),
	}
}

// AddIdentityResource registers an identity resource.
func (b *Builder) AddIdentityResource(resource model.IdentityResource) *Builder {
	b.identityResources = append(b.identityResources, resource.Clone())
	return b
}

// AddAPIScope registers an API scope.
func (b *Builder) AddAPIScope(scope model.APIScope) *Builder {
	b.apiScopes = append(b.apiScopes, scope.Clone())
	return b
}

// AddClient registers a client.
func (b *Builder) AddClient(client model.Client) *Builder {
	b.clients = append(b.clients, *client.Clone())
	return b
}

// addError records a problem found before the entities reached the builder.
func (b *Builder) addError(err error) {
	b.errs = multierror.Append(b.errs, err)
}

// Build validates every registered entity and returns the registry.
// All problems are reported together; the returned error wraps ErrInvalidConfiguration.
func (b *Builder) Build() (*Registry, error) {
	errs := b.errs
	reg := &Registry{
		identityResources: make(map[string]model.IdentityResource, len(b.identityResources)),
		apiScopes:         make(map[string]model.APIScope, len(b.apiScopes)),
		clients:           make(map[string]*clientEntry, len(b.clients)),
	}

	for _, resource := range b.identityResources {
		if err := validateName("identity resource", resource.Name); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if err := checkScopeName(reg, resource.Name); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		resource.ClaimTypes = utils.DedupSorted(resource.ClaimTypes)
		if resource.DisplayName == "" {
			resource.DisplayName = resource.Name
		}
		reg.identityResources[resource.Name] = resource
	}

	for _, scope := range b.apiScopes {
		if err := validateName("api scope", scope.Name); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if err := checkScopeName(reg, scope.Name); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		scope.ClaimTypes = utils.DedupSorted(scope.ClaimTypes)
		if scope.DisplayName == "" {
			scope.DisplayName = scope.Name
		}
		reg.apiScopes[scope.Name] = scope
	}

	for i := range b.clients {
		client := b.clients[i]
		if err := validateName("client", client.ClientID); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if _, exists := reg.clients[client.ClientID]; exists {
			errs = multierror.Append(errs, fmt.Errorf("duplicate client id %q", client.ClientID))
			continue
		}
		if clientErrs := b.validateClient(reg, &client); len(clientErrs) > 0 {
			errs = multierror.Append(errs, clientErrs...)
			continue
		}
		reg.clients[client.ClientID] = newClientEntry(&client)
	}

	if err := errs.ErrorOrNil(); err != nil {
		b.logger.Error("Policy configuration is invalid", log.Int("problems", errs.Len()))
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	dummy, err := newDummyCredential(b.clients)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare credential verification: %w", err)
	}
	reg.dummyCredential = dummy
	reg.revision = utils.GenerateUUID()

	b.logger.Info("Policy registry built",
		log.String(log.LoggerKeyRevision, reg.revision),
		log.Int("identityResources", len(reg.identityResources)),
		log.Int("apiScopes", len(reg.apiScopes)),
		log.Int("clients", len(reg.clients)))

	return reg, nil
}

// validateClient normalises the client in place and returns every problem it has.
func (b *Builder) validateClient(reg *Registry, client *model.Client) []error {
	var errs []error
	id := client.ClientID

	client.AllowedScopes = utils.DedupSorted(client.AllowedScopes)
	client.RedirectURIs = utils.DedupSorted(client.RedirectURIs)
	client.PostLogoutRedirectURIs = utils.DedupSorted(client.PostLogoutRedirectURIs)
	client.AllowedGrantTypes = dedupGrantTypes(client.AllowedGrantTypes)

	if len(client.AllowedGrantTypes) == 0 {
		errs = append(errs, fmt.Errorf("client %q has no allowed grant types", id))
	}
	for _, grantType := range client.AllowedGrantTypes {
		if !grantType.IsValid() {
			errs = append(errs, fmt.Errorf("client %q has unsupported grant type %q", id, grantType))
		}
	}

	for _, scope := range client.AllowedScopes {
		if constants.IsReservedScope(scope) {
			errs = append(errs, fmt.Errorf("client %q lists reserved scope %q; use allow_offline_access instead",
				id, scope))
			continue
		}
		if !reg.hasScope(scope) {
			errs = append(errs, fmt.Errorf("client %q references undeclared scope %q", id, scope))
		}
	}

	if client.IsAllowedGrantType(model.GrantTypeAuthorizationCode) && len(client.RedirectURIs) == 0 {
		errs = append(errs, fmt.Errorf("client %q uses %s but has no redirect uris", id,
			model.GrantTypeAuthorizationCode))
	}
	for _, uri := range client.RedirectURIs {
		if err := utils.ValidateAbsoluteURI(uri); err != nil {
			errs = append(errs, fmt.Errorf("client %q redirect uri %q is invalid: %w", id, uri, err))
		}
	}
	for _, uri := range client.PostLogoutRedirectURIs {
		if err := utils.ValidateAbsoluteURI(uri); err != nil {
			errs = append(errs, fmt.Errorf("client %q post logout redirect uri %q is invalid: %w", id, uri, err))
		}
	}

	if client.IsAllowedGrantType(model.GrantTypeClientCredentials) && len(client.Secrets) == 0 {
		errs = append(errs, fmt.Errorf("client %q uses %s but has no secrets", id,
			model.GrantTypeClientCredentials))
	}
	for i, secret := range client.Secrets {
		if !hash.IsSupported(secret.Algorithm) {
			errs = append(errs, fmt.Errorf("client %q secret %d uses unsupported algorithm %q", id, i,
				secret.Algorithm))
		}
		if secret.Hash == "" {
			errs = append(errs, fmt.Errorf("client %q secret %d has no hash", id, i))
		}
	}

	if client.AllowOfflineAccess && !client.HasInteractiveGrant() {
		errs = append(errs, fmt.Errorf("client %q allows offline access without an interactive grant type", id))
	}
	if client.RequireConsent && !client.HasInteractiveGrant() && len(client.AllowedGrantTypes) > 0 {
		b.logger.Warn("Consent is required for a client without an interactive grant type",
			log.String(log.LoggerKeyClientID, id))
	}

	return errs
}

func validateName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s name must not be empty", kind)
	}
	if utils.ContainsWhitespace(name) {
		return fmt.Errorf("%s name %q must not contain whitespace", kind, name)
	}
	return nil
}

// checkScopeName enforces a single namespace across identity resources and API scopes.
func checkScopeName(reg *Registry, name string) error {
	if constants.IsReservedScope(name) {
		return fmt.Errorf("scope name %q is reserved", name)
	}
	if reg.hasScope(name) {
		return fmt.Errorf("duplicate scope name %q", name)
	}
	return nil
}

func dedupGrantTypes(grantTypes []model.GrantType) []model.GrantType {
	names := make([]string, 0, len(grantTypes))
	for _, grantType := range grantTypes {
		names = append(names, string(grantType))
	}
	sorted := utils.DedupSorted(names)
	result := make([]model.GrantType, 0, len(sorted))
	for _, name := range sorted {
		result = append(result, model.GrantType(name))
	}
	return result
}

// newDummyCredential creates a credential nobody knows the secret of, hashed the same way as
// the first registered secret so that unknown clients cost as much to verify as known ones.
func newDummyCredential(clients []model.Client) (hash.Credential, error) {
	algorithm := hash.SHA256
	iterations := 0
	for _, client := range clients {
		if len(client.Secrets) > 0 {
			algorithm = client.Secrets[0].Algorithm
			iterations = client.Secrets[0].Iterations
			break
		}
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return hash.Credential{}, err
	}
	hasher, err := hash.NewHasher(string(algorithm), iterations)
	if err != nil {
		return hash.Credential{}, err
	}
	return hasher.NewCredential(secret)
}

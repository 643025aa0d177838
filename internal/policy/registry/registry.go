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

// Package registry provides the validated, immutable authorization policy registry and the
// queries an OpenID Connect provider runs against it.
package registry

import (
	"sort"

	"github.com/asgardeo/idpolicy/internal/policy/constants"
	"github.com/asgardeo/idpolicy/internal/policy/model"
	"github.com/asgardeo/idpolicy/internal/system/crypto/hash"
	"github.com/asgardeo/idpolicy/internal/system/utils"
)

// PolicyServiceInterface defines the policy queries consumed by the provider engine.
type PolicyServiceInterface interface {
	ResolveScopes(requested []string) (model.ResolvedScopes, error)
	AuthorizeClientScopes(clientID string, requested []string) ([]string, error)
	ValidateRedirect(clientID string, grantType model.GrantType, candidateURI string,
		purpose model.RedirectPurpose) error
	VerifyClientSecret(clientID, secret string) error
	ValidateGrantType(clientID string, grantType model.GrantType) error
	GetClient(clientID string) (*model.Client, bool)
	RequiresConsent(clientID string) bool
	AllowsOfflineAccess(clientID string) bool
}

// clientEntry keeps a client with its lookup sets.
type clientEntry struct {
	client          *model.Client
	allowedScopes   map[string]struct{}
	loginRedirects  map[string]struct{}
	logoutRedirects map[string]struct{}
}

func newClientEntry(client *model.Client) *clientEntry {
	return &clientEntry{
		client:          client,
		allowedScopes:   utils.ToSet(client.AllowedScopes),
		loginRedirects:  utils.ToSet(client.RedirectURIs),
		logoutRedirects: utils.ToSet(client.PostLogoutRedirectURIs),
	}
}

// Registry is an immutable policy. All methods are safe for concurrent use and never block.
type Registry struct {
	revision          string
	identityResources map[string]model.IdentityResource
	apiScopes         map[string]model.APIScope
	clients           map[string]*clientEntry
	dummyCredential   hash.Credential
}

var _ PolicyServiceInterface = (*Registry)(nil)

// Revision returns the identifier assigned when the registry was built.
func (r *Registry) Revision() string {
	return r.revision
}

func (r *Registry) hasScope(name string) bool {
	if _, ok := r.identityResources[name]; ok {
		return true
	}
	_, ok := r.apiScopes[name]
	return ok
}

// ResolveScopes looks up every requested scope name. The result follows the request order without
// duplicates. It fails naming the first scope that is not registered.
func (r *Registry) ResolveScopes(requested []string) (model.ResolvedScopes, error) {
	names := utils.DedupOrdered(requested)
	resolved := make(model.ResolvedScopes, 0, len(names))

	for _, name := range names {
		if resource, ok := r.identityResources[name]; ok {
			resolved = append(resolved, model.ResolvedScope{
				Name:        resource.Name,
				Kind:        model.ScopeKindIdentity,
				DisplayName: resource.DisplayName,
				ClaimTypes:  utils.CopyStrings(resource.ClaimTypes),
			})
			continue
		}
		if scope, ok := r.apiScopes[name]; ok {
			resolved = append(resolved, model.ResolvedScope{
				Name:        scope.Name,
				Kind:        model.ScopeKindAPI,
				DisplayName: scope.DisplayName,
				ClaimTypes:  utils.CopyStrings(scope.ClaimTypes),
			})
			continue
		}
		if name == constants.ScopeOfflineAccess {
			resolved = append(resolved, model.ResolvedScope{
				Name:        name,
				Kind:        model.ScopeKindOfflineAccess,
				DisplayName: "Offline access",
				ClaimTypes:  []string{},
			})
			continue
		}
		return nil, &UnknownScopeError{Scope: name}
	}

	return resolved, nil
}

// AuthorizeClientScopes checks the requested scopes against the client's allow-list. It returns the
// requested scopes when every one is allowed and otherwise fails listing all disallowed scopes.
// An unknown client has an empty allow-list.
func (r *Registry) AuthorizeClientScopes(clientID string, requested []string) ([]string, error) {
	names := utils.DedupOrdered(requested)
	entry := r.clients[clientID]

	var disallowed []string
	for _, name := range names {
		if !entry.allowsScope(name) {
			disallowed = append(disallowed, name)
		}
	}
	if len(disallowed) > 0 {
		return nil, &ScopeNotAllowedError{ClientID: clientID, Scopes: disallowed}
	}

	return names, nil
}

func (e *clientEntry) allowsScope(name string) bool {
	if e == nil {
		return false
	}
	if name == constants.ScopeOfflineAccess {
		return e.client.AllowOfflineAccess
	}
	_, ok := e.allowedScopes[name]
	return ok
}

// ValidateRedirect checks that the candidate URI exactly matches a registered URI for the purpose.
// The grant type must be an interactive grant the client is allowed to use.
func (r *Registry) ValidateRedirect(clientID string, grantType model.GrantType, candidateURI string,
	purpose model.RedirectPurpose) error {
	invalid := &InvalidRedirectError{ClientID: clientID, URI: candidateURI, Purpose: purpose}

	entry, ok := r.clients[clientID]
	if !ok || !grantType.IsInteractive() || !entry.client.IsAllowedGrantType(grantType) {
		return invalid
	}

	var registered map[string]struct{}
	switch purpose {
	case model.RedirectPurposeLogin:
		registered = entry.loginRedirects
	case model.RedirectPurposeLogout:
		registered = entry.logoutRedirects
	default:
		return invalid
	}

	if _, ok := registered[candidateURI]; !ok {
		return invalid
	}
	return nil
}

// VerifyClientSecret hashes the supplied secret and compares it in constant time with every stored
// credential of the client. Unknown clients are verified against a dummy credential.
func (r *Registry) VerifyClientSecret(clientID, secret string) error {
	credentials := []hash.Credential{r.dummyCredential}
	entry, known := r.clients[clientID]
	if known && len(entry.client.Secrets) > 0 {
		credentials = entry.client.Secrets
	}

	matched := false
	for _, credential := range credentials {
		if hash.Verify([]byte(secret), credential) {
			matched = true
		}
	}

	if !known || !matched {
		return &InvalidCredentialsError{}
	}
	return nil
}

// ValidateGrantType checks that the client is registered for the grant type.
func (r *Registry) ValidateGrantType(clientID string, grantType model.GrantType) error {
	entry, ok := r.clients[clientID]
	if !ok || !entry.client.IsAllowedGrantType(grantType) {
		return &GrantTypeNotAllowedError{ClientID: clientID, GrantType: grantType}
	}
	return nil
}

// GetClient returns a copy of the client registration.
func (r *Registry) GetClient(clientID string) (*model.Client, bool) {
	entry, ok := r.clients[clientID]
	if !ok {
		return nil, false
	}
	return entry.client.Clone(), true
}

// RequiresConsent reports whether the client must obtain user consent. Unknown clients require it.
func (r *Registry) RequiresConsent(clientID string) bool {
	entry, ok := r.clients[clientID]
	if !ok {
		return true
	}
	return entry.client.RequireConsent
}

// AllowsOfflineAccess reports whether the client may be issued refresh tokens.
func (r *Registry) AllowsOfflineAccess(clientID string) bool {
	entry, ok := r.clients[clientID]
	return ok && entry.client.AllowOfflineAccess
}

// IdentityResources returns copies of the identity resources sorted by name.
func (r *Registry) IdentityResources() []model.IdentityResource {
	result := make([]model.IdentityResource, 0, len(r.identityResources))
	for _, name := range sortedKeys(r.identityResources) {
		result = append(result, r.identityResources[name].Clone())
	}
	return result
}

// APIScopes returns copies of the API scopes sorted by name.
func (r *Registry) APIScopes() []model.APIScope {
	result := make([]model.APIScope, 0, len(r.apiScopes))
	for _, name := range sortedKeys(r.apiScopes) {
		result = append(result, r.apiScopes[name].Clone())
	}
	return result
}

// Clients returns copies of the clients sorted by client id.
func (r *Registry) Clients() []*model.Client {
	result := make([]*model.Client, 0, len(r.clients))
	for _, id := range sortedKeys(r.clients) {
		result = append(result, r.clients[id].client.Clone())
	}
	return result
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

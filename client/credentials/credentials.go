// Package credentials holds the bearer tokens the storefront client sends.
//
// Two kinds of credential exist, admin and user, and each may live in one of
// two scopes: durable (survives restarts, cleared by logout or a 401) and
// session (process lifetime). A Keyring picks the token for outgoing requests:
// an admin token in either scope beats any user token, and within a kind the
// durable scope beats the session scope.
package credentials

import (
	"context"
	"errors"
	"fmt"
)

// Kind is the role a token authenticates.
type Kind string

const (
	Admin Kind = "admin"
	User  Kind = "user"
)

// Scope is the lifetime class of a Store.
type Scope string

const (
	Durable Scope = "durable"
	Session Scope = "session"
)

// Storage keys, shared with the web storefront.
const (
	AdminTokenKey = "adminToken"
	UserTokenKey  = "kissanbandi_token"
)

// Key returns the storage key for kind.
func (k Kind) Key() string {
	if k == Admin {
		return AdminTokenKey
	}
	return UserTokenKey
}

// Store is one key-value credential scope.
type Store interface {
	// Get returns the value under key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes keys; absent keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// Credential is a token together with where it was found.
type Credential struct {
	Kind  Kind
	Scope Scope
	Token string
}

// Keyring resolves the prioritized credential across a durable and a session
// store. Either store may be nil.
type Keyring struct {
	durable Store
	session Store
}

// NewKeyring builds a Keyring over the given scopes.
func NewKeyring(durable, session Store) *Keyring {
	return &Keyring{durable: durable, session: session}
}

// Lookup returns the credential outgoing requests should carry, or ok=false
// when none is stored. A store failure is returned as an error rather than
// treated as absence.
func (k *Keyring) Lookup(ctx context.Context) (Credential, bool, error) {
	for _, kind := range []Kind{Admin, User} {
		for _, s := range k.scopes() {
			tok, ok, err := s.store.Get(ctx, kind.Key())
			if err != nil {
				return Credential{}, false, fmt.Errorf("read %s %s token: %w", s.scope, kind, err)
			}
			if ok && tok != "" {
				return Credential{Kind: kind, Scope: s.scope, Token: tok}, true, nil
			}
		}
	}
	return Credential{}, false, nil
}

// Token returns the prioritized bearer token, or "" when none is stored.
func (k *Keyring) Token(ctx context.Context) (string, error) {
	c, ok, err := k.Lookup(ctx)
	if err != nil || !ok {
		return "", err
	}
	return c.Token, nil
}

// Clear removes admin and user tokens from both scopes. Every delete is
// attempted; failures are joined.
func (k *Keyring) Clear(ctx context.Context) error {
	var errs []error
	for _, s := range k.scopes() {
		if err := s.store.Delete(ctx, AdminTokenKey, UserTokenKey); err != nil {
			errs = append(errs, fmt.Errorf("clear %s scope: %w", s.scope, err))
		}
	}
	return errors.Join(errs...)
}

// Save stores token for kind in scope. Used by login flows.
func (k *Keyring) Save(ctx context.Context, kind Kind, scope Scope, token string) error {
	for _, s := range k.scopes() {
		if s.scope == scope {
			return s.store.Set(ctx, kind.Key(), token)
		}
	}
	return fmt.Errorf("no %s store configured", scope)
}

type scopedStore struct {
	scope Scope
	store Store
}

// scopes lists the configured stores, durable first.
func (k *Keyring) scopes() []scopedStore {
	out := make([]scopedStore, 0, 2)
	if k.durable != nil {
		out = append(out, scopedStore{Durable, k.durable})
	}
	if k.session != nil {
		out = append(out, scopedStore{Session, k.session})
	}
	return out
}

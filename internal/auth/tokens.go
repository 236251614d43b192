package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 24 * time.Hour

type tokenEntry struct {
	identity *Identity
	expires  time.Time
}

// TokenRegistry is an in-memory bearer token table with expiry.
type TokenRegistry struct {
	mu     sync.RWMutex
	tokens map[string]tokenEntry
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenRegistry creates a registry with the given TTL.
// A non-positive ttl uses DefaultTokenTTL.
func NewTokenRegistry(ttl time.Duration) *TokenRegistry {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenRegistry{
		tokens: make(map[string]tokenEntry),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue mints a fresh token for the identity.
func (r *TokenRegistry) Issue(id *Identity) string {
	token := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = tokenEntry{identity: id, expires: r.now().Add(r.ttl)}
	return token
}

// Resolve returns the identity behind a token. Expired tokens are
// dropped on lookup.
func (r *TokenRegistry) Resolve(token string) (*Identity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.tokens[token]
	if !ok {
		return nil, false
	}
	if r.now().After(entry.expires) {
		delete(r.tokens, token)
		return nil, false
	}
	return entry.identity, true
}

// Revoke removes a token.
func (r *TokenRegistry) Revoke(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
}

// Len reports how many tokens are live, counting expired ones not yet
// swept by Resolve.
func (r *TokenRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}

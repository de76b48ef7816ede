package auth

import (
	"context"
	"sync"
	"time"

	"github.com/fivetwenty-io/tagwalk-client/internal/constants"
)

// TokenManager supplies bearer tokens to the transport.
type TokenManager interface {
	// GetToken returns a valid access token, fetching one if necessary.
	GetToken(ctx context.Context) (string, error)
	// RefreshToken discards the current token and fetches a new one.
	RefreshToken(ctx context.Context) error
	// SetToken replaces the current token.
	SetToken(token string, expiresAt time.Time)
}

// Token is an OAuth2 access token as returned by the Tagwalk token endpoint.
type Token struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresIn    int       `json:"expires_in,omitempty"`
	Scope        string    `json:"scope,omitempty"`
	ExpiresAt    time.Time `json:"-"`
}

// Valid reports whether the token can be used. A token expiring within
// constants.TokenExpirationBuffer is already considered invalid.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(constants.TokenExpirationBuffer).Before(t.ExpiresAt)
}

// TokenStore holds the current token behind a lock.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the current token, or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the current token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear removes the current token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}

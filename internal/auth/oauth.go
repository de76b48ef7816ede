package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fivetwenty-io/tagwalk-client/internal/constants"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// OAuth2Config configures an OAuth2TokenManager.
type OAuth2Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string

	// AccessToken seeds the store with an already issued token.
	AccessToken string

	// HTTPClient is used for token requests. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// OAuth2TokenManager fetches tokens with the client_credentials grant.
type OAuth2TokenManager struct {
	config *OAuth2Config
	store  *TokenStore
	mutex  sync.Mutex
}

// NewOAuth2TokenManager creates a token manager from config.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	manager := &OAuth2TokenManager{
		config: config,
		store:  NewTokenStore(),
	}

	if config.AccessToken != "" {
		manager.store.Set(&Token{
			AccessToken: config.AccessToken,
			TokenType:   "bearer",
		})
	}

	return manager
}

// NewTagwalkTokenManager creates a client_credentials token manager for the
// token endpoint of the API at apiEndpoint.
func NewTagwalkTokenManager(apiEndpoint, clientID, clientSecret string) *OAuth2TokenManager {
	return NewOAuth2TokenManager(&OAuth2Config{
		TokenURL:     TokenURL(apiEndpoint),
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

// TokenURL returns the token endpoint of the API at apiEndpoint.
func TokenURL(apiEndpoint string) string {
	return strings.TrimSuffix(apiEndpoint, "/") + constants.PathTokenSuffix
}

// GetToken returns the stored token while it is valid, and fetches a new one
// otherwise.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	// Another caller may have fetched while we waited.
	token = m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	token, err := m.fetch(ctx)
	if err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

// RefreshToken fetches a new token regardless of the stored one.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	_, err := m.fetch(ctx)

	return err
}

// SetToken manually sets the access token.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

func (m *OAuth2TokenManager) fetch(ctx context.Context) (*Token, error) {
	if m.config.ClientID == "" || m.config.ClientSecret == "" {
		return nil, ErrNoCredentials
	}

	if m.config.TokenURL == "" {
		return nil, ErrTokenURLRequired
	}

	credentials := &clientcredentials.Config{
		ClientID:     m.config.ClientID,
		ClientSecret: m.config.ClientSecret,
		TokenURL:     m.config.TokenURL,
		Scopes:       m.config.Scopes,
	}

	if m.config.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, m.config.HTTPClient)
	}

	oauthToken, err := credentials.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching client credentials token: %w", err)
	}

	token := &Token{
		AccessToken:  oauthToken.AccessToken,
		TokenType:    oauthToken.TokenType,
		RefreshToken: oauthToken.RefreshToken,
		ExpiresAt:    oauthToken.Expiry,
	}

	if !oauthToken.Expiry.IsZero() {
		token.ExpiresIn = int(time.Until(oauthToken.Expiry).Seconds())
	}

	if scope, ok := oauthToken.Extra("scope").(string); ok {
		token.Scope = scope
	}

	m.store.Set(token)

	return token, nil
}

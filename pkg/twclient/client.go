// Package twclient provides the main entry point for creating Tagwalk API clients
package twclient

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/tagwalk-client/internal/client"
	"github.com/fivetwenty-io/tagwalk-client/internal/constants"
	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
)

// New creates a new Tagwalk API client. The endpoint loses its trailing
// slash and gains https:// when it has no scheme. config is not modified.
func New(ctx context.Context, config *tagwalk.Config) (tagwalk.Client, error) {
	if config == nil {
		return nil, tagwalk.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, tagwalk.ErrAPIEndpointRequired
	}

	normalized := *config
	normalized.APIEndpoint = NormalizeEndpoint(config.APIEndpoint)

	if needsAuth(&normalized) && strings.HasPrefix(normalized.APIEndpoint, "http://") && !isDevelopmentEnvironment() &&
		normalized.Logger != nil {
		normalized.Logger.Warn("sending credentials over plain HTTP", map[string]interface{}{
			"endpoint": normalized.APIEndpoint,
			"hint":     "use https:// or set " + constants.DevModeEnvironmentVariable + "=true",
		})
	}

	c, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NormalizeEndpoint trims trailing slashes and adds https:// to a bare host.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = constants.DefaultAPIEndpointScheme + endpoint
	}

	return endpoint
}

// needsAuth checks if the config sends credentials.
func needsAuth(config *tagwalk.Config) bool {
	return config.AccessToken != "" || (config.ClientID != "" && config.ClientSecret != "")
}

// isDevelopmentEnvironment checks if we're in a development environment.
func isDevelopmentEnvironment() bool {
	devMode := os.Getenv(constants.DevModeEnvironmentVariable)

	return devMode == "true" || devMode == "1"
}

// NewWithEndpoint creates a new client with just an API endpoint (no auth).
func NewWithEndpoint(ctx context.Context, endpoint string) (tagwalk.Client, error) {
	return New(ctx, &tagwalk.Config{
		APIEndpoint: endpoint,
	})
}

// NewWithToken creates a new client with an API endpoint and access token.
func NewWithToken(ctx context.Context, endpoint, token string) (tagwalk.Client, error) {
	return New(ctx, &tagwalk.Config{
		APIEndpoint: endpoint,
		AccessToken: token,
	})
}

// NewWithClientCredentials creates a new client using OAuth2 client
// credentials. The token is fetched on the first request.
func NewWithClientCredentials(ctx context.Context, endpoint, clientID, clientSecret string) (tagwalk.Client, error) {
	return New(ctx, &tagwalk.Config{
		APIEndpoint:  endpoint,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

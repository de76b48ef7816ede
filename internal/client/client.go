package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/tagwalk-client/internal/auth"
	"github.com/fivetwenty-io/tagwalk-client/internal/constants"
	"github.com/fivetwenty-io/tagwalk-client/internal/http"
	"github.com/fivetwenty-io/tagwalk-client/internal/normalizer"
	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
)

// Static errors for err113 compliance.
var (
	ErrNoTokenManagerConfigured = errors.New("no token manager configured")
)

// Client implements the tagwalk.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       tagwalk.Logger
	cache        tagwalk.Cache
	queryCache   *tagwalk.QueryCache
	normalizer   *normalizer.Normalizer
	language     string

	// Resource clients
	cities       *CitiesClient
	galleries    *GalleriesClient
	medias       *MediasClient
	streetstyles *StreetstylesClient
}

// createTokenManager picks the token manager matching the credentials in
// config: a static token first, then client credentials, else none.
func createTokenManager(config *tagwalk.Config) auth.TokenManager {
	if config.AccessToken != "" {
		return auth.NewStaticTokenManager(config.AccessToken)
	}

	if config.ClientID != "" && config.ClientSecret != "" {
		return auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     getTokenURL(config),
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
		})
	}

	return nil // No authentication
}

// getTokenURL returns token URL from config or the API's own endpoint.
func getTokenURL(config *tagwalk.Config) string {
	if config.TokenURL != "" {
		return config.TokenURL
	}

	return auth.TokenURL(config.APIEndpoint)
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *tagwalk.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	if config.TracerProvider != nil {
		httpOpts = append(httpOpts, http.WithTracerProvider(config.TracerProvider))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// createQueryCache builds the cache backend and wraps it for cache-through
// lookups. CacheTTL overrides the TTL of the cache options.
func createQueryCache(config *tagwalk.Config, logger tagwalk.Logger) (tagwalk.Cache, *tagwalk.QueryCache, error) {
	cacheConfig := config.Cache
	if cacheConfig == nil {
		cacheConfig = tagwalk.DefaultCacheConfig()
	}

	cache, err := tagwalk.NewCacheFromConfig(cacheConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("creating cache: %w", err)
	}

	options := tagwalk.DefaultCacheOptions()
	if cacheConfig.Options != nil {
		copied := *cacheConfig.Options
		options = &copied
	}

	if config.CacheTTL > 0 {
		options.TTL = config.CacheTTL
	}

	if options.TTL <= 0 {
		options.TTL = constants.DefaultCacheTTL
	}

	metrics := tagwalk.NewCacheMetrics(config.MetricsRegisterer)

	return cache, tagwalk.NewQueryCache(cache, options, metrics, logger), nil
}

// New creates a new Tagwalk API client.
func New(_ context.Context, config *tagwalk.Config) (*Client, error) {
	if config == nil {
		return nil, tagwalk.ErrConfigRequired
	}

	return NewWithTokenManager(config, createTokenManager(config))
}

// NewWithTokenManager creates a new Tagwalk API client with a custom token
// manager. A nil token manager sends unauthenticated requests.
func NewWithTokenManager(config *tagwalk.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil {
		return nil, tagwalk.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, tagwalk.ErrAPIEndpointRequired
	}

	logger := config.Logger
	if logger == nil {
		logger = tagwalk.NoopLogger{}
	}

	cache, queryCache, err := createQueryCache(config, logger)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(config.APIEndpoint, tokenManager, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.APIEndpoint,
		logger:       logger,
		cache:        cache,
		queryCache:   queryCache,
		normalizer:   normalizer.New(),
		language:     config.Language,
	}

	// Initialize resource clients
	client.initializeResourceClients()

	logger.Debug("tagwalk client ready", map[string]interface{}{
		"endpoint":      config.APIEndpoint,
		"authenticated": tokenManager != nil,
	})

	return client, nil
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// GetToken returns the current access token.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", ErrNoTokenManagerConfigured
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("getting token: %w", err)
	}

	return token, nil
}

// Cache returns the cache backend used by the cities client.
func (c *Client) Cache() tagwalk.Cache {
	return c.cache
}

// Close releases the cache backend when it holds a connection.
func (c *Client) Close() error {
	if closer, ok := c.cache.(interface{ Close() error }); ok {
		err := closer.Close()
		if err != nil {
			return fmt.Errorf("closing cache: %w", err)
		}
	}

	return nil
}

// Cities implements tagwalk.Client.Cities.
func (c *Client) Cities() tagwalk.CitiesClient {
	return c.cities
}

// Galleries implements tagwalk.Client.Galleries.
func (c *Client) Galleries() tagwalk.GalleriesClient {
	return c.galleries
}

// Medias implements tagwalk.Client.Medias.
func (c *Client) Medias() tagwalk.MediasClient {
	return c.medias
}

// Streetstyles implements tagwalk.Client.Streetstyles.
func (c *Client) Streetstyles() tagwalk.StreetstylesClient {
	return c.streetstyles
}

func (c *Client) initializeResourceClients() {
	c.cities = NewCitiesClient(c.httpClient, c.normalizer, c.queryCache, c.logger, c.language)
	c.galleries = NewGalleriesClient(c.httpClient, c.normalizer, c.logger)
	c.medias = NewMediasClient(c.httpClient, c.normalizer, c.logger)
	c.streetstyles = NewStreetstylesClient(c.httpClient, c.normalizer, c.logger)
}

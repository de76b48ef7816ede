package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600

	// CacheDirPerm is the permission for file cache directories.
	CacheDirPerm = 0750

	// CacheFilePerm is the permission for file cache entries.
	CacheFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Requests are not retried unless configured.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 30 * time.Second

	// TokenExpirationBuffer is the buffer time before token expiration.
	TokenExpirationBuffer = 30 * time.Second
)

// Cache defaults.
const (
	// DefaultCacheTTL is the lifetime of a cached listing.
	DefaultCacheTTL = 3600 * time.Second

	// DefaultCacheSize bounds the in-memory cache.
	DefaultCacheSize = 1000

	// DefaultCacheNamespace holds keys that carry no namespace.
	DefaultCacheNamespace = "default"

	// DefaultNATSBucket is the KV bucket used by the NATS cache.
	DefaultNATSBucket = "tagwalk"

	// CitiesNamespace is the cache namespace of city listings.
	CitiesNamespace = "cities"

	// CitiesFilterMediaNamespace caches cities filtered by medias.
	CitiesFilterMediaNamespace = "cities-filter-media"

	// CitiesFilterStreetNamespace caches cities filtered by streetstyles.
	CitiesFilterStreetNamespace = "cities-filter-streetstyle"
)

// Listing defaults.
const (
	// DefaultCitySize is the default page size of city listings.
	DefaultCitySize = 100

	// DefaultCitySort orders cities alphabetically.
	DefaultCitySort = "name:asc"

	// DefaultMediaSize is the default page size of media listings.
	DefaultMediaSize = 24

	// DefaultRelatedSize is the number of related medias requested.
	DefaultRelatedSize = 6

	// DefaultModelMediasSort orders a model's medias newest first.
	DefaultModelMediasSort = "created_at:desc"

	// StatusEnabled is the status of published documents.
	StatusEnabled = "enabled"
)

// Response headers.
const (
	HeaderTotalCount        = "X-Total-Count"
	HeaderStreetstylesCount = "X-Streetstyles-Count"
	HeaderNewsCount         = "X-News-Count"
	HeaderTalksCount        = "X-Talks-Count"
	HeaderRequestID         = "X-Request-Id"
)

// API paths.
const (
	PathCities                 = "/api/cities"
	PathCitiesFilterMedia      = "/api/cities/filter-media"
	PathCitiesFilterStreet     = "/api/cities/filter-streetstyle"
	PathGalleries              = "/api/galleries"
	PathMedias                 = "/api/medias"
	PathStreetstyles           = "/api/streetstyles"
	PathIndividuals            = "/api/individuals"
	PathTokenSuffix            = "/oauth/v2/token"
	DefaultUserAgent           = "tagwalk-go-client"
	DefaultTracerName          = "github.com/fivetwenty-io/tagwalk-client"
	DefaultAPIEndpointScheme   = "https://"
	DevModeEnvironmentVariable = "TAGWALK_DEV_MODE"
)

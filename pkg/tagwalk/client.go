package tagwalk

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// CitiesClient lists fashion week cities. Results are cached per query.
type CitiesClient interface {
	List(ctx context.Context, params *CityListParams) ([]City, error)
	ListFilters(ctx context.Context, params *CityFilterParams) ([]City, error)
	ListFiltersStreet(ctx context.Context, params *CityStreetFilterParams) ([]City, error)
}

// GalleriesClient fetches editorial galleries.
type GalleriesClient interface {
	// Get returns the gallery and the X-Total-Count header. A missing
	// gallery yields a nil gallery and a nil error.
	Get(ctx context.Context, slug string, query Query) (*Gallery, int, error)
}

// MediasClient fetches runway looks.
type MediasClient interface {
	Get(ctx context.Context, slug string) (*Media, error)
	FindByTypeSeasonDesignerLook(ctx context.Context, mediaType, season, designer, look string) (*Media, error)
	ListRelated(ctx context.Context, params *RelatedParams) ([]Media, error)
	List(ctx context.Context, params *ListParams) (*Page[Media], error)
	ListByModel(ctx context.Context, slug string, query Query) (*ModelMedias, error)
}

// StreetstylesClient fetches street photographs.
type StreetstylesClient interface {
	Get(ctx context.Context, slug string) (*Streetstyle, error)
	List(ctx context.Context, params *ListParams) (*Page[Streetstyle], error)
}

// Client provides access to every resource client.
type Client interface {
	Cities() CitiesClient
	Galleries() GalleriesClient
	Medias() MediasClient
	Streetstyles() StreetstylesClient

	// Close releases the cache backend.
	Close() error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// CityListParams are the options of CitiesClient.List. Zero values fall back
// to the API defaults (size 100, sort name:asc, status enabled).
type CityListParams struct {
	Language string
	From     int
	Size     int
	Sort     string
	Status   string
}

// Query returns the filters as a Query.
func (p *CityListParams) Query() Query {
	return Query{
		"from":     p.From,
		"size":     p.Size,
		"sort":     p.Sort,
		"status":   p.Status,
		"language": p.Language,
	}
}

// CityFilterParams restricts cities to those having medias matching the
// filters.
type CityFilterParams struct {
	Type     string
	Season   string
	Designer string
	Tags     string
	Models   string
	Language string
}

// Query returns the filters as a Query.
func (p *CityFilterParams) Query() Query {
	return Query{
		"type":     p.Type,
		"season":   p.Season,
		"designer": p.Designer,
		"tags":     p.Tags,
		"models":   p.Models,
		"language": p.Language,
	}
}

// CityStreetFilterParams restricts cities to those having streetstyles
// matching the filters.
type CityStreetFilterParams struct {
	Season    string
	Designers string
	Tags      string
	Language  string
}

// Query returns the filters as a Query.
func (p *CityStreetFilterParams) Query() Query {
	return Query{
		"season":    p.Season,
		"designers": p.Designers,
		"tags":      p.Tags,
		"language":  p.Language,
	}
}

// ListParams are the options of paginated listings.
type ListParams struct {
	Filters Query
	From    int
	Size    int
	Status  string
}

// RelatedParams selects medias related to a look.
type RelatedParams struct {
	Type     string
	Season   string
	Designer string
	City     string
}

// Config represents client configuration for building a tagwalk.Client.
//
// # Authentication
//
//  1. AccessToken: if set, it is used directly as a static Bearer token.
//  2. ClientID/ClientSecret: uses the OAuth2 client_credentials grant against
//     TokenURL (default "<APIEndpoint>/oauth/v2/token").
//  3. No credentials: requests are sent without authentication.
//
// # Caching
//
// City listings are cached for CacheTTL (default one hour) in the backend
// described by Cache (default: in-memory). Entries expire on their own; there
// is no invalidation call.
//
// # Retries
//
// Requests are not retried unless RetryMax is set.
type Config struct {
	// APIEndpoint: base URL of the API (e.g., "https://api.tag-walk.com").
	APIEndpoint string

	ClientID     string
	ClientSecret string
	AccessToken  string
	TokenURL     string

	HTTPTimeout  time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: receives unexpected status codes and transport failures. Defaults to NoopLogger.
	Logger    Logger
	UserAgent string

	// Language is sent with city listings when the params do not set one.
	Language string

	Cache    *CacheConfig
	CacheTTL time.Duration

	// MetricsRegisterer: when set, cache hit/miss counters are registered on it.
	MetricsRegisterer prometheus.Registerer
	// TracerProvider: defaults to the global otel provider.
	TracerProvider trace.TracerProvider
	Interceptors   *InterceptorChain
}

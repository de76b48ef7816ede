package client

import (
	"context"

	"github.com/fivetwenty-io/tagwalk-client/internal/constants"
	"github.com/fivetwenty-io/tagwalk-client/internal/http"
	"github.com/fivetwenty-io/tagwalk-client/internal/normalizer"
	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
)

// CitiesClient implements tagwalk.CitiesClient. Every listing goes through
// the query cache.
type CitiesClient struct {
	resource

	cache    *tagwalk.QueryCache
	language string
}

// NewCitiesClient creates a new cities client. Listings without a language
// use the given default.
func NewCitiesClient(httpClient *http.Client, n *normalizer.Normalizer, cache *tagwalk.QueryCache, logger tagwalk.Logger, language string) *CitiesClient {
	if cache == nil {
		cache = tagwalk.NewQueryCache(nil, nil, nil, logger)
	}

	return &CitiesClient{
		resource: newResource(httpClient, n, logger),
		cache:    cache,
		language: language,
	}
}

// List implements tagwalk.CitiesClient.List.
func (c *CitiesClient) List(ctx context.Context, params *tagwalk.CityListParams) ([]tagwalk.City, error) {
	p := tagwalk.CityListParams{}
	if params != nil {
		p = *params
	}

	if p.Size == 0 {
		p.Size = constants.DefaultCitySize
	}

	if p.Sort == "" {
		p.Sort = constants.DefaultCitySort
	}

	if p.Status == "" {
		p.Status = constants.StatusEnabled
	}

	if p.Language == "" {
		p.Language = c.language
	}

	return c.list(ctx, "CitiesClient.List", constants.PathCities, constants.CitiesNamespace, p.Query())
}

// ListFilters implements tagwalk.CitiesClient.ListFilters.
func (c *CitiesClient) ListFilters(ctx context.Context, params *tagwalk.CityFilterParams) ([]tagwalk.City, error) {
	p := tagwalk.CityFilterParams{}
	if params != nil {
		p = *params
	}

	if p.Language == "" {
		p.Language = c.language
	}

	return c.list(ctx, "CitiesClient.ListFilters", constants.PathCitiesFilterMedia, constants.CitiesFilterMediaNamespace, p.Query())
}

// ListFiltersStreet implements tagwalk.CitiesClient.ListFiltersStreet.
func (c *CitiesClient) ListFiltersStreet(ctx context.Context, params *tagwalk.CityStreetFilterParams) ([]tagwalk.City, error) {
	p := tagwalk.CityStreetFilterParams{}
	if params != nil {
		p = *params
	}

	if p.Language == "" {
		p.Language = c.language
	}

	return c.list(ctx, "CitiesClient.ListFiltersStreet", constants.PathCitiesFilterStreet, constants.CitiesFilterStreetNamespace, p.Query())
}

func (c *CitiesClient) list(ctx context.Context, op, path, namespace string, query tagwalk.Query) ([]tagwalk.City, error) {
	return tagwalk.CachedQuery(ctx, c.cache, namespace, query,
		func(ctx context.Context, query tagwalk.Query) ([]tagwalk.City, error) {
			cities, _, err := listEntities[tagwalk.City](ctx, c.resource, op, path, query.Values(), listingPolicy, normalizer.KindCity)

			return cities, err
		},
	)
}

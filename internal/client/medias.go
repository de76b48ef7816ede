package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/tagwalk-client/internal/constants"
	"github.com/fivetwenty-io/tagwalk-client/internal/http"
	"github.com/fivetwenty-io/tagwalk-client/internal/normalizer"
	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
)

// MediasClient implements tagwalk.MediasClient.
type MediasClient struct {
	resource
}

// NewMediasClient creates a new medias client.
func NewMediasClient(httpClient *http.Client, n *normalizer.Normalizer, logger tagwalk.Logger) *MediasClient {
	return &MediasClient{resource: newResource(httpClient, n, logger)}
}

// Get implements tagwalk.MediasClient.Get.
func (c *MediasClient) Get(ctx context.Context, slug string) (*tagwalk.Media, error) {
	path := constants.PathMedias + "/" + url.PathEscape(slug)

	media, _, err := getEntity[tagwalk.Media](ctx, c.resource, "MediasClient.Get", path, nil, normalizer.KindMedia)

	return media, err
}

// FindByTypeSeasonDesignerLook implements
// tagwalk.MediasClient.FindByTypeSeasonDesignerLook. Nothing is requested
// unless all four parts are set.
func (c *MediasClient) FindByTypeSeasonDesignerLook(ctx context.Context, mediaType, season, designer, look string) (*tagwalk.Media, error) {
	if mediaType == "" || season == "" || designer == "" || look == "" {
		return nil, nil
	}

	path := constants.PathMedias + "/" + url.PathEscape(mediaType) + "/" + url.PathEscape(season) +
		"/" + url.PathEscape(designer) + "/" + url.PathEscape(look)

	media, _, err := getEntity[tagwalk.Media](ctx, c.resource, "MediasClient.FindByTypeSeasonDesignerLook", path, nil, normalizer.KindMedia)

	return media, err
}

// ListRelated implements tagwalk.MediasClient.ListRelated. Every status but
// 200 is logged, 404 included.
func (c *MediasClient) ListRelated(ctx context.Context, params *tagwalk.RelatedParams) ([]tagwalk.Media, error) {
	p := tagwalk.RelatedParams{}
	if params != nil {
		p = *params
	}

	query := tagwalk.Query{
		"type":     p.Type,
		"season":   p.Season,
		"designer": p.Designer,
		"city":     p.City,
	}.Values()
	query.Set("analytics", "0")
	query.Set("from", "0")
	query.Set("size", strconv.Itoa(constants.DefaultRelatedSize))

	medias, _, err := listEntities[tagwalk.Media](ctx, c.resource, "MediasClient.ListRelated", constants.PathMedias, query, relatedPolicy, normalizer.KindMedia)

	err = settle(err)
	if err != nil {
		return nil, err
	}

	return medias, nil
}

// List implements tagwalk.MediasClient.List.
func (c *MediasClient) List(ctx context.Context, params *tagwalk.ListParams) (*tagwalk.Page[tagwalk.Media], error) {
	return listPage[tagwalk.Media](ctx, c.resource, "MediasClient.List", constants.PathMedias, params, constants.DefaultMediaSize, normalizer.KindMedia)
}

// ListByModel implements tagwalk.MediasClient.ListByModel. Results are
// always sorted newest first. A 404 is logged like any unexpected status.
func (c *MediasClient) ListByModel(ctx context.Context, slug string, query tagwalk.Query) (*tagwalk.ModelMedias, error) {
	path := constants.PathIndividuals + "/" + url.PathEscape(slug) + "/medias"
	values := query.With("sort", constants.DefaultModelMediasSort).Values()

	medias, resp, err := listEntities[tagwalk.Media](ctx, c.resource, "MediasClient.ListByModel", path, values, modelPolicy, normalizer.KindMedia)
	if resp == nil {
		err = settle(err)
		if err != nil {
			return nil, err
		}

		return &tagwalk.ModelMedias{Medias: medias}, nil
	}

	return &tagwalk.ModelMedias{
		Medias:            medias,
		TotalCount:        headerCount(resp, constants.HeaderTotalCount),
		StreetstylesCount: headerCount(resp, constants.HeaderStreetstylesCount),
		NewsCount:         headerCount(resp, constants.HeaderNewsCount),
		TalksCount:        headerCount(resp, constants.HeaderTalksCount),
	}, nil
}

// listPage runs a paginated listing. The pagination keys are always sent,
// even when zero.
func listPage[T any](ctx context.Context, r resource, op, path string, params *tagwalk.ListParams, defaultSize int, kind normalizer.Kind) (*tagwalk.Page[T], error) {
	p := tagwalk.ListParams{}
	if params != nil {
		p = *params
	}

	if p.Size == 0 {
		p.Size = defaultSize
	}

	if p.Status == "" {
		p.Status = constants.StatusEnabled
	}

	query := p.Filters.Values()
	query.Set("from", strconv.Itoa(p.From))
	query.Set("size", strconv.Itoa(p.Size))
	query.Set("status", p.Status)

	items, resp, err := listEntities[T](ctx, r, op, path, query, listingPolicy, kind)
	if resp == nil {
		err = settle(err)
		if err != nil {
			return nil, err
		}

		return &tagwalk.Page[T]{Items: items}, nil
	}

	return &tagwalk.Page[T]{
		Items:      items,
		TotalCount: headerCount(resp, constants.HeaderTotalCount),
	}, nil
}

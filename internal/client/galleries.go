package client

import (
	"context"
	"net/url"

	"github.com/fivetwenty-io/tagwalk-client/internal/constants"
	"github.com/fivetwenty-io/tagwalk-client/internal/http"
	"github.com/fivetwenty-io/tagwalk-client/internal/normalizer"
	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
)

// GalleriesClient implements tagwalk.GalleriesClient.
type GalleriesClient struct {
	resource
}

// NewGalleriesClient creates a new galleries client.
func NewGalleriesClient(httpClient *http.Client, n *normalizer.Normalizer, logger tagwalk.Logger) *GalleriesClient {
	return &GalleriesClient{resource: newResource(httpClient, n, logger)}
}

// Get implements tagwalk.GalleriesClient.Get.
func (c *GalleriesClient) Get(ctx context.Context, slug string, query tagwalk.Query) (*tagwalk.Gallery, int, error) {
	path := constants.PathGalleries + "/" + url.PathEscape(slug)

	gallery, resp, err := getEntity[tagwalk.Gallery](ctx, c.resource, "GalleriesClient.Get", path, query.Values(), normalizer.KindGallery)
	if gallery == nil {
		return nil, 0, err
	}

	return gallery, headerCount(resp, constants.HeaderTotalCount), nil
}

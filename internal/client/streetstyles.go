package client

import (
	"context"
	"net/url"

	"github.com/fivetwenty-io/tagwalk-client/internal/constants"
	"github.com/fivetwenty-io/tagwalk-client/internal/http"
	"github.com/fivetwenty-io/tagwalk-client/internal/normalizer"
	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
)

// StreetstylesClient implements tagwalk.StreetstylesClient.
type StreetstylesClient struct {
	resource
}

// NewStreetstylesClient creates a new streetstyles client.
func NewStreetstylesClient(httpClient *http.Client, n *normalizer.Normalizer, logger tagwalk.Logger) *StreetstylesClient {
	return &StreetstylesClient{resource: newResource(httpClient, n, logger)}
}

// Get implements tagwalk.StreetstylesClient.Get.
func (c *StreetstylesClient) Get(ctx context.Context, slug string) (*tagwalk.Streetstyle, error) {
	path := constants.PathStreetstyles + "/" + url.PathEscape(slug)

	streetstyle, _, err := getEntity[tagwalk.Streetstyle](ctx, c.resource, "StreetstylesClient.Get", path, nil, normalizer.KindStreetstyle)

	return streetstyle, err
}

// List implements tagwalk.StreetstylesClient.List.
func (c *StreetstylesClient) List(ctx context.Context, params *tagwalk.ListParams) (*tagwalk.Page[tagwalk.Streetstyle], error) {
	return listPage[tagwalk.Streetstyle](ctx, c.resource, "StreetstylesClient.List", constants.PathStreetstyles, params, constants.DefaultMediaSize, normalizer.KindStreetstyle)
}

package client

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/tagwalk-client/internal/http"
	"github.com/fivetwenty-io/tagwalk-client/internal/normalizer"
	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
)

// statusPolicy decides how statuses other than 200 surface.
type statusPolicy struct {
	// escalateRange turns 416 into tagwalk.ErrOutOfRange.
	escalateRange bool
	// logNotFound treats 404 like any unexpected status.
	logNotFound bool
}

var (
	entityPolicy  = statusPolicy{}
	listingPolicy = statusPolicy{escalateRange: true}
	relatedPolicy = statusPolicy{logNotFound: true}
	modelPolicy   = statusPolicy{escalateRange: true, logNotFound: true}
)

// interpret maps a transport result to the response to decode.
//
// A nil response with a nil error means "not found": the caller returns its
// empty result. A *tagwalk.DegradedError means the failure was logged and the
// caller returns its empty result as well. Any other error is returned as is.
func interpret(resp *http.Response, err error, op string, policy statusPolicy, logger tagwalk.Logger) (*http.Response, error) {
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		logger.Error(op+" request failed", map[string]interface{}{
			"code":    0,
			"message": err.Error(),
		})

		return nil, tagwalk.Degraded(err)
	}

	switch {
	case resp.StatusCode == nethttp.StatusOK:
		return resp, nil
	case resp.StatusCode == nethttp.StatusNotFound && !policy.logNotFound:
		return nil, nil
	case resp.StatusCode == nethttp.StatusRequestedRangeNotSatisfiable && policy.escalateRange:
		return nil, fmt.Errorf("%s: %w", op, tagwalk.ErrOutOfRange)
	}

	logger.Error(op+" unexpected status code", map[string]interface{}{
		"code":    resp.StatusCode,
		"message": string(resp.Body),
	})

	return nil, tagwalk.Degraded(&tagwalk.HTTPError{StatusCode: resp.StatusCode, Body: string(resp.Body)})
}

// settle drops a degraded failure, which has already been logged.
func settle(err error) error {
	degraded := &tagwalk.DegradedError{}
	if errors.As(err, &degraded) {
		return nil
	}

	return err
}

// headerCount reads a count header. Missing or malformed values read as 0.
func headerCount(resp *http.Response, name string) int {
	count, err := strconv.Atoi(resp.Headers.Get(name))
	if err != nil {
		return 0
	}

	return count
}

// resource holds what every resource client needs.
type resource struct {
	httpClient *http.Client
	normalizer *normalizer.Normalizer
	logger     tagwalk.Logger
}

func newResource(httpClient *http.Client, n *normalizer.Normalizer, logger tagwalk.Logger) resource {
	if n == nil {
		n = normalizer.New()
	}

	if logger == nil {
		logger = tagwalk.NoopLogger{}
	}

	return resource{httpClient: httpClient, normalizer: n, logger: logger}
}

func (r resource) fetch(ctx context.Context, op, path string, query url.Values, policy statusPolicy) (*http.Response, error) {
	resp, err := r.httpClient.GetRaw(ctx, path, query)

	return interpret(resp, err, op, policy, r.logger)
}

// getEntity fetches and decodes one entity. It returns nil when the API has
// nothing to give.
func getEntity[T any](ctx context.Context, r resource, op, path string, query url.Values, kind normalizer.Kind) (*T, *http.Response, error) {
	resp, err := r.fetch(ctx, op, path, query, entityPolicy)
	if resp == nil {
		return nil, nil, settle(err)
	}

	entity, err := normalizer.DecodeBytes[T](r.normalizer, resp.Body, kind)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding %s: %w", kind, err)
	}

	return entity, resp, nil
}

// listEntities fetches and decodes a list. The list is never nil; a degraded
// failure is returned unsettled so a cache can decide whether to keep it.
func listEntities[T any](ctx context.Context, r resource, op, path string, query url.Values, policy statusPolicy, kind normalizer.Kind) ([]T, *http.Response, error) {
	resp, err := r.fetch(ctx, op, path, query, policy)
	if resp == nil {
		return []T{}, nil, err
	}

	items, err := normalizer.DecodeList[T](r.normalizer, resp.Body, kind)
	if err != nil {
		return []T{}, nil, fmt.Errorf("decoding %s list: %w", kind, err)
	}

	return items, resp, nil
}

package tagwalk_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "api response: 404 Not Found", (&tagwalk.HTTPError{StatusCode: 404}).Error())
	assert.Equal(t, "api response: 500 Internal Server Error: boom",
		(&tagwalk.HTTPError{StatusCode: 500, Body: "boom"}).Error())
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		err           error
		isNotFound    bool
		isOutOfRange  bool
		isServerError bool
	}{
		{
			name:       "404",
			err:        &tagwalk.HTTPError{StatusCode: 404},
			isNotFound: true,
		},
		{
			name:         "416",
			err:          fmt.Errorf("wrapped: %w", &tagwalk.HTTPError{StatusCode: 416}),
			isOutOfRange: true,
		},
		{
			name:         "sentinel",
			err:          fmt.Errorf("MediasClient.List: %w", tagwalk.ErrOutOfRange),
			isOutOfRange: true,
		},
		{
			name:          "503",
			err:           tagwalk.Degraded(&tagwalk.HTTPError{StatusCode: 503}),
			isServerError: true,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
		},
		{
			name: "nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.isNotFound, tagwalk.IsNotFound(tt.err))
			assert.Equal(t, tt.isOutOfRange, tagwalk.IsOutOfRange(tt.err))
			assert.Equal(t, tt.isServerError, tagwalk.IsServerError(tt.err))
		})
	}
}

func TestDegradedError(t *testing.T) {
	t.Parallel()

	cause := &tagwalk.HTTPError{StatusCode: 502, Body: "bad gateway"}
	err := tagwalk.Degraded(cause)

	assert.Equal(t, "degraded result: api response: 502 Bad Gateway: bad gateway", err.Error())

	httpErr := &tagwalk.HTTPError{}
	require.ErrorAs(t, err, &httpErr)
	assert.Same(t, cause, httpErr)
}

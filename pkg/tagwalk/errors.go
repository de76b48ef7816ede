package tagwalk

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError represents a non-success response from the Tagwalk API.
type HTTPError struct {
	StatusCode int    `json:"code"    yaml:"code"`
	Body       string `json:"message" yaml:"message"`
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api response: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}

	return fmt.Sprintf("api response: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// Static errors for err113 compliance.
var (
	// ErrOutOfRange is returned when a listing asks for a page past the end
	// of the result set (HTTP 416).
	ErrOutOfRange = errors.New("api response: range not satisfiable")

	ErrConfigRequired        = errors.New("config is required")
	ErrAPIEndpointRequired   = errors.New("API endpoint is required")
	ErrUnsupportedCacheType  = errors.New("unsupported cache type")
	ErrCacheMiss             = errors.New("key not found")
	ErrEntryExpired          = errors.New("entry expired")
	ErrCacheDisabled         = errors.New("cache disabled")
	ErrKeyNotFoundInAnyCache = errors.New("key not found in any cache")
	ErrNATSConfigRequired    = errors.New("NATS configuration required for NATS cache")
	ErrFileCacheDirRequired  = errors.New("directory required for file cache")
	ErrNamespaceRequired     = errors.New("cache namespace is required")
)

// IsNotFound checks if the error is a 404 from the API.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsOutOfRange checks if the error reports a listing past its last page.
func IsOutOfRange(err error) bool {
	if errors.Is(err, ErrOutOfRange) {
		return true
	}

	return hasStatus(err, http.StatusRequestedRangeNotSatisfiable)
}

// IsServerError checks if the error is a 5xx from the API.
func IsServerError(err error) bool {
	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= http.StatusInternalServerError
	}

	return false
}

func hasStatus(err error, status int) bool {
	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == status
	}

	return false
}

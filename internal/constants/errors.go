package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIConfigured = errors.New("no API endpoint configured, use --api or set TAGWALK_API")
	ErrUnknownOutput   = errors.New("unknown output format")
)

// Argument errors.
var (
	ErrSlugRequired = errors.New("slug is required")
	ErrLookRequired = errors.New("type, season, designer and look are all required")
)

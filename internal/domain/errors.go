package domain

import "errors"

// Ошибки предметной области.
var (
	// Ошибки ссылки
	ErrMalformedLink = errors.New("malformed link")
	ErrLinkScheme    = errors.New("link scheme must be http or https")

	// Ошибки пересылки
	ErrValidation    = errors.New("submission is invalid")
	ErrMisconfigured = errors.New("relay credentials are not configured")
	ErrUpstream      = errors.New("messaging api rejected the request")
)

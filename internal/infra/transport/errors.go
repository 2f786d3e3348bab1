package transport

import "errors"

// Sentinel errors for transport operations. The presenter collapses all of
// them into one failure surface, but they stay distinguishable for logging,
// metrics and tests.
var (
	// ErrInvalidEndpoint indicates the endpoint URL failed validation
	ErrInvalidEndpoint = errors.New("invalid endpoint URL")

	// ErrTimeout indicates the request exceeded the configured timeout
	ErrTimeout = errors.New("request timeout")

	// ErrBodyTooLarge indicates the response body exceeded the size limit
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTooManyRedirects indicates the redirect limit was exceeded
	ErrTooManyRedirects = errors.New("too many redirects")
)

package catalogapi

import "errors"

var (
	// ErrInvalidConfig is returned when the client is built without a base URL
	ErrInvalidConfig = errors.New("invalid catalog client config")

	// ErrNetworkError is returned when the catalog endpoint cannot be reached
	ErrNetworkError = errors.New("catalog network error")

	// ErrUnexpectedStatus is returned for any non-2xx response
	ErrUnexpectedStatus = errors.New("unexpected catalog response status")

	// ErrInvalidResponse is returned when the body is not a JSON product array
	ErrInvalidResponse = errors.New("invalid catalog response body")
)

package httpclient

import "context"

// RequestDoer is the transport contract the console packages depend on.
// Implementations must handle authentication, request building, and response
// processing. Tests substitute an in-memory fake.
type RequestDoer interface {
	// DoRequest makes an HTTP request with the given options.
	// Returns the response body, Location header (if present), and any error that occurred.
	DoRequest(ctx context.Context, opts RequestOptions) ([]byte, string, error)
}

// Verify that HTTPClient implements the RequestDoer interface.
var _ RequestDoer = &HTTPClient{}

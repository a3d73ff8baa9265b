// Package httpclient provides a configurable HTTP client for talking to the
// Reservat backend API. It handles bearer-token authentication, request
// identifiers, transparent retries for idempotent reads, and normalization of
// server error responses. The package requires a Configurator implementation
// for server configuration and token access.
package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/reservat/provider-console/internal/common/logtrace"
)

// Configurator defines the interface for providing server configuration and
// authentication details. Implementations must provide the server URL and the
// current bearer token with its expiry.
type Configurator interface {
	GetServerURL() string
	GetToken() string
	GetTokenExpiry() time.Time
}

// HTTPError represents an error response from the server with HTTP status code and message.
type HTTPError struct {
	StatusCode int    // HTTP status code of the error
	Message    string // Error message or response body
}

// Error implements the error interface for HTTPError.
func (e *HTTPError) Error() string {
	return e.Message
}

// HTTPClient is a client for making HTTP requests to the Reservat REST API.
// It handles authentication, request building, and response processing.
type HTTPClient struct {
	config           Configurator
	httpClient       *http.Client
	onUnauthorized   func()
	retryAttempts    uint
	disableRetryWait bool
}

// ClientOptions contains options for configuring the HTTP client.
type ClientOptions struct {
	DisableCertValidation bool // if true, skips SSL certificate validation
	DisableRetryWait      bool // if true, retries happen without backoff (tests)
}

// NewClient creates a new HTTP client using the provided configuration.
// The config parameter must implement the Configurator interface.
func NewClient(config Configurator, opts ...ClientOptions) *HTTPClient {
	clientOpts := ClientOptions{}
	if len(opts) > 0 {
		clientOpts = opts[0]
	}
	return NewClientWithOptions(config, clientOpts)
}

// NewClientWithOptions creates a new HTTP client using the provided configuration and options.
func NewClientWithOptions(config Configurator, opts ClientOptions) *HTTPClient {
	httpClient := &http.Client{}

	if opts.DisableCertValidation {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		}
	}

	return &HTTPClient{
		config:           config,
		httpClient:       httpClient,
		retryAttempts:    3,
		disableRetryWait: opts.DisableRetryWait,
	}
}

// SetUnauthorizedHook registers a callback invoked whenever the server answers
// with 401. The session layer uses it to drop the persisted token so the next
// caller action lands on the unauthenticated path.
func (c *HTTPClient) SetUnauthorizedHook(hook func()) {
	c.onUnauthorized = hook
}

// RequestOptions contains options for making HTTP requests.
// All fields are required except QueryParams and Body.
type RequestOptions struct {
	Method      string            // HTTP method (GET, POST, PUT, DELETE)
	Path        string            // API endpoint path
	QueryParams map[string]string // optional query parameters
	Body        []byte            // optional request body
}

// DoRequest makes an HTTP request with the given options.
// Returns the response body, Location header (if present), and any error that
// occurred. GET requests are retried on network failures and 5xx responses;
// mutating requests go out exactly once.
func (c *HTTPClient) DoRequest(ctx context.Context, opts RequestOptions) ([]byte, string, error) {
	if opts.Method != http.MethodGet {
		return c.doOnce(ctx, opts)
	}

	var body []byte
	var location string
	err := retry.Do(
		func() error {
			var err error
			body, location, err = c.doOnce(ctx, opts)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.retryAttempts),
		retry.Delay(c.retryDelay()),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
	)
	return body, location, err
}

func (c *HTTPClient) retryDelay() time.Duration {
	if c.disableRetryWait {
		return 0
	}
	return 200 * time.Millisecond
}

// isTransient reports whether the request is worth retrying. Client errors are
// final; only network failures and server-side 5xx qualify.
func isTransient(err error) bool {
	if httpErr, ok := err.(*HTTPError); ok {
		return httpErr.StatusCode >= 500
	}
	return true
}

func (c *HTTPClient) doOnce(ctx context.Context, opts RequestOptions) ([]byte, string, error) {
	u, err := url.Parse(c.config.GetServerURL())
	if err != nil {
		return nil, "", fmt.Errorf("invalid server URL: %v", err)
	}
	u.Path = path.Join(u.Path, opts.Path)
	if strings.HasSuffix(opts.Path, "/") && !strings.HasSuffix(u.Path, "/") {
		// path.Join strips the trailing slash the backend routes require
		u.Path += "/"
	}

	q := u.Query()
	for k, v := range opts.QueryParams {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	bodyReader := bytes.NewBuffer(opts.Body)
	req, err := http.NewRequestWithContext(ctx, opts.Method, u.String(), bodyReader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	requestId := logtrace.RequestIdFromContext(ctx)
	if requestId == "" {
		requestId = uuid.NewString()
	}
	req.Header.Set("X-Request-Id", requestId)

	// Use token if valid
	if c.config.GetToken() != "" {
		expiry := c.config.GetTokenExpiry()
		if expiry.IsZero() || time.Now().Before(expiry) {
			req.Header.Set("Authorization", "Bearer "+c.config.GetToken())
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %v", err)
	}

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		log.Ctx(ctx).Debug().Int("status", resp.StatusCode).Str("path", opts.Path).Msg("server returned error")
		return nil, "", &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, body),
		}
	}

	return body, resp.Header.Get("Location"), nil
}

// errorMessage extracts the server's error detail when the body carries one.
// The backend reports errors as {"detail": "..."}.
func errorMessage(statusCode int, body []byte) string {
	if detail := gjson.GetBytes(body, "detail"); detail.Exists() && detail.String() != "" {
		return detail.String()
	}
	if len(body) > 0 {
		return string(body)
	}
	return http.StatusText(statusCode)
}

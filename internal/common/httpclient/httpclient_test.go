package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reservat/provider-console/internal/common/logtrace"
)

type testConfig struct {
	serverURL string
	token     string
	expiry    time.Time
}

func (c *testConfig) GetServerURL() string      { return c.serverURL }
func (c *testConfig) GetToken() string          { return c.token }
func (c *testConfig) GetTokenExpiry() time.Time { return c.expiry }

func newTestClient(serverURL, token string, expiry time.Time) *HTTPClient {
	return NewClient(&testConfig{serverURL: serverURL, token: token, expiry: expiry}, ClientOptions{
		DisableRetryWait: true,
	})
}

func TestDoRequestSendsBearerAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "tok-123", time.Now().Add(time.Hour))
	body, _, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodGet,
		Path:   "servicios/consultar/1",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestDoRequestReusesContextRequestID(t *testing.T) {
	var gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReqID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "", time.Time{})
	ctx := logtrace.WithRequestId(context.Background(), "req-abc")
	_, _, err := client.DoRequest(ctx, RequestOptions{
		Method: http.MethodGet,
		Path:   "servicios/consultar/1",
	})
	require.NoError(t, err)
	assert.Equal(t, "req-abc", gotReqID)
}

func TestDoRequestSkipsExpiredToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "tok-123", time.Now().Add(-time.Minute))
	_, _, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodGet,
		Path:   "servicios/consultar/1",
	})
	require.NoError(t, err)
	assert.Empty(t, gotAuth, "an expired token must not be sent")
}

func TestDoRequestPreservesTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "", time.Time{})
	_, _, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodPost,
		Path:   "servicios/crear/",
		Body:   []byte(`{}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "/servicios/crear/", gotPath)
}

func TestDoRequestRetriesTransientGet(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "", time.Time{})
	body, _, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodGet,
		Path:   "servicios/proveedor/1",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestDoRequestDoesNotRetryMutations(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "", time.Time{})
	_, _, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodPost,
		Path:   "servicios/crear/",
		Body:   []byte(`{}`),
	})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "mutating requests go out exactly once")
}

func TestDoRequestDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Servicio no encontrado"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "", time.Time{})
	_, _, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodGet,
		Path:   "servicios/consultar/zzz",
	})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	httpErr, ok := err.(*HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "Servicio no encontrado", httpErr.Message)
}

func TestDoRequestInvokesUnauthorizedHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"token vencido"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "tok-123", time.Now().Add(time.Hour))
	hooked := false
	client.SetUnauthorizedHook(func() { hooked = true })

	_, _, err := client.DoRequest(context.Background(), RequestOptions{
		Method: http.MethodPost,
		Path:   "servicios/crear/",
		Body:   []byte(`{}`),
	})
	require.Error(t, err)
	assert.True(t, hooked)
}

func TestErrorMessageFallbacks(t *testing.T) {
	assert.Equal(t, "detalle", errorMessage(400, []byte(`{"detail":"detalle"}`)))
	assert.Equal(t, "plain body", errorMessage(400, []byte("plain body")))
	assert.Equal(t, "Bad Request", errorMessage(400, nil))
}

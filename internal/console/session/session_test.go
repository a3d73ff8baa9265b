package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reservat/provider-console/internal/common/httpclient"
	"github.com/reservat/provider-console/internal/console/detail"
)

// fakeDoer is an in-memory transport for tests.
type fakeDoer struct {
	handler func(opts httpclient.RequestOptions) ([]byte, error)
	calls   int
}

func (f *fakeDoer) DoRequest(_ context.Context, opts httpclient.RequestOptions) ([]byte, string, error) {
	f.calls++
	body, err := f.handler(opts)
	return body, "", err
}

func signToken(t *testing.T, vertical string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":           "prov-42",
		"email":        "hotel@example.com",
		"tipo_usuario": vertical,
		"exp":          exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestParse(t *testing.T) {
	token := signToken(t, "hotel", time.Now().Add(time.Hour))
	sess, err := Parse(token)
	require.Nil(t, err)
	assert.Equal(t, "prov-42", sess.Claims.SubjectID)
	assert.Equal(t, "hotel@example.com", sess.Claims.Email)
	assert.Equal(t, detail.VerticalLodging, sess.Claims.Vertical)
	assert.True(t, sess.Valid())
}

func TestParseRejectsBadTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"unknown vertical", signTokenWithVertical(t, "spa")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := Parse(tt.token)
			assert.Nil(t, sess)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func signTokenWithVertical(t *testing.T, vertical string) string {
	return signToken(t, vertical, time.Now().Add(time.Hour))
}

func TestAuthenticate(t *testing.T) {
	token := signToken(t, "restaurante", time.Now().Add(time.Hour))
	doer := &fakeDoer{handler: func(opts httpclient.RequestOptions) ([]byte, error) {
		assert.Equal(t, "usuarios/login", opts.Path)
		assert.Contains(t, string(opts.Body), "contraseña")
		return []byte(`{"access_token":"` + token + `","token_type":"bearer"}`), nil
	}}
	store := NewMemoryTokenStore()
	mgr := NewManager(doer, store)

	sess, err := mgr.Authenticate(context.Background(), "resto@example.com", "secret")
	require.Nil(t, err)
	assert.Equal(t, detail.VerticalDining, sess.Claims.Vertical)

	stored, readErr := store.Read()
	require.NoError(t, readErr)
	assert.Equal(t, token, stored)

	claims := mgr.Current()
	require.NotNil(t, claims)
	assert.Equal(t, "prov-42", claims.SubjectID)
}

func TestAuthenticateErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected error
	}{
		{"user not found", 404, ErrUserNotFound},
		{"invalid credentials", 401, ErrInvalidCredentials},
		{"account disabled", 403, ErrAccountDisabled},
		{"server error", 500, ErrServerError},
		{"unknown", 418, ErrUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &fakeDoer{handler: func(httpclient.RequestOptions) ([]byte, error) {
				return nil, &httpclient.HTTPError{StatusCode: tt.status, Message: "detail"}
			}}
			mgr := NewManager(doer, NewMemoryTokenStore())
			sess, err := mgr.Authenticate(context.Background(), "a@b.c", "pw")
			assert.Nil(t, sess)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestRestoreExpiredClearsStore(t *testing.T) {
	store := NewMemoryTokenStore()
	require.NoError(t, store.Write(signToken(t, "tour", time.Now().Add(-time.Second))))
	mgr := NewManager(&fakeDoer{}, store)

	assert.Nil(t, mgr.Restore())

	stored, err := store.Read()
	require.NoError(t, err)
	assert.Empty(t, stored, "expired token must be cleared from storage")
}

func TestRestoreUnparsableClearsStore(t *testing.T) {
	store := NewMemoryTokenStore()
	require.NoError(t, store.Write("corrupted"))
	mgr := NewManager(&fakeDoer{}, store)

	assert.Nil(t, mgr.Restore())

	stored, err := store.Read()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRestoreValidToken(t *testing.T) {
	store := NewMemoryTokenStore()
	token := signToken(t, "hotel", time.Now().Add(time.Hour))
	require.NoError(t, store.Write(token))
	mgr := NewManager(&fakeDoer{}, store)

	sess := mgr.Restore()
	require.NotNil(t, sess)
	assert.Equal(t, token, mgr.Token())
}

func TestInvalidateIsIdempotent(t *testing.T) {
	store := NewMemoryTokenStore()
	require.NoError(t, store.Write(signToken(t, "hotel", time.Now().Add(time.Hour))))
	mgr := NewManager(&fakeDoer{}, store)
	require.NotNil(t, mgr.Restore())

	mgr.Invalidate()
	mgr.Invalidate()

	assert.Nil(t, mgr.Current())
	stored, err := store.Read()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestFileTokenStore(t *testing.T) {
	path := t.TempDir() + "/creds/credentials.yaml"
	store := NewFileTokenStore(path)

	token, err := store.Read()
	require.NoError(t, err)
	assert.Empty(t, token, "missing file reads as empty token")

	require.NoError(t, store.Write("tok-123"))
	token, err = store.Read()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing twice is fine")
	token, err = store.Read()
	require.NoError(t, err)
	assert.Empty(t, token)
}

package media

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/reservat/provider-console/internal/common/httpclient"
	"github.com/reservat/provider-console/internal/console/session"
)

type fakeDoer struct {
	handler func(opts httpclient.RequestOptions) ([]byte, error)
}

func (f *fakeDoer) DoRequest(_ context.Context, opts httpclient.RequestOptions) ([]byte, string, error) {
	if f.handler == nil {
		return nil, "", &httpclient.HTTPError{StatusCode: 500, Message: "no handler"}
	}
	body, err := f.handler(opts)
	return body, "", err
}

func authedSessions(t *testing.T) *session.Manager {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":           "prov-7",
		"email":        "hotel@example.com",
		"tipo_usuario": "hotel",
		"exp":          time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	store := session.NewMemoryTokenStore()
	require.NoError(t, store.Write(signed))
	return session.NewManager(&fakeDoer{}, store)
}

func TestRegister(t *testing.T) {
	doer := &fakeDoer{handler: func(opts httpclient.RequestOptions) ([]byte, error) {
		assert.Equal(t, "POST", opts.Method)
		assert.Equal(t, "fotos/crear/", opts.Path)
		sent := gjson.ParseBytes(opts.Body)
		assert.Equal(t, "svc-1", sent.Get("servicio_id").String())
		assert.True(t, sent.Get("es_portada").Bool())
		return []byte(`{"id":"ph-9","fecha_subida":"2026-08-30T10:15:42Z"}`), nil
	}}
	cli := NewClient(doer, authedSessions(t))

	created, err := cli.Register(context.Background(), PhotoReference{
		ServiceID: "svc-1",
		URL:       "https://bucket.example.com/img/svc-1/2026-08-30T10-15-42Z-fachada.jpg",
		IsCover:   true,
	})
	require.Nil(t, err)
	assert.Equal(t, "ph-9", created.ID)
	assert.Equal(t, "2026-08-30T10:15:42Z", created.UploadedAt)
}

func TestRegisterRequiresServiceAndURL(t *testing.T) {
	calls := 0
	doer := &fakeDoer{handler: func(httpclient.RequestOptions) ([]byte, error) {
		calls++
		return []byte(`{}`), nil
	}}
	cli := NewClient(doer, authedSessions(t))

	_, err := cli.Register(context.Background(), PhotoReference{URL: "https://x/y.jpg"})
	assert.ErrorIs(t, err, ErrMediaError)
	_, err = cli.Register(context.Background(), PhotoReference{ServiceID: "svc-1"})
	assert.ErrorIs(t, err, ErrMediaError)
	assert.Zero(t, calls)
}

func TestRegisterRequiresSession(t *testing.T) {
	doer := &fakeDoer{}
	cli := NewClient(doer, session.NewManager(doer, session.NewMemoryTokenStore()))

	_, err := cli.Register(context.Background(), PhotoReference{ServiceID: "svc-1", URL: "https://x/y.jpg"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestListByService(t *testing.T) {
	doer := &fakeDoer{handler: func(opts httpclient.RequestOptions) ([]byte, error) {
		assert.Equal(t, "fotos/servicios/svc-1", opts.Path)
		return []byte(`[
			{"id":"ph-1","servicio_id":"svc-1","url":"https://x/a.jpg","orden":0,"es_portada":true},
			{"id":"ph-2","servicio_id":"svc-1","url":"https://x/b.jpg","orden":1,"eliminado":true}
		]`), nil
	}}
	cli := NewClient(doer, authedSessions(t))

	refs, err := cli.ListByService(context.Background(), "svc-1")
	require.Nil(t, err)
	require.Len(t, refs, 2)
	assert.True(t, refs[0].IsCover)
	assert.True(t, refs[1].Deleted)
	assert.Equal(t, 1, refs[1].Order)
}

func TestListByServiceInvalidatesOn401(t *testing.T) {
	doer := &fakeDoer{handler: func(httpclient.RequestOptions) ([]byte, error) {
		return nil, &httpclient.HTTPError{StatusCode: 401, Message: "expired"}
	}}
	sessions := authedSessions(t)
	cli := NewClient(doer, sessions)

	_, err := cli.ListByService(context.Background(), "svc-1")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, sessions.Current())
}

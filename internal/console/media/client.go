package media

import (
	"context"
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"

	"github.com/reservat/provider-console/internal/common/apperrors"
	"github.com/reservat/provider-console/internal/common/httpclient"
	"github.com/reservat/provider-console/internal/console/session"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Media errors
var (
	ErrMediaError   apperrors.Error = apperrors.New("photo operation failed").SetStatusCode(http.StatusInternalServerError)
	ErrUnauthorized apperrors.Error = ErrMediaError.New("session is invalid or expired").SetStatusCode(http.StatusUnauthorized)
	ErrNotImage     apperrors.Error = ErrMediaError.New("file content is not a supported image").SetStatusCode(http.StatusBadRequest)
	ErrServerError  apperrors.Error = ErrMediaError.New("server error").SetStatusCode(http.StatusInternalServerError)
)

// PhotoReference is the photo record the backend stores. It points at an
// object in the bucket; the bytes themselves never pass through this client.
type PhotoReference struct {
	ID          string `json:"id,omitempty"`
	ServiceID   string `json:"servicio_id"`
	URL         string `json:"url"`
	Description string `json:"descripcion,omitempty"`
	Order       int    `json:"orden"`
	IsCover     bool   `json:"es_portada"`
	UploadedAt  string `json:"fecha_subida,omitempty"`
	Deleted     bool   `json:"eliminado"`
}

// Client registers and lists photo references for services.
type Client struct {
	client   httpclient.RequestDoer
	sessions *session.Manager
}

// NewClient creates a photo client bound to the given transport and session
// manager.
func NewClient(client httpclient.RequestDoer, sessions *session.Manager) *Client {
	return &Client{
		client:   client,
		sessions: sessions,
	}
}

func (c *Client) fail(base apperrors.Error, reqErr error) apperrors.Error {
	var httpErr *httpclient.HTTPError
	if errors.As(reqErr, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized {
		c.sessions.Invalidate()
		return ErrUnauthorized
	}
	return base.Err(reqErr)
}

// Register records a photo reference for a service. The object behind ref.URL
// is expected to already exist in the bucket.
func (c *Client) Register(ctx context.Context, ref PhotoReference) (PhotoReference, apperrors.Error) {
	if c.sessions.Current() == nil {
		return PhotoReference{}, ErrUnauthorized
	}
	if ref.ServiceID == "" || ref.URL == "" {
		return PhotoReference{}, ErrMediaError.Msg("photo reference requires a service id and a url")
	}

	payload, err := json.Marshal(ref)
	if err != nil {
		return PhotoReference{}, ErrMediaError.Err(err)
	}
	body, _, reqErr := c.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodPost,
		Path:   "fotos/crear/",
		Body:   payload,
	})
	if reqErr != nil {
		return PhotoReference{}, c.fail(ErrServerError, reqErr)
	}

	created := ref
	res := gjson.ParseBytes(body)
	if id := res.Get("id"); id.Exists() {
		created.ID = id.String()
	}
	if up := res.Get("fecha_subida"); up.Exists() {
		created.UploadedAt = up.String()
	}
	return created, nil
}

// ListByService returns the photo references recorded for a service.
func (c *Client) ListByService(ctx context.Context, serviceID string) ([]PhotoReference, apperrors.Error) {
	if c.sessions.Current() == nil {
		return nil, ErrUnauthorized
	}

	body, _, reqErr := c.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   "fotos/servicios/" + serviceID,
	})
	if reqErr != nil {
		return nil, c.fail(ErrServerError, reqErr)
	}

	res := gjson.ParseBytes(body)
	items := res
	if !res.IsArray() {
		items = res.Get("fotos")
	}
	refs := []PhotoReference{}
	for _, item := range items.Array() {
		refs = append(refs, PhotoReference{
			ID:          item.Get("id").String(),
			ServiceID:   item.Get("servicio_id").String(),
			URL:         item.Get("url").String(),
			Description: item.Get("descripcion").String(),
			Order:       int(item.Get("orden").Int()),
			IsCover:     item.Get("es_portada").Bool(),
			UploadedAt:  item.Get("fecha_subida").String(),
			Deleted:     item.Get("eliminado").Bool(),
		})
	}
	return refs, nil
}

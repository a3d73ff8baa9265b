package reservation

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/reservat/provider-console/internal/common/apperrors"
	"github.com/reservat/provider-console/internal/common/httpclient"
	"github.com/reservat/provider-console/internal/console/session"
)

// Base reservation error
var (
	ErrReservationError apperrors.Error = apperrors.New("reservation read failed").SetStatusCode(http.StatusInternalServerError)
	ErrUnauthorized     apperrors.Error = ErrReservationError.New("session is invalid or expired").SetStatusCode(http.StatusUnauthorized)
	ErrServerError      apperrors.Error = ErrReservationError.New("server error").SetStatusCode(http.StatusInternalServerError)
)

// Client reads raw reservation records from the backend. Projection is a
// separate, pure step so screens can re-project without refetching.
type Client struct {
	client   httpclient.RequestDoer
	sessions *session.Manager
}

// NewClient creates a reservation reader bound to the given transport and
// session manager.
func NewClient(client httpclient.RequestDoer, sessions *session.Manager) *Client {
	return &Client{
		client:   client,
		sessions: sessions,
	}
}

// ListByProvider returns one page of the provider's raw reservation records.
func (c *Client) ListByProvider(ctx context.Context, providerID string, page, pageSize int) ([]RawRecord, apperrors.Error) {
	if c.sessions.Current() == nil {
		return nil, ErrUnauthorized
	}
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = 100
	}

	body, _, reqErr := c.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   "reservas/listar/proveedor/" + providerID,
		QueryParams: map[string]string{
			"pagina": strconv.Itoa(page),
			"limite": strconv.Itoa(pageSize),
		},
	})
	if reqErr != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(reqErr, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized {
			c.sessions.Invalidate()
			return nil, ErrUnauthorized
		}
		return nil, ErrServerError.Err(reqErr)
	}

	res := gjson.ParseBytes(body)
	items := res
	if !res.IsArray() {
		items = res.Get("reservas")
	}
	records := []RawRecord{}
	for _, item := range items.Array() {
		records = append(records, recordFromJSON(item))
	}
	return records, nil
}

package catalog

import (
	"context"
	"net/http"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/reservat/provider-console/internal/common/apperrors"
	"github.com/reservat/provider-console/internal/common/httpclient"
	"github.com/reservat/provider-console/internal/console/detail"
	"github.com/reservat/provider-console/internal/console/session"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Draft is the caller-supplied input for creating a service.
type Draft struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
	Price       int64  `validate:"gt=0"`
	Currency    string
	Active      *bool // nil means active
	Relevance   Relevance
	City        string
	Region      string
	Address     string
	Vertical    detail.Vertical
	Detail      *detail.Detail // nil means schema defaults for the vertical
}

// Patch is a partial update; nil fields are left untouched. The vertical tag
// is immutable and deliberately absent.
type Patch struct {
	Name        *string
	Description *string
	Price       *int64
	Currency    *string
	Active      *bool
	Relevance   *Relevance
	City        *string
	Region      *string
	Address     *string
	Detail      *detail.Detail
}

// Catalog orchestrates service CRUD for the authenticated provider. Every
// operation requires a valid session; a 401 from the collaborator invalidates
// it and surfaces as Unauthorized.
type Catalog struct {
	client   httpclient.RequestDoer
	sessions *session.Manager
}

// New creates a catalog bound to the given transport and session manager.
func New(client httpclient.RequestDoer, sessions *session.Manager) *Catalog {
	return &Catalog{
		client:   client,
		sessions: sessions,
	}
}

// require returns the active claims or Unauthorized.
func (c *Catalog) require() (*session.Claims, apperrors.Error) {
	claims := c.sessions.Current()
	if claims == nil {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// fail normalizes a transport error, invalidating the session when the
// failure was an authorization rejection.
func (c *Catalog) fail(err error) apperrors.Error {
	mapped := mapTransportError(err)
	if mapped.StatusCode() == http.StatusUnauthorized {
		c.sessions.Invalidate()
	}
	return mapped
}

// ListByProvider returns one page of the provider's services. A page beyond
// the last one is an empty, non-error result.
func (c *Catalog) ListByProvider(ctx context.Context, providerID string, page, pageSize int) ([]ServiceRecord, apperrors.Error) {
	if _, err := c.require(); err != nil {
		return nil, err
	}
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = 100
	}

	body, _, reqErr := c.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   "servicios/proveedor/" + providerID,
		QueryParams: map[string]string{
			"pagina": strconv.Itoa(page),
			"limite": strconv.Itoa(pageSize),
		},
	})
	if reqErr != nil {
		return nil, c.fail(reqErr)
	}

	res := gjson.ParseBytes(body)
	items := res
	if !res.IsArray() {
		items = res.Get("servicios")
	}
	records := []ServiceRecord{}
	for _, item := range items.Array() {
		records = append(records, recordFromJSON(item))
	}
	return records, nil
}

// Get fetches a single service by id.
func (c *Catalog) Get(ctx context.Context, id string) (ServiceRecord, apperrors.Error) {
	if _, err := c.require(); err != nil {
		return ServiceRecord{}, err
	}

	body, _, reqErr := c.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   "servicios/consultar/" + id,
	})
	if reqErr != nil {
		return ServiceRecord{}, c.fail(reqErr)
	}
	return recordFromJSON(gjson.ParseBytes(body)), nil
}

// Create validates the draft locally, encodes the detail payload, and submits
// the new service. The backend assigns id and timestamps. Validation failures
// make no network call.
func (c *Catalog) Create(ctx context.Context, draft Draft) (ServiceRecord, apperrors.Error) {
	claims, err := c.require()
	if err != nil {
		return ServiceRecord{}, err
	}
	if err := validateDraft(draft); err != nil {
		return ServiceRecord{}, err
	}

	d := detail.Defaults(draft.Vertical)
	if draft.Detail != nil {
		if draft.Detail.Vertical != draft.Vertical {
			return ServiceRecord{}, ErrFieldValidation.Err(apperrors.ValidationErrors{
				{Field: "tipo_servicio", Value: string(draft.Detail.Vertical), ErrStr: "detail payload does not match vertical"},
			})
		}
		d = *draft.Detail
	}
	payload, encErr := detail.Encode(d)
	if encErr != nil {
		return ServiceRecord{}, ErrFieldValidation.Err(encErr)
	}

	currency := draft.Currency
	if currency == "" {
		currency = "COP"
	}
	relevance := draft.Relevance
	if !relevance.Valid() {
		relevance = RelevanceMedium
	}
	active := true
	if draft.Active != nil {
		active = *draft.Active
	}

	now := time.Now().UTC().Format(time.RFC3339)
	wire := serviceWire{
		ProviderID:  claims.SubjectID,
		Name:        draft.Name,
		Description: draft.Description,
		ServiceType: draft.Vertical.String(),
		Price:       draft.Price,
		Currency:    currency,
		Active:      active,
		Relevance:   string(relevance),
		City:        draft.City,
		Region:      draft.Region,
		Address:     draft.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
		Detail:      payload,
	}
	body, marshalErr := json.Marshal(wire)
	if marshalErr != nil {
		return ServiceRecord{}, ErrCatalogError.Err(marshalErr)
	}

	respBody, _, reqErr := c.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodPost,
		Path:   "servicios/crear/",
		Body:   body,
	})
	if reqErr != nil {
		return ServiceRecord{}, c.fail(reqErr)
	}
	return recordFromJSON(gjson.ParseBytes(respBody)), nil
}

// Update applies a partial update to a service. The vertical tag is immutable;
// the backend resolves concurrent writes last-write-wins, so the local copy is
// stale afterwards and must be re-read before the next edit.
func (c *Catalog) Update(ctx context.Context, id string, patch Patch) (ServiceRecord, apperrors.Error) {
	if _, err := c.require(); err != nil {
		return ServiceRecord{}, err
	}
	if err := validatePatch(patch); err != nil {
		return ServiceRecord{}, err
	}

	body, buildErr := buildPatchBody(patch)
	if buildErr != nil {
		return ServiceRecord{}, ErrCatalogError.Err(buildErr)
	}

	respBody, _, reqErr := c.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodPut,
		Path:   "servicios/editar/" + id,
		Body:   body,
	})
	if reqErr != nil {
		return ServiceRecord{}, c.fail(reqErr)
	}
	return recordFromJSON(gjson.ParseBytes(respBody)), nil
}

// buildPatchBody assembles the update JSON from the set fields only.
func buildPatchBody(patch Patch) ([]byte, error) {
	body := []byte(`{}`)
	var err error

	set := func(path string, value any) {
		if err != nil {
			return
		}
		body, err = sjson.SetBytes(body, path, value)
	}

	if patch.Name != nil {
		set("nombre", *patch.Name)
	}
	if patch.Description != nil {
		set("descripcion", *patch.Description)
	}
	if patch.Price != nil {
		set("precio", *patch.Price)
	}
	if patch.Currency != nil {
		set("moneda", *patch.Currency)
	}
	if patch.Active != nil {
		set("activo", *patch.Active)
	}
	if patch.Relevance != nil {
		set("relevancia", string(*patch.Relevance))
	}
	if patch.City != nil {
		set("ciudad", *patch.City)
	}
	if patch.Region != nil {
		set("departamento", *patch.Region)
	}
	if patch.Address != nil {
		set("ubicacion", *patch.Address)
	}
	if patch.Detail != nil {
		payload, encErr := detail.Encode(*patch.Detail)
		if encErr != nil {
			return nil, encErr
		}
		set("detalles_del_servicio", payload)
	}
	set("fecha_actualizacion", time.Now().UTC().Format(time.RFC3339))

	return body, err
}

// Delete removes a service. Deleting an id that is already gone reports
// success, tolerating double submission. The call is assumed pre-confirmed;
// the confirmation step belongs to the caller layer.
func (c *Catalog) Delete(ctx context.Context, id string) apperrors.Error {
	if _, err := c.require(); err != nil {
		return err
	}

	_, _, reqErr := c.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodDelete,
		Path:   "servicios/eliminar/" + id,
	})
	if reqErr != nil {
		mapped := c.fail(reqErr)
		if mapped.StatusCode() == http.StatusNotFound {
			log.Ctx(ctx).Debug().Str("service_id", id).Msg("delete of absent service treated as success")
			return nil
		}
		return mapped
	}
	return nil
}

// Package catalog provides CRUD orchestration over the provider's service
// records. All operations are scoped to the authenticated provider and
// round-trip the vertical-specific payload through the detail codec. Local
// copies are stale after any mutating call; re-read before the next edit.
package catalog

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/reservat/provider-console/internal/console/detail"
)

// Relevance is the visibility tier of a service in marketplace listings.
type Relevance string

const (
	RelevanceLow    Relevance = "BAJA"
	RelevanceMedium Relevance = "MEDIA"
	RelevanceHigh   Relevance = "ALTA"
)

// Valid reports whether r is one of the known tiers.
func (r Relevance) Valid() bool {
	switch r {
	case RelevanceLow, RelevanceMedium, RelevanceHigh:
		return true
	default:
		return false
	}
}

// ParseRelevance resolves a raw tier, defaulting to MEDIA for anything
// unknown, matching the backend default.
func ParseRelevance(s string) Relevance {
	r := Relevance(strings.ToUpper(strings.TrimSpace(s)))
	if r.Valid() {
		return r
	}
	return RelevanceMedium
}

// ServiceRecord is the generic catalog entity. Its Detail payload shape is
// determined by the Vertical tag, which is immutable after creation.
type ServiceRecord struct {
	ID          string
	ProviderID  string
	Name        string
	Description string
	Price       int64 // minor currency units
	Currency    string
	Active      bool
	Relevance   Relevance
	City        string
	Region      string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Vertical    detail.Vertical
	Detail      detail.Detail
}

// serviceWire is the backend JSON shape of a service record.
type serviceWire struct {
	ProviderID  string `json:"proveedor_id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	ServiceType string `json:"tipo_servicio"`
	Price       int64  `json:"precio"`
	Currency    string `json:"moneda"`
	Active      bool   `json:"activo"`
	Relevance   string `json:"relevancia"`
	City        string `json:"ciudad"`
	Region      string `json:"departamento"`
	Address     string `json:"ubicacion"`
	CreatedAt   string `json:"fecha_creacion"`
	UpdatedAt   string `json:"fecha_actualizacion"`
	Detail      string `json:"detalles_del_servicio"`
}

// recordFromJSON projects a backend service object into a ServiceRecord.
// Field extraction is tolerant: a record with odd field types still yields a
// usable value, and the detail payload degrades to schema defaults.
func recordFromJSON(res gjson.Result) ServiceRecord {
	vertical, _ := detail.ParseVertical(res.Get("tipo_servicio").String())
	return ServiceRecord{
		ID:          res.Get("id").String(),
		ProviderID:  res.Get("proveedor_id").String(),
		Name:        res.Get("nombre").String(),
		Description: res.Get("descripcion").String(),
		Price:       res.Get("precio").Int(),
		Currency:    res.Get("moneda").String(),
		Active:      res.Get("activo").Bool(),
		Relevance:   ParseRelevance(res.Get("relevancia").String()),
		City:        res.Get("ciudad").String(),
		Region:      res.Get("departamento").String(),
		Address:     res.Get("ubicacion").String(),
		CreatedAt:   parseInstant(res.Get("fecha_creacion").String()),
		UpdatedAt:   parseInstant(res.Get("fecha_actualizacion").String()),
		Vertical:    vertical,
		Detail:      detail.Decode(vertical, res.Get("detalles_del_servicio").String()),
	}
}

// parseInstant parses the backend's timestamp formats, zero time on failure.
func parseInstant(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

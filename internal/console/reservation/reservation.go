// Package reservation normalizes raw backend reservation records into the
// closed set of states the console displays. The backend reports status as
// free text; the projector maps it to a fixed four-value set in one place
// instead of re-deriving it per screen.
package reservation

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/reservat/provider-console/internal/console/detail"
)

// Status is a normalized reservation state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// NormalizeStatus maps a raw backend status token to a Status. The mapping is
// case-insensitive and total: anything outside the known set maps to PENDING.
func NormalizeStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "confirmada", "confirmado":
		return StatusConfirmed
	case "cancelada", "cancelado":
		return StatusCancelled
	case "completada", "completado":
		return StatusCompleted
	case "pendiente":
		return StatusPending
	default:
		return StatusPending
	}
}

// RawRecord is a reservation as the backend reports it. Optional fields may be
// absent or malformed; the projector degrades them rather than dropping rows.
type RawRecord struct {
	ID        string `json:"id"`
	GuestName string `json:"cliente"`
	ServiceID string `json:"servicio_id"`
	StartAt   string `json:"fecha_inicio"`
	EndAt     string `json:"fecha_fin"`
	PartySize int    `json:"numero_personas"`
	UnitPrice int64  `json:"precio"`
	RawStatus string `json:"estado"`
	Notes     string `json:"notas"`
}

// ServiceSummary carries the denormalized display fields of the associated
// service.
type ServiceSummary struct {
	Name        string
	Description string
	Vertical    detail.Vertical
	City        string
}

// Lookup resolves a service id to its display summary. A miss is not an
// error; the projector substitutes a placeholder.
type Lookup func(serviceID string) (ServiceSummary, bool)

// View is a reservation projected for display.
type View struct {
	ID          string
	GuestName   string
	ServiceName string
	Description string
	Vertical    detail.Vertical
	City        string
	StartAt     time.Time
	EndAt       time.Time
	PartySize   int
	UnitPrice   int64
	Total       int64
	Notes       string
	Status      Status
}

// placeholderService is used when the lookup cannot resolve a record's
// service, so the row still renders instead of being dropped.
const placeholderService = "Servicio"

// Project maps raw records to display views. The function is total over its
// input: length and order are preserved, and malformed fields degrade to safe
// defaults row by row.
func Project(raws []RawRecord, lookup Lookup) []View {
	views := make([]View, 0, len(raws))
	for _, raw := range raws {
		views = append(views, projectOne(raw, lookup))
	}
	return views
}

func projectOne(raw RawRecord, lookup Lookup) View {
	view := View{
		ID:          raw.ID,
		GuestName:   raw.GuestName,
		ServiceName: placeholderService,
		StartAt:     parseInstant(raw.StartAt),
		EndAt:       parseInstant(raw.EndAt),
		PartySize:   raw.PartySize,
		UnitPrice:   raw.UnitPrice,
		Notes:       raw.Notes,
		Status:      NormalizeStatus(raw.RawStatus),
	}
	if view.PartySize <= 0 {
		view.PartySize = 1
	}
	view.Total = view.UnitPrice * int64(view.PartySize)

	if lookup != nil {
		if svc, ok := lookup(raw.ServiceID); ok {
			view.ServiceName = svc.Name
			view.Description = svc.Description
			view.Vertical = svc.Vertical
			view.City = svc.City
		}
	}
	return view
}

// recordFromJSON extracts a RawRecord from a backend reservation object,
// tolerating odd field types.
func recordFromJSON(res gjson.Result) RawRecord {
	return RawRecord{
		ID:        res.Get("id").String(),
		GuestName: res.Get("cliente").String(),
		ServiceID: res.Get("servicio_id").String(),
		StartAt:   res.Get("fecha_inicio").String(),
		EndAt:     res.Get("fecha_fin").String(),
		PartySize: int(res.Get("numero_personas").Int()),
		UnitPrice: res.Get("precio").Int(),
		RawStatus: res.Get("estado").String(),
		Notes:     res.Get("notas").String(),
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

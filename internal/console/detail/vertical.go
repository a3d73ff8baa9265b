// Package detail defines the vertical-specific attribute payload attached to a
// generic service record and the codec that moves it on and off the wire. The
// backend stores the payload as a JSON string discriminated by the service's
// vertical tag; this package turns that into a proper tagged union.
package detail

import "strings"

// Vertical identifies the business category of a service. The constants carry
// the exact tags the backend uses on the wire.
type Vertical string

const (
	VerticalLodging    Vertical = "hotel"
	VerticalDining     Vertical = "restaurante"
	VerticalExperience Vertical = "tour"
)

// Valid reports whether v is one of the three known verticals.
func (v Vertical) Valid() bool {
	switch v {
	case VerticalLodging, VerticalDining, VerticalExperience:
		return true
	default:
		return false
	}
}

func (v Vertical) String() string {
	return string(v)
}

// ParseVertical resolves a raw tag to a Vertical, case-insensitively.
// Returns false for anything outside the known set.
func ParseVertical(s string) (Vertical, bool) {
	v := Vertical(strings.ToLower(strings.TrimSpace(s)))
	if v.Valid() {
		return v, true
	}
	return "", false
}

// Verticals returns all known verticals in display order.
func Verticals() []Vertical {
	return []Vertical{VerticalLodging, VerticalDining, VerticalExperience}
}

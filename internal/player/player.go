package player

import (
	"fmt"
	"math"
	"strconv"
)

const (
	UnknownPosition = "position unknown"
	UnknownHometown = "hometown unknown"
)

// Ref is a roster entry pointing at a player's profile page
type Ref struct {
	Name       string `json:"name"`
	ProfileURL string `json:"profile_url"`
}

// Coordinates is a resolved WGS 84 point
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether both values are finite and within real-world bounds.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) ||
		math.IsInf(c.Latitude, 0) || math.IsInf(c.Longitude, 0) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// String formats the point the way it appears in report lines
func (c Coordinates) String() string {
	return fmt.Sprintf("(%s, %s)",
		strconv.FormatFloat(c.Latitude, 'f', -1, 64),
		strconv.FormatFloat(c.Longitude, 'f', -1, 64))
}

// Record is the extracted and resolved data for one player.
// Position and HometownRaw are empty when the profile had no such field.
// Location is nil unless the hometown geocoded; it is never half set.
type Record struct {
	Name               string       `json:"name"`
	Position           string       `json:"position,omitempty"`
	HometownRaw        string       `json:"hometown_raw,omitempty"`
	HometownNormalized string       `json:"hometown_normalized,omitempty"`
	Location           *Coordinates `json:"location,omitempty"`
}

// HasHometown reports whether a hometown was found on the profile page
func (r *Record) HasHometown() bool {
	return r.HometownRaw != ""
}

// Mappable reports whether the record can be plotted
func (r *Record) Mappable() bool {
	return r.Location != nil
}

// PositionLabel returns the position, or a placeholder when it is absent
func (r *Record) PositionLabel() string {
	if r.Position == "" {
		return UnknownPosition
	}
	return r.Position
}

// HometownLabel returns the hometown as sent to the geocoder, or a
// placeholder when none was found
func (r *Record) HometownLabel() string {
	if r.HometownNormalized != "" {
		return r.HometownNormalized
	}
	if r.HometownRaw != "" {
		return r.HometownRaw
	}
	return UnknownHometown
}

// Title is the marker caption used by the map renderers:
// "<name> (<position>) - <hometown>"
func (r *Record) Title() string {
	return fmt.Sprintf("%s (%s) - %s", r.Name, r.PositionLabel(), r.HometownLabel())
}

// Package render draws a team's mapped players as an HTML map and a KML file.
package render

import (
	geohash "github.com/TomiHiltunen/geohash-golang"

	"github.com/pfrederiksen/mlb-hometowns/internal/player"
)

// Marker is one plotted player
type Marker struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Title   string  `json:"title"`
	Geohash string  `json:"geohash"`
	Color   string  `json:"color"`
}

// Markers builds one marker per mapped player, in roster order. Players
// without coordinates are left out.
func Markers(result *player.TeamResult, color string) []Marker {
	mapped := result.Mapped()
	markers := make([]Marker, 0, len(mapped))
	for i := range mapped {
		loc := mapped[i].Location
		markers = append(markers, Marker{
			Lat:     loc.Latitude,
			Lng:     loc.Longitude,
			Title:   mapped[i].Title(),
			Geohash: geohash.Encode(loc.Latitude, loc.Longitude),
			Color:   color,
		})
	}
	return markers
}

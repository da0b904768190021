package render

import (
	"fmt"
	"io"

	kml "github.com/twpayne/go-kml/v3"
)

const (
	// IconHref is the pin drawn for every placemark
	IconHref = "http://maps.google.com/mapfiles/kml/paddle/grn-circle.png"

	// IconScale is the pin size relative to the default
	IconScale = 3

	playerStyleID = "player"
)

// WriteKML writes a KML document with one placemark per marker.
// Coordinates are written longitude first, as KML requires.
func WriteKML(w io.Writer, name string, markers []Marker) error {
	children := make([]kml.Element, 0, len(markers)+2)
	children = append(children,
		kml.Name(name),
		kml.SharedStyle(playerStyleID,
			kml.IconStyle(
				kml.Scale(IconScale),
				kml.Icon(kml.Href(IconHref)),
			),
		),
	)

	for _, m := range markers {
		children = append(children, kml.Placemark(
			kml.Name(m.Title),
			kml.StyleURL("#"+playerStyleID),
			kml.ExtendedData(
				kml.Data("geohash", kml.Value(m.Geohash)),
			),
			kml.Point(
				kml.Coordinates(kml.Coordinate{Lon: m.Lng, Lat: m.Lat}),
			),
		))
	}

	if err := kml.KML(kml.Document(children...)).WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("encoding kml: %w", err)
	}
	return nil
}

package render

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

const (
	// MapCenterLat and MapCenterLng put the Americas and the Caribbean in view
	MapCenterLat = 19.0
	MapCenterLng = -111.0
	MapZoom      = 3

	markersElementID = "player-markers"
	mapsScriptURL    = "https://maps.googleapis.com/maps/api/js"
)

const mapScript = `<script>
function initMap() {
  var data = JSON.parse(document.getElementById("` + markersElementID + `").textContent);
  var map = new google.maps.Map(document.getElementById("map_canvas"), {
    center: {lat: %g, lng: %g},
    zoom: %d
  });
  data.forEach(function (m) {
    new google.maps.Marker({
      position: {lat: m.lat, lng: m.lng},
      map: map,
      title: m.title,
      icon: {
        path: google.maps.SymbolPath.CIRCLE,
        scale: 6,
        fillColor: m.color,
        fillOpacity: 1,
        strokeColor: m.color
      }
    });
  });
}
</script>
`

// MapPage renders a standalone Google Maps page with one circle marker per
// player. apiKey may be empty; the map still loads in development mode.
func MapPage(title, apiKey string, markers []Marker) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
<meta name="viewport" content="initial-scale=1.0, user-scalable=no">
<meta http-equiv="content-type" content="text/html; charset=UTF-8">
<title>%s</title>
<style>html, body, #map_canvas { height: 100%%; margin: 0; padding: 0; }</style>
</head>
<body>
<div id="map_canvas"></div>
`, templ.EscapeString(title)); err != nil {
			return err
		}

		if markers == nil {
			markers = []Marker{}
		}
		if err := templ.JSONScript(markersElementID, markers).Render(ctx, w); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "\n"+mapScript, MapCenterLat, MapCenterLng, MapZoom); err != nil {
			return err
		}

		_, err := fmt.Fprintf(w, "<script async defer src=\"%s\"></script>\n</body>\n</html>\n",
			templ.EscapeString(mapsScriptSrc(apiKey)))
		return err
	})
}

func mapsScriptSrc(apiKey string) string {
	q := url.Values{}
	q.Set("callback", "initMap")
	if apiKey != "" {
		q.Set("key", apiKey)
	}
	return mapsScriptURL + "?" + q.Encode()
}

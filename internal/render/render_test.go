package render

import (
	"bytes"
	"context"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/mlb-hometowns/internal/player"
	"github.com/pfrederiksen/mlb-hometowns/internal/storage"
	"github.com/pfrederiksen/mlb-hometowns/internal/team"
)

func angelsResult() *player.TeamResult {
	result := player.NewTeamResult("angels", "Los Angeles Angels")
	result.RosterSize = 3
	result.Players = []player.Record{
		{
			Name:               "Mike Trout",
			Position:           "CF",
			HometownRaw:        "Vineland, NJ",
			HometownNormalized: "Vineland, New Jersey",
			Location:           &player.Coordinates{Latitude: 39.4863773, Longitude: -75.0259637},
		},
		{Name: "Jose Soriano", Position: "P"},
		{
			Name:               "Zach Neto",
			HometownRaw:        "Anaheim, CA",
			HometownNormalized: "Anaheim, California",
			Location:           &player.Coordinates{Latitude: 33.8347516, Longitude: -117.911732},
		},
	}
	result.NullHometowns = 1
	result.Finalize()
	return result
}

func TestMarkers(t *testing.T) {
	markers := Markers(angelsResult(), "#FF0000")

	require.Len(t, markers, 2)
	assert.Equal(t, "Mike Trout (CF) - Vineland, New Jersey", markers[0].Title)
	assert.Equal(t, 39.4863773, markers[0].Lat)
	assert.Equal(t, -75.0259637, markers[0].Lng)
	assert.True(t, strings.HasPrefix(markers[0].Geohash, "dr48ss"), "geohash %q", markers[0].Geohash)
	assert.Equal(t, "#FF0000", markers[0].Color)

	assert.Equal(t, "Zach Neto (position unknown) - Anaheim, California", markers[1].Title)
	assert.True(t, strings.HasPrefix(markers[1].Geohash, "9qh0kz"), "geohash %q", markers[1].Geohash)
}

func TestMarkers_NoneMapped(t *testing.T) {
	markers := Markers(player.NewTeamResult("angels", "Angels"), "#FF0000")
	assert.NotNil(t, markers)
	assert.Empty(t, markers)
}

func TestWriteKML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteKML(&buf, "Los Angeles Angels player hometowns", Markers(angelsResult(), "#FF0000")))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `<kml xmlns="http://www.opengis.net/kml/2.2"`)
	assert.Contains(t, out, "<href>"+IconHref+"</href>")
	assert.Contains(t, out, "<scale>3</scale>")

	var doc struct {
		Document struct {
			Name  string `xml:"name"`
			Style struct {
				ID string `xml:"id,attr"`
			} `xml:"Style"`
			Placemarks []struct {
				Name     string `xml:"name"`
				StyleURL string `xml:"styleUrl"`
				Data     []struct {
					Name  string `xml:"name,attr"`
					Value string `xml:"value"`
				} `xml:"ExtendedData>Data"`
				Coordinates string `xml:"Point>coordinates"`
			} `xml:"Placemark"`
		} `xml:"Document"`
	}
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Los Angeles Angels player hometowns", doc.Document.Name)
	assert.Equal(t, "player", doc.Document.Style.ID)
	require.Len(t, doc.Document.Placemarks, 2)

	trout := doc.Document.Placemarks[0]
	assert.Equal(t, "Mike Trout (CF) - Vineland, New Jersey", trout.Name)
	assert.Equal(t, "#player", trout.StyleURL)
	assert.Equal(t, "-75.0259637,39.4863773", strings.TrimSpace(trout.Coordinates))
	require.Len(t, trout.Data, 1)
	assert.Equal(t, "geohash", trout.Data[0].Name)
	assert.True(t, strings.HasPrefix(trout.Data[0].Value, "dr48ss"))

	assert.Equal(t, "-117.911732,33.8347516", strings.TrimSpace(doc.Document.Placemarks[1].Coordinates))
}

func TestWriteKML_EscapesNames(t *testing.T) {
	var buf bytes.Buffer
	markers := []Marker{{Lat: 1, Lng: 2, Title: "A & B <C>"}}
	require.NoError(t, WriteKML(&buf, "t", markers))

	assert.Contains(t, buf.String(), "A &amp; B &lt;C&gt;")
}

func TestMapPage(t *testing.T) {
	var buf bytes.Buffer
	markers := Markers(angelsResult(), "#FF0000")
	require.NoError(t, MapPage("Angels <hometowns>", "secret-key", markers).Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, "<title>Angels &lt;hometowns&gt;</title>")
	assert.Contains(t, out, `id="player-markers"`)
	assert.Contains(t, out, `"title":"Mike Trout (CF) - Vineland, New Jersey"`)
	assert.Contains(t, out, `"color":"#FF0000"`)
	assert.Contains(t, out, "center: {lat: 19, lng: -111}")
	assert.Contains(t, out, "zoom: 3")
	assert.Contains(t, out, "key=secret-key")
	assert.Contains(t, out, "google.maps.SymbolPath.CIRCLE")
}

func TestMapPage_NoKey(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MapPage("t", "", nil).Render(context.Background(), &buf))

	assert.NotContains(t, buf.String(), "key=")
	assert.Contains(t, buf.String(), "[]")
}

func TestRenderer_Render(t *testing.T) {
	store, err := storage.New(t.TempDir(), time.Date(2026, 4, 1, 9, 5, 0, 0, time.Local))
	require.NoError(t, err)
	angels, ok := team.Lookup("laa")
	require.True(t, ok)

	artifacts, err := New(store, "").Render(context.Background(), angels, angelsResult())
	require.NoError(t, err)

	assert.Equal(t, "MLB_player_hometowns_ANGELS_20260401_0905__1_missing.html", filepath.Base(artifacts.HTML))
	assert.Equal(t, "MLB_player_hometowns_ANGELS_20260401_0905__1_missing.kml", filepath.Base(artifacts.KML))

	html, err := os.ReadFile(artifacts.HTML)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Los Angeles Angels player hometowns")

	kml, err := os.ReadFile(artifacts.KML)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(kml), "<Placemark>"))
}

func TestRenderer_SkippedTeam(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.New(dir, time.Now())
	require.NoError(t, err)
	angels, _ := team.Lookup("laa")

	result := player.NewTeamResult("angels", "Los Angeles Angels")
	result.Skipped = true

	artifacts, err := New(store, "").Render(context.Background(), angels, result)
	require.NoError(t, err)
	assert.Equal(t, Artifacts{}, artifacts)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

package geocode

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dghubble/sling"
)

// NominatimClient queries an OpenStreetMap Nominatim search endpoint
type NominatimClient struct {
	sling *sling.Sling
}

type searchParams struct {
	Query  string `url:"q"`
	Format string `url:"format"`
	Limit  int    `url:"limit"`
}

// nominatimPlace is one search hit; Nominatim encodes coordinates as strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type nominatimError struct {
	Error interface{} `json:"error"`
}

// NewNominatimClient creates a client for the API at baseURL. Nominatim's
// usage policy requires an identifying User-Agent.
func NewNominatimClient(baseURL, userAgent string, httpClient *http.Client) *NominatimClient {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &NominatimClient{
		sling: sling.New().Client(httpClient).Base(baseURL).Set("User-Agent", userAgent),
	}
}

// Geocode returns the best match for query, or nil when there is none.
func (c *NominatimClient) Geocode(ctx context.Context, query string) (*Result, error) {
	req, err := c.sling.New().
		Get("search").
		QueryStruct(&searchParams{Query: query, Format: "json", Limit: 1}).
		Request()
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var places []nominatimPlace
	var apiErr nominatimError
	resp, err := c.sling.Do(req.WithContext(ctx), &places, &apiErr)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if apiErr.Error != nil {
			return nil, fmt.Errorf("geocoder returned status %d: %v", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	if len(places) == 0 {
		return nil, nil
	}

	best := places[0]
	lat, err := strconv.ParseFloat(strings.TrimSpace(best.Lat), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: latitude %q", ErrMalformed, best.Lat)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(best.Lon), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: longitude %q", ErrMalformed, best.Lon)
	}

	return &Result{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: best.DisplayName,
	}, nil
}

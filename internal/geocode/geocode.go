// Package geocode resolves hometown strings to coordinates.
//
// A Resolver wraps any Geocoder with a per-call timeout and folds every kind
// of failure (no match, malformed coordinates, transport error) into a
// single *ResolutionError that callers can test with errors.Is(err,
// ErrUnresolvable). Lookups are never retried.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/pfrederiksen/mlb-hometowns/internal/logger"
	"github.com/pfrederiksen/mlb-hometowns/internal/player"
)

const (
	DefaultTimeout = 10 * time.Second

	// coordinatePrecision keeps 7 decimal places, roughly 1.1 cm.
	coordinatePrecision = 1e7
)

// Result is a single geocoder match
type Result struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// Geocoder looks up a free-text place name. A nil Result with a nil error
// means the service had no match.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Result, error)
}

var (
	// ErrUnresolvable matches every *ResolutionError.
	ErrUnresolvable = errors.New("place could not be geocoded")

	// ErrMalformed is wrapped when the service answers with unusable coordinates.
	ErrMalformed = errors.New("malformed coordinates")

	errNoResult = errors.New("no result")
)

// ResolutionError describes a failed lookup
type ResolutionError struct {
	Place string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("geocoding %q: %v", e.Place, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Is reports ErrUnresolvable for every resolution failure.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrUnresolvable
}

// Resolver turns place names into rounded coordinates
type Resolver struct {
	geocoder Geocoder
	timeout  time.Duration
}

// NewResolver wraps a Geocoder. A non-positive timeout uses DefaultTimeout.
func NewResolver(g Geocoder, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{
		geocoder: g,
		timeout:  timeout,
	}
}

// Resolve makes one geocoder call for place. On success both coordinates
// are finite, in range, and rounded to 7 decimal places.
func (r *Resolver) Resolve(ctx context.Context, place string) (player.Coordinates, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	res, err := r.geocoder.Geocode(ctx, place)
	logger.RecordTiming("geocode.lookup", time.Since(start))

	if err != nil {
		return player.Coordinates{}, r.fail(place, err)
	}
	if res == nil {
		return player.Coordinates{}, r.fail(place, errNoResult)
	}

	coords := player.Coordinates{
		Latitude:  round(res.Latitude),
		Longitude: round(res.Longitude),
	}
	if !coords.Valid() {
		return player.Coordinates{}, r.fail(place,
			fmt.Errorf("%w: (%v, %v)", ErrMalformed, res.Latitude, res.Longitude))
	}

	return coords, nil
}

func (r *Resolver) fail(place string, err error) error {
	logger.IncrCounter("geocode.failures")
	return &ResolutionError{Place: place, Err: err}
}

func round(v float64) float64 {
	return math.Round(v*coordinatePrecision) / coordinatePrecision
}

package geocode

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"

	"github.com/pfrederiksen/mlb-hometowns/internal/logger"
)

// DefaultCacheTTL matches how long a hometown lookup is trusted
const DefaultCacheTTL = 7 * 24 * time.Hour

// Cache stores geocoder answers in a sqlite file, keyed by the exact query.
// "No match" answers are stored too so repeat misses skip the network.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// OpenCache opens (or creates) the cache database at path. ":memory:" gives
// a throwaway cache.
func OpenCache(path string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening geocode cache: %w", err)
	}
	// One connection: each ":memory:" connection would be its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
    CREATE TABLE IF NOT EXISTS geocode_cache (
        query        TEXT PRIMARY KEY,
        found        INTEGER NOT NULL,
        latitude     REAL,
        longitude    REAL,
        display_name TEXT,
        cached_at    INTEGER NOT NULL
    );`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating geocode cache table: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &Cache{
		db:  db,
		ttl: ttl,
		now: time.Now,
	}, nil
}

// Close closes the underlying database
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached answer for query. found is false on a miss or an
// expired entry; a hit with a nil Result is a cached "no match".
func (c *Cache) Get(ctx context.Context, query string) (res *Result, found bool, err error) {
	var (
		matched     bool
		lat, lon    sql.NullFloat64
		displayName sql.NullString
		cachedAt    int64
	)

	row := c.db.QueryRowContext(ctx,
		`SELECT found, latitude, longitude, display_name, cached_at FROM geocode_cache WHERE query = ?`, query)
	if err := row.Scan(&matched, &lat, &lon, &displayName, &cachedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading geocode cache: %w", err)
	}

	if c.now().Sub(time.Unix(cachedAt, 0)) > c.ttl {
		if _, err := c.db.ExecContext(ctx, `DELETE FROM geocode_cache WHERE query = ?`, query); err != nil {
			return nil, false, fmt.Errorf("expiring geocode cache entry: %w", err)
		}
		return nil, false, nil
	}

	if !matched {
		return nil, true, nil
	}

	return &Result{
		Latitude:    lat.Float64,
		Longitude:   lon.Float64,
		DisplayName: displayName.String,
	}, true, nil
}

// Put stores an answer; a nil res records "no match".
func (c *Cache) Put(ctx context.Context, query string, res *Result) error {
	var (
		lat, lon    sql.NullFloat64
		displayName sql.NullString
	)
	if res != nil {
		lat = sql.NullFloat64{Float64: res.Latitude, Valid: true}
		lon = sql.NullFloat64{Float64: res.Longitude, Valid: true}
		displayName = sql.NullString{String: res.DisplayName, Valid: true}
	}

	_, err := c.db.ExecContext(ctx, `
        INSERT OR REPLACE INTO geocode_cache (query, found, latitude, longitude, display_name, cached_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		query, res != nil, lat, lon, displayName, c.now().Unix())
	if err != nil {
		return fmt.Errorf("writing geocode cache: %w", err)
	}
	return nil
}

// Size returns the number of stored entries
func (c *Cache) Size(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM geocode_cache`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting geocode cache: %w", err)
	}
	return n, nil
}

// CachedGeocoder answers from a Cache before calling the wrapped Geocoder.
// Errors from the wrapped Geocoder are never cached.
type CachedGeocoder struct {
	inner Geocoder
	cache *Cache
}

// NewCachedGeocoder wraps inner with cache
func NewCachedGeocoder(inner Geocoder, cache *Cache) *CachedGeocoder {
	return &CachedGeocoder{
		inner: inner,
		cache: cache,
	}
}

func (g *CachedGeocoder) Geocode(ctx context.Context, query string) (*Result, error) {
	res, found, err := g.cache.Get(ctx, query)
	if err != nil {
		logger.Warn("geocode cache read failed", logger.Fields{"place": query, "error": err.Error()})
	} else if found {
		logger.IncrCounter("geocode.cache_hits")
		return res, nil
	}

	res, err = g.inner.Geocode(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := g.cache.Put(ctx, query, res); err != nil {
		logger.Warn("geocode cache write failed", logger.Fields{"place": query, "error": err.Error()})
	}
	return res, nil
}

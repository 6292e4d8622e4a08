package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lintang-b-s/routefinder/pkg/geo"
	"go.uber.org/zap"
)

const (
	createGeocodeCacheTable = `
		CREATE TABLE IF NOT EXISTS geocode_cache (
			address    TEXT PRIMARY KEY,
			latitude   DOUBLE PRECISION NOT NULL,
			longitude  DOUBLE PRECISION NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		);
	`

	selectGeocode = `
		SELECT latitude, longitude
		FROM geocode_cache
		WHERE address = $1 AND expires_at > now();
	`

	upsertGeocode = `
		INSERT INTO geocode_cache (address, latitude, longitude, expires_at)
		VALUES ($1, $2, $3, now() + make_interval(secs => $4))
		ON CONFLICT (address) DO UPDATE
		SET latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			expires_at = EXCLUDED.expires_at;
	`
)

// GeocodeCache keeps resolved addresses in postgres, entries expire after ttl.
type GeocodeCache struct {
	db  Database
	log *zap.Logger
	ttl time.Duration
}

func NewGeocodeCache(db Database, ttl time.Duration, log *zap.Logger) *GeocodeCache {
	return &GeocodeCache{db: db, ttl: ttl, log: log}
}

func (c *GeocodeCache) Migrate(ctx context.Context) error {
	if _, err := c.db.Exec(ctx, createGeocodeCacheTable); err != nil {
		return fmt.Errorf("failed to create geocode_cache table: %w", err)
	}
	return nil
}

func (c *GeocodeCache) Get(ctx context.Context, address string) (*geo.Coordinate, bool, error) {
	var lat, lon float64
	err := c.db.QueryRow(ctx, selectGeocode, address).Scan(&lat, &lon)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query geocode cache: %w", err)
	}

	coord := geo.NewCoordinate(lat, lon)
	return &coord, true, nil
}

func (c *GeocodeCache) Put(ctx context.Context, address string, coord geo.Coordinate) error {
	_, err := c.db.Exec(ctx, upsertGeocode, address, coord.Lat, coord.Lon, c.ttl.Seconds())
	if err != nil {
		return fmt.Errorf("failed to store geocode cache entry: %w", err)
	}
	c.log.Debug("geocode cached", zap.String("address", address))
	return nil
}

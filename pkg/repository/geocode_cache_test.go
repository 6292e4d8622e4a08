package repository_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lintang-b-s/routefinder/pkg/geo"
	"github.com/lintang-b-s/routefinder/pkg/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	selectGeocodeQuery = `SELECT latitude, longitude FROM geocode_cache WHERE address = $1 AND expires_at > now();`
	upsertGeocodeQuery = `INSERT INTO geocode_cache (address, latitude, longitude, expires_at)`
)

func newCache(t *testing.T) (*repository.GeocodeCache, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherFunc(whitespaceInsensitive)))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return repository.NewGeocodeCache(mock, 24*time.Hour, zap.NewNop()), mock
}

// whitespaceInsensitive matches when the expected sql, whitespace collapsed, occurs in the actual sql.
func whitespaceInsensitive(expectedSQL, actualSQL string) error {
	collapse := regexp.MustCompile(`\s+`)
	expected := collapse.ReplaceAllString(expectedSQL, " ")
	actual := collapse.ReplaceAllString(actualSQL, " ")
	if !regexp.MustCompile(regexp.QuoteMeta(expected)).MatchString(actual) {
		return assert.AnError
	}
	return nil
}

func TestGeocodeCacheGet(t *testing.T) {
	ctx := t.Context()

	t.Run("hit", func(t *testing.T) {
		cache, mock := newCache(t)
		mock.ExpectQuery(selectGeocodeQuery).
			WithArgs("markt 1, aachen").
			WillReturnRows(pgxmock.NewRows([]string{"latitude", "longitude"}).AddRow(50.7762, 6.0838))

		coord, ok, err := cache.Get(ctx, "markt 1, aachen")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, geo.NewCoordinate(50.7762, 6.0838), *coord)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss", func(t *testing.T) {
		cache, mock := newCache(t)
		mock.ExpectQuery(selectGeocodeQuery).
			WithArgs("nosuchplace12345xyz").
			WillReturnError(pgx.ErrNoRows)

		coord, ok, err := cache.Get(ctx, "nosuchplace12345xyz")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, coord)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		cache, mock := newCache(t)
		mock.ExpectQuery(selectGeocodeQuery).
			WithArgs("markt 1, aachen").
			WillReturnError(assert.AnError)

		_, ok, err := cache.Get(ctx, "markt 1, aachen")
		require.ErrorIs(t, err, assert.AnError)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGeocodeCachePut(t *testing.T) {
	ctx := t.Context()

	t.Run("success", func(t *testing.T) {
		cache, mock := newCache(t)
		mock.ExpectExec(upsertGeocodeQuery).
			WithArgs("markt 1, aachen", 50.7762, 6.0838, float64(86400)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, cache.Put(ctx, "markt 1, aachen", geo.NewCoordinate(50.7762, 6.0838)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error", func(t *testing.T) {
		cache, mock := newCache(t)
		mock.ExpectExec(upsertGeocodeQuery).
			WithArgs("markt 1, aachen", 50.7762, 6.0838, float64(86400)).
			WillReturnError(assert.AnError)

		err := cache.Put(ctx, "markt 1, aachen", geo.NewCoordinate(50.7762, 6.0838))
		require.ErrorIs(t, err, assert.AnError)
		assert.ErrorContains(t, err, "failed to store geocode cache entry")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGeocodeCacheMigrate(t *testing.T) {
	cache, mock := newCache(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS geocode_cache`).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, cache.Migrate(t.Context()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/verbumdei/lectio/internal/liturgy"
)

func TestPostgresPutUpsertsRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewPostgresWithPool(mock, "lectio_readings")
	require.NoError(t, err)

	value := sampleReadings()
	payload, err := json.Marshal(value)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO lectio_readings").
		WithArgs("readings:121525", payload).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.Put(context.Background(), "121525", value))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetHit(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewPostgresWithPool(mock, "lectio_readings")
	require.NoError(t, err)

	payload, err := json.Marshal(sampleReadings())
	require.NoError(t, err)

	mock.ExpectQuery("SELECT payload FROM lectio_readings").
		WithArgs("readings:121525").
		WillReturnRows(pgxmock.NewRows([]string{"payload"}).AddRow(payload))

	got, ok, err := store.Get(context.Background(), "121525")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "187", got.Lectionary)
	require.Equal(t, liturgy.SeasonAdvent, got.Season)
	require.Len(t, got.Readings, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetMiss(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewPostgresWithPool(mock, "lectio_readings")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT payload FROM lectio_readings").
		WithArgs("readings:121525").
		WillReturnError(errors.New("no rows in result set"))

	_, _, err = store.Get(context.Background(), "121525")
	require.Error(t, err)
}

func TestPostgresGetNoRowsIsMiss(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewPostgresWithPool(mock, "lectio_readings")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT payload FROM lectio_readings").
		WithArgs("readings:121525").
		WillReturnRows(pgxmock.NewRows([]string{"payload"}))

	_, ok, err := store.Get(context.Background(), "121525")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRejectsBadTableName(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = NewPostgresWithPool(mock, "lectio; DROP TABLE readings")
	require.Error(t, err)
}

package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minaret-app/minaret/internal/cache"
	"github.com/minaret-app/minaret/internal/model"
	"github.com/minaret-app/minaret/internal/prayer"
	"github.com/minaret-app/minaret/internal/redis"
)

func newMockStore(t *testing.T) (*pgStore, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return &pgStore{db: sqlx.NewDb(mockDB, "sqlmock")}, mock
}

func startCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	redis.Init(mr.Addr(), "", "")
	return mr
}

func dayRows(dateKey, completed string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_id", "date_key", "completed"}).
		AddRow(1, dateKey, []byte(completed))
}

func TestGetPrayerDay_ReadThroughCache(t *testing.T) {
	startCache(t)
	store, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT user_id, date_key, completed FROM prayer_days").
		WithArgs(1, "2024-03-13").
		WillReturnRows(dayRows("2024-03-13", "{fajr}"))

	first, err := store.GetPrayerDay(ctx, 1, "2024-03-13")
	require.NoError(t, err)
	assert.True(t, first.Has("fajr"))

	// second read is served from the cache: no further query expected
	second, err := store.GetPrayerDay(ctx, 1, "2024-03-13")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPrayerDay_NoRowsIsEmptyRecord(t *testing.T) {
	startCache(t)
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT user_id, date_key, completed FROM prayer_days").
		WithArgs(1, "2024-03-13").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "date_key", "completed"}))

	day, err := store.GetPrayerDay(context.Background(), 1, "2024-03-13")
	require.NoError(t, err)
	assert.Empty(t, day.Completed)
	assert.Equal(t, "2024-03-13", day.DateKey)
}

func TestGetPrayerDay_ReadFailure(t *testing.T) {
	startCache(t)
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT user_id, date_key, completed FROM prayer_days").
		WithArgs(1, "2024-03-13").
		WillReturnError(errors.New("connection reset"))

	_, err := store.GetPrayerDay(context.Background(), 1, "2024-03-13")
	assert.ErrorIs(t, err, prayer.ErrPersistenceRead)
}

// A successful write drops the cached day instead of re-setting it.
// Concurrent writers serialize on the row but not on the cache, so a
// slower writer re-caching its older record would shadow the newer row
// until the TTL expired; invalidation forces the next read to the row.
func TestSetPrayerCompletion_SuccessfulWriteDropsCachedDay(t *testing.T) {
	mr := startCache(t)
	store, mock := newMockStore(t)
	ctx := context.Background()

	// cache holds the older record, as left behind by a slower writer
	cache.SetPrayerDay(ctx, model.PrayerDay{UserID: 1, DateKey: "2024-03-13", Completed: []string{"asr"}})
	require.NotEmpty(t, mr.Keys())

	mock.ExpectQuery("INSERT INTO prayer_days").
		WithArgs(1, "2024-03-13", "isha", true).
		WillReturnRows(dayRows("2024-03-13", "{asr,isha}"))

	day, err := store.SetPrayerCompletion(ctx, 1, "2024-03-13", "isha", true)
	require.NoError(t, err)
	assert.True(t, day.Has("asr"))
	assert.True(t, day.Has("isha"))

	assert.Empty(t, mr.Keys())

	// the next read repopulates from the durable row, not the stale copy
	mock.ExpectQuery("SELECT user_id, date_key, completed FROM prayer_days").
		WithArgs(1, "2024-03-13").
		WillReturnRows(dayRows("2024-03-13", "{asr,isha}"))

	got, err := store.GetPrayerDay(ctx, 1, "2024-03-13")
	require.NoError(t, err)
	assert.True(t, got.Has("isha"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPrayerCompletion_WriteFailureDropsCachedDay(t *testing.T) {
	mr := startCache(t)
	store, mock := newMockStore(t)
	ctx := context.Background()

	cache.SetPrayerDay(ctx, model.PrayerDay{UserID: 1, DateKey: "2024-03-13", Completed: []string{"asr"}})
	require.NotEmpty(t, mr.Keys())

	mock.ExpectQuery("INSERT INTO prayer_days").
		WithArgs(1, "2024-03-13", "isha", true).
		WillReturnError(errors.New("connection reset"))

	_, err := store.SetPrayerCompletion(ctx, 1, "2024-03-13", "isha", true)
	assert.ErrorIs(t, err, prayer.ErrPersistenceWrite)

	// the optimistic copy must not outlive the failed write
	assert.Empty(t, mr.Keys())
}

func TestListPrayerDays(t *testing.T) {
	startCache(t)
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"user_id", "date_key", "completed"}).
		AddRow(1, "2024-03-13", []byte("{fajr}")).
		AddRow(1, "2024-03-14", []byte("{fajr,isha}"))
	mock.ExpectQuery("SELECT user_id, date_key, completed FROM prayer_days").
		WithArgs(1, "2024-03-01", "2024-03-31").
		WillReturnRows(rows)

	days, err := store.ListPrayerDays(context.Background(), 1, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.True(t, days[1].Has("isha"))
}

package endpoints_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minaret-app/minaret/internal/db"
	"github.com/minaret-app/minaret/internal/http/api"
	"github.com/minaret-app/minaret/internal/http/api/prayer/endpoints"
	"github.com/minaret-app/minaret/internal/model"
	"github.com/minaret-app/minaret/internal/prayer"
)

type fixedSource struct {
	timings prayer.Timings
	err     error
}

func (s fixedSource) Timings(context.Context, float64, float64, time.Time) (prayer.Timings, error) {
	return s.timings, s.err
}

type memLedger struct {
	mu   sync.Mutex
	sets map[string]map[string]bool
}

func newMemLedger() *memLedger { return &memLedger{sets: make(map[string]map[string]bool)} }

func (m *memLedger) GetPrayerDay(_ context.Context, userID int, dateKey string) (model.PrayerDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	day := model.PrayerDay{UserID: userID, DateKey: dateKey, Completed: []string{}}
	for id := range m.sets[dateKey] {
		day.Completed = append(day.Completed, id)
	}
	return day, nil
}

func (m *memLedger) SetPrayerCompletion(_ context.Context, userID int, dateKey, prayerID string, completed bool) (model.PrayerDay, error) {
	m.mu.Lock()
	if m.sets[dateKey] == nil {
		m.sets[dateKey] = make(map[string]bool)
	}
	if completed {
		m.sets[dateKey][prayerID] = true
	} else {
		delete(m.sets[dateKey], prayerID)
	}
	m.mu.Unlock()
	return m.GetPrayerDay(context.Background(), userID, dateKey)
}

// stubStore satisfies db.Store for the handful of calls the prayer
// module makes; everything else is unreachable in these tests.
type stubStore struct {
	db.Store
	days []model.PrayerDay
}

func (s stubStore) ListPrayerDays(context.Context, int, string, string) ([]model.PrayerDay, error) {
	return s.days, nil
}

func injectUser(user *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("currentUser", user)
		c.Next()
	}
}

func setupRouter(t *testing.T, source prayer.TimingsSource, ledger prayer.CompletionStore, store db.Store, authed bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tracker := prayer.NewTracker(prayer.NewScheduler(source), ledger)

	r := gin.New()
	cfg := api.GroupConfig{Prefix: "/api"}
	if authed {
		name := "Test User"
		cfg.Middleware = []gin.HandlerFunc{injectUser(&model.User{ID: 1, Email: "test@example.com", Name: &name})}
	}
	api.MountGroup(r, cfg, endpoints.PrayerModule(tracker, store))
	return r
}

func goodSource() fixedSource {
	return fixedSource{timings: prayer.Timings{
		Fajr: "05:12", Dhuhr: "12:58", Asr: "16:31", Maghrib: "19:45", Isha: "21:15",
	}}
}

func TestToday_RequiresAuth(t *testing.T) {
	r := setupRouter(t, goodSource(), newMemLedger(), stubStore{}, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/prayer/today?lat=51.5&lng=-0.12", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestToday_MissingCoordinates(t *testing.T) {
	r := setupRouter(t, goodSource(), newMemLedger(), stubStore{}, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/prayer/today", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToday_OutOfRangeOffsetRejected(t *testing.T) {
	r := setupRouter(t, goodSource(), newMemLedger(), stubStore{}, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/prayer/today?lat=51.5&lng=-0.12&tz_offset=9999", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToday_ReturnsView(t *testing.T) {
	r := setupRouter(t, goodSource(), newMemLedger(), stubStore{}, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/prayer/today?lat=51.5074&lng=-0.1278", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var view prayer.TrackerView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.False(t, view.Degraded)
	assert.Equal(t, 5, view.TotalCount)
	assert.Equal(t, 0, view.CompletedCount)
}

func TestToday_DegradedWhenSourceDown(t *testing.T) {
	r := setupRouter(t, fixedSource{err: errors.New("dns failure")}, newMemLedger(), stubStore{}, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/prayer/today?lat=51.5074&lng=-0.1278", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var view prayer.TrackerView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.True(t, view.Degraded)
	assert.NotEmpty(t, view.Prayers)
}

func TestToday_InvalidCoordinates(t *testing.T) {
	r := setupRouter(t, goodSource(), newMemLedger(), stubStore{}, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/prayer/today?lat=120&lng=0", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTrack_ToggleRoundTrip(t *testing.T) {
	r := setupRouter(t, goodSource(), newMemLedger(), stubStore{}, true)

	track := func() prayer.TrackerView {
		body, _ := json.Marshal(map[string]any{"prayer_id": "fajr"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/prayer/track", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var view prayer.TrackerView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		return view
	}

	assert.Equal(t, 1, track().CompletedCount)
	assert.Equal(t, 0, track().CompletedCount)
}

func TestTrack_ExplicitCompletedIsIdempotent(t *testing.T) {
	r := setupRouter(t, goodSource(), newMemLedger(), stubStore{}, true)

	set := func() prayer.TrackerView {
		body, _ := json.Marshal(map[string]any{"prayer_id": "asr", "completed": true})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/prayer/track", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var view prayer.TrackerView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		return view
	}

	assert.Equal(t, 1, set().CompletedCount)
	assert.Equal(t, 1, set().CompletedCount)
}

func TestQibla(t *testing.T) {
	r := setupRouter(t, goodSource(), newMemLedger(), stubStore{}, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/prayer/qibla?lat=51.5074&lng=-0.1278", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Direction float64 `json:"direction"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 119, resp.Direction, 1.5)
}

func TestHistory(t *testing.T) {
	store := stubStore{days: []model.PrayerDay{
		{UserID: 1, DateKey: "2024-03-14", Completed: []string{"fajr", "isha"}},
		{UserID: 1, DateKey: "2024-03-15", Completed: []string{"fajr"}},
	}}
	r := setupRouter(t, goodSource(), newMemLedger(), store, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/prayer/history?from=2024-03-01&to=2024-03-31", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Days []model.PrayerDay `json:"days"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Days, 2)
}

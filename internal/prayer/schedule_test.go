package prayer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var londonTimings = Timings{
	Fajr:    "05:12",
	Dhuhr:   "12:58",
	Asr:     "16:31",
	Maghrib: "19:45",
	Isha:    "21:15",
}

type stubSource struct {
	timings Timings
	err     error
}

func (s stubSource) Timings(context.Context, float64, float64, time.Time) (Timings, error) {
	return s.timings, s.err
}

func dayAt(t *testing.T, date string, clock string) time.Time {
	t.Helper()
	at, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	require.NoError(t, err)
	return at
}

// Wednesday afternoon in London: Dhuhr has passed, Asr is next, no Jumuah.
func TestDeriveSchedule_Weekday(t *testing.T) {
	s := NewScheduler(stubSource{timings: londonTimings})
	wednesday := dayAt(t, "2024-03-13", "00:00")
	now := dayAt(t, "2024-03-13", "13:00")

	windows, err := s.DeriveSchedule(context.Background(), 51.5074, -0.1278, wednesday, now)
	require.NoError(t, err)
	require.Len(t, windows, 5)

	byID := map[string]Window{}
	for _, w := range windows {
		assert.NotContains(t, byID, w.ID, "ids must be unique")
		byID[w.ID] = w
	}
	assert.NotContains(t, byID, Jumuah)

	assert.True(t, byID[Fajr].HasPassed)
	assert.True(t, byID[Dhuhr].HasPassed)
	assert.False(t, byID[Asr].HasPassed)
	assert.True(t, byID[Asr].IsNext)
	assert.False(t, byID[Maghrib].IsNext)

	for i := 1; i < len(windows); i++ {
		assert.False(t, windows[i].ScheduledTime.Before(windows[i-1].ScheduledTime),
			"windows must be sorted ascending")
	}
}

// Friday gets a Jumuah window pinned between Dhuhr and Asr.
func TestDeriveSchedule_FridayJumuah(t *testing.T) {
	s := NewScheduler(stubSource{timings: londonTimings})
	friday := dayAt(t, "2024-03-15", "00:00")
	now := dayAt(t, "2024-03-15", "06:00")

	windows, err := s.DeriveSchedule(context.Background(), 51.5074, -0.1278, friday, now)
	require.NoError(t, err)
	require.Len(t, windows, 6)

	ids := make([]string, 0, len(windows))
	for _, w := range windows {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []string{Fajr, Dhuhr, Jumuah, Asr, Maghrib, Isha}, ids)
}

// Jumuah keeps its slot after Dhuhr even when its configured clock time
// would sort later than Asr.
func TestDeriveSchedule_JumuahPositionPinned(t *testing.T) {
	s := NewScheduler(stubSource{timings: londonTimings})
	s.JumuahTime = "17:00"
	friday := dayAt(t, "2024-03-15", "00:00")

	windows, err := s.DeriveSchedule(context.Background(), 51.5074, -0.1278, friday, friday)
	require.NoError(t, err)

	ids := make([]string, 0, len(windows))
	for _, w := range windows {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []string{Fajr, Dhuhr, Jumuah, Asr, Maghrib, Isha}, ids)
}

func TestDeriveSchedule_SingleNext(t *testing.T) {
	s := NewScheduler(stubSource{timings: londonTimings})
	day := dayAt(t, "2024-03-13", "00:00")

	for _, clock := range []string{"00:00", "05:12", "12:00", "16:31", "20:00", "23:59"} {
		now := dayAt(t, "2024-03-13", clock)
		windows, err := s.DeriveSchedule(context.Background(), 51.5074, -0.1278, day, now)
		require.NoError(t, err)

		nextCount := 0
		for _, w := range windows {
			if w.IsNext {
				nextCount++
				assert.False(t, w.HasPassed, "a next window cannot have passed")
			}
		}
		assert.LessOrEqual(t, nextCount, 1, "at most one next window at %s", clock)
	}
}

func TestDeriveSchedule_AllPassedNoNext(t *testing.T) {
	s := NewScheduler(stubSource{timings: londonTimings})
	day := dayAt(t, "2024-03-13", "00:00")
	now := dayAt(t, "2024-03-13", "23:30")

	windows, err := s.DeriveSchedule(context.Background(), 51.5074, -0.1278, day, now)
	require.NoError(t, err)

	for _, w := range windows {
		assert.True(t, w.HasPassed)
		assert.False(t, w.IsNext)
	}
}

func TestDeriveSchedule_InvalidCoordinates(t *testing.T) {
	s := NewScheduler(stubSource{timings: londonTimings})
	day := dayAt(t, "2024-03-13", "00:00")

	for _, c := range []struct{ lat, lng float64 }{
		{91, 0}, {-91, 0}, {0, 181}, {0, -181},
	} {
		_, err := s.DeriveSchedule(context.Background(), c.lat, c.lng, day, day)
		assert.ErrorIs(t, err, ErrInvalidCoordinates)
	}
}

func TestDeriveSchedule_SourceFailure(t *testing.T) {
	s := NewScheduler(stubSource{err: errors.New("connection refused")})
	day := dayAt(t, "2024-03-13", "00:00")

	_, err := s.DeriveSchedule(context.Background(), 51.5074, -0.1278, day, day)
	assert.ErrorIs(t, err, ErrScheduleUnavailable)
}

func TestDeriveSchedule_MalformedClock(t *testing.T) {
	bad := londonTimings
	bad.Maghrib = "7:45 pm"
	s := NewScheduler(stubSource{timings: bad})
	day := dayAt(t, "2024-03-13", "00:00")

	_, err := s.DeriveSchedule(context.Background(), 51.5074, -0.1278, day, day)
	assert.ErrorIs(t, err, ErrScheduleUnavailable)
}

func TestDefaultWindows(t *testing.T) {
	now := dayAt(t, "2024-03-13", "06:00")
	windows := DefaultWindows(now, now)

	require.Len(t, windows, 5)
	assert.True(t, windows[0].HasPassed, "05:30 fajr has passed at 06:00")
	assert.True(t, windows[1].IsNext)
}

package prayer

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Canonical prayer ids. Jumuah only appears on Fridays.
const (
	Fajr    = "fajr"
	Dhuhr   = "dhuhr"
	Asr     = "asr"
	Maghrib = "maghrib"
	Isha    = "isha"
	Jumuah  = "jumuah"
)

// Window is one named prayer occasion for a specific day and location.
type Window struct {
	ID            string    `json:"id"`
	DisplayName   string    `json:"name"`
	Time          string    `json:"time"` // "HH:MM" wall clock
	ScheduledTime time.Time `json:"-"`
	HasPassed     bool      `json:"is_passed"`
	IsNext        bool      `json:"is_next"`
}

// Timings is the raw daily time set from the external source,
// each value an "HH:MM" 24-hour string.
type Timings struct {
	Fajr    string
	Dhuhr   string
	Asr     string
	Maghrib string
	Isha    string
}

// TimingsSource computes the five canonical daily prayer times for a
// coordinate and date. Implementations must bound the call with a
// timeout and report failures so callers can fall back.
type TimingsSource interface {
	Timings(ctx context.Context, latitude, longitude float64, date time.Time) (Timings, error)
}

const defaultJumuahTime = "13:30"

// Scheduler derives a day's ordered prayer windows from a TimingsSource.
type Scheduler struct {
	Source TimingsSource

	// JumuahTime is the fixed congregational Friday prayer time.
	// Mosques publish this independently of the solar Dhuhr
	// computation, so it is a business rule rather than derived data.
	JumuahTime string
}

func NewScheduler(source TimingsSource) *Scheduler {
	return &Scheduler{Source: source, JumuahTime: defaultJumuahTime}
}

// DeriveSchedule returns the day's prayer windows sorted ascending by
// time, tagged with passed/next status relative to now. The now
// parameter is injectable so date-boundary behavior stays testable.
func (s *Scheduler) DeriveSchedule(ctx context.Context, latitude, longitude float64, date, now time.Time) ([]Window, error) {
	if err := ValidateCoordinates(latitude, longitude); err != nil {
		return nil, err
	}

	timings, err := s.Source.Timings(ctx, latitude, longitude, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScheduleUnavailable, err)
	}

	named := []struct {
		id, name, clock string
	}{
		{Fajr, "Fajr", timings.Fajr},
		{Dhuhr, "Dhuhr", timings.Dhuhr},
		{Asr, "Asr", timings.Asr},
		{Maghrib, "Maghrib", timings.Maghrib},
		{Isha, "Isha", timings.Isha},
	}

	windows := make([]Window, 0, len(named)+1)
	for _, n := range named {
		at, err := clockOnDay(n.clock, date)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrScheduleUnavailable, n.id, err)
		}
		windows = append(windows, Window{
			ID:            n.id,
			DisplayName:   n.name,
			Time:          n.clock,
			ScheduledTime: at,
		})
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].ScheduledTime.Before(windows[j].ScheduledTime)
	})

	if date.Weekday() == time.Friday {
		windows, err = s.insertJumuah(windows, date)
		if err != nil {
			return nil, err
		}
	}

	annotate(windows, now)
	return windows, nil
}

// insertJumuah places the Friday congregational window immediately
// after Dhuhr. The position is pinned between Dhuhr and Asr even when
// the configured Jumuah clock time would sort elsewhere.
func (s *Scheduler) insertJumuah(windows []Window, date time.Time) ([]Window, error) {
	clock := s.JumuahTime
	if clock == "" {
		clock = defaultJumuahTime
	}
	at, err := clockOnDay(clock, date)
	if err != nil {
		return nil, fmt.Errorf("%w: jumuah: %v", ErrScheduleUnavailable, err)
	}
	jumuah := Window{ID: Jumuah, DisplayName: "Jumuah", Time: clock, ScheduledTime: at}

	out := make([]Window, 0, len(windows)+1)
	for _, w := range windows {
		out = append(out, w)
		if w.ID == Dhuhr {
			out = append(out, jumuah)
		}
	}
	return out, nil
}

// annotate tags HasPassed on every window and IsNext on exactly the
// first window that has not passed. If all have passed, none is next.
func annotate(windows []Window, now time.Time) {
	nextFound := false
	for i := range windows {
		windows[i].HasPassed = windows[i].ScheduledTime.Before(now)
		windows[i].IsNext = !nextFound && !windows[i].HasPassed
		if windows[i].IsNext {
			nextFound = true
		}
	}
}

// clockOnDay parses an "HH:MM" string into a timestamp on the given
// day, in the day's location.
func clockOnDay(clock string, day time.Time) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad clock value %q", clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), nil
}

// ValidateCoordinates rejects latitudes outside -90..90 and longitudes
// outside -180..180.
func ValidateCoordinates(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return fmt.Errorf("%w: lat=%v lng=%v", ErrInvalidCoordinates, latitude, longitude)
	}
	return nil
}

package prayer

import "time"

// fallbackTimes are the estimated schedule shown when the external
// timings source is unreachable. The UI labels these as estimates.
var fallbackTimes = []struct {
	id, name, clock string
}{
	{Fajr, "Fajr", "05:30"},
	{Dhuhr, "Dhuhr", "13:00"},
	{Asr, "Asr", "16:30"},
	{Maghrib, "Maghrib", "19:45"},
	{Isha, "Isha", "21:15"},
}

// DefaultWindows builds the static estimated schedule for the given
// day, tagged against now. Passed/next flags are approximate since no
// location-specific computation backs them.
func DefaultWindows(date, now time.Time) []Window {
	windows := make([]Window, 0, len(fallbackTimes))
	for _, f := range fallbackTimes {
		at, err := clockOnDay(f.clock, date)
		if err != nil {
			// the table above is static and well-formed
			continue
		}
		windows = append(windows, Window{
			ID:            f.id,
			DisplayName:   f.name,
			Time:          f.clock,
			ScheduledTime: at,
		})
	}
	annotate(windows, now)
	return windows
}

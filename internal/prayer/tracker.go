package prayer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/minaret-app/minaret/internal/model"
)

const dateKeyLayout = "2006-01-02"

// CompletionStore is the durable per-day completion ledger.
type CompletionStore interface {
	// GetPrayerDay returns the day's record, or an empty record if none
	// exists yet; absence is not an error. Read failures must surface
	// as ErrPersistenceRead, never as an empty record.
	GetPrayerDay(ctx context.Context, userID int, dateKey string) (model.PrayerDay, error)

	// SetPrayerCompletion idempotently adds or removes a prayer id from
	// the day's set. Concurrent writes for the same (user, day) must
	// serialize without losing either update.
	SetPrayerCompletion(ctx context.Context, userID int, dateKey, prayerID string, completed bool) (model.PrayerDay, error)
}

// Publisher fans a tracker update out to the user's other sessions.
type Publisher interface {
	PublishTrackerUpdate(userID int, view TrackerView)
}

// TrackedWindow is a schedule window merged with completion state.
type TrackedWindow struct {
	Window
	Completed bool `json:"completed"`
}

// TrackerView is the read-through projection the UI renders. It owns no
// state and is rebuilt whenever the schedule or ledger changes.
type TrackerView struct {
	DateKey         string          `json:"date_key"`
	Prayers         []TrackedWindow `json:"prayers"`
	CompletedCount  int             `json:"completed_count"`
	TotalCount      int             `json:"total_count"`
	ProgressPercent float64         `json:"progress_percent"`
	Degraded        bool            `json:"degraded"`
}

type daySchedule struct {
	dateKey  string
	windows  []Window
	degraded bool
}

// Tracker merges derived schedules with the completion ledger and
// exposes the load/toggle verbs the endpoints use.
type Tracker struct {
	Schedules *Scheduler
	Store     CompletionStore
	Events    Publisher

	// Clock is injectable for deterministic tests across midnight.
	Clock func() time.Time

	mu   sync.Mutex
	days map[int]daySchedule // last derived schedule per user
}

func NewTracker(schedules *Scheduler, store CompletionStore) *Tracker {
	return &Tracker{
		Schedules: schedules,
		Store:     store,
		Clock:     time.Now,
		days:      make(map[int]daySchedule),
	}
}

// LoadToday derives today's schedule, merges the user's ledger, and
// returns the view. A failing timings source degrades to the static
// estimated schedule with Degraded set; a failing ledger read is an
// error, never silently treated as "nothing completed".
// tzOffsetMinutes is the device's offset east of UTC; the day boundary
// follows the device, not the server.
func (t *Tracker) LoadToday(ctx context.Context, userID int, latitude, longitude float64, tzOffsetMinutes int) (TrackerView, error) {
	now := t.localNow(tzOffsetMinutes)
	dateKey := now.Format(dateKeyLayout)

	windows, err := t.Schedules.DeriveSchedule(ctx, latitude, longitude, now, now)
	degraded := false
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidCoordinates):
		return TrackerView{}, err
	default:
		log.Warn().Err(err).Int("user_id", userID).Msg("using estimated prayer times")
		windows = DefaultWindows(now, now)
		degraded = true
	}

	t.mu.Lock()
	t.days[userID] = daySchedule{dateKey: dateKey, windows: windows, degraded: degraded}
	t.mu.Unlock()

	record, err := t.Store.GetPrayerDay(ctx, userID, dateKey)
	if err != nil {
		return TrackerView{}, err
	}

	return buildView(dateKey, windows, record, degraded), nil
}

// Toggle flips the completion state of one prayer and returns the
// rebuilt view. Toggling an id absent from the current schedule is
// allowed; the completion is retained but not rendered.
func (t *Tracker) Toggle(ctx context.Context, userID int, prayerID string, tzOffsetMinutes int) (TrackerView, error) {
	now := t.localNow(tzOffsetMinutes)
	dateKey := now.Format(dateKeyLayout)

	record, err := t.Store.GetPrayerDay(ctx, userID, dateKey)
	if err != nil {
		return TrackerView{}, err
	}
	return t.set(ctx, userID, prayerID, !record.Has(prayerID), dateKey, now)
}

// SetCompleted writes an explicit completion state. Used by clients
// that send the desired state instead of a flip; writing a state that
// already holds is a no-op.
func (t *Tracker) SetCompleted(ctx context.Context, userID int, prayerID string, completed bool, tzOffsetMinutes int) (TrackerView, error) {
	now := t.localNow(tzOffsetMinutes)
	return t.set(ctx, userID, prayerID, completed, now.Format(dateKeyLayout), now)
}

// localNow shifts the server clock into the device's zone so a user
// several timezones away files completions under their own calendar
// day. A zero offset keeps the server zone.
func (t *Tracker) localNow(tzOffsetMinutes int) time.Time {
	now := t.Clock()
	if tzOffsetMinutes == 0 {
		return now
	}
	return now.In(time.FixedZone("device", tzOffsetMinutes*60))
}

func (t *Tracker) set(ctx context.Context, userID int, prayerID string, completed bool, dateKey string, now time.Time) (TrackerView, error) {
	record, err := t.Store.SetPrayerCompletion(ctx, userID, dateKey, prayerID, completed)
	if err != nil {
		return TrackerView{}, err
	}

	windows, degraded := t.scheduleFor(userID, dateKey, now)
	view := buildView(dateKey, windows, record, degraded)

	if t.Events != nil {
		t.Events.PublishTrackerUpdate(userID, view)
	}
	return view, nil
}

// scheduleFor returns the memoized schedule from the last LoadToday,
// or the estimated defaults when none exists for today (e.g. a toggle
// arriving before any load, or the first toggle after midnight).
func (t *Tracker) scheduleFor(userID int, dateKey string, now time.Time) ([]Window, bool) {
	t.mu.Lock()
	memo, ok := t.days[userID]
	t.mu.Unlock()

	if ok && memo.dateKey == dateKey {
		// re-tag a copy so concurrent callers never share flag writes
		windows := make([]Window, len(memo.windows))
		copy(windows, memo.windows)
		annotate(windows, now)
		return windows, memo.degraded
	}
	return DefaultWindows(now, now), true
}

func buildView(dateKey string, windows []Window, record model.PrayerDay, degraded bool) TrackerView {
	prayers := make([]TrackedWindow, 0, len(windows))
	completed := 0
	for _, w := range windows {
		done := record.Has(w.ID)
		if done {
			completed++
		}
		prayers = append(prayers, TrackedWindow{Window: w, Completed: done})
	}

	view := TrackerView{
		DateKey:        dateKey,
		Prayers:        prayers,
		CompletedCount: completed,
		TotalCount:     len(prayers),
		Degraded:       degraded,
	}
	if view.TotalCount > 0 {
		view.ProgressPercent = float64(view.CompletedCount) / float64(view.TotalCount) * 100
	}
	return view
}

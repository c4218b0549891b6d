package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/minaret-app/minaret/internal/cache"
	"github.com/minaret-app/minaret/internal/model"
	"github.com/minaret-app/minaret/internal/prayer"
)

// GetPrayerDay returns the completion ledger for one user and day.
// A missing row is an empty record, not an error; any other read
// failure surfaces as prayer.ErrPersistenceRead so callers never
// mistake an outage for "nothing completed".
func (s *pgStore) GetPrayerDay(ctx context.Context, userID int, dateKey string) (model.PrayerDay, error) {
	if cached, ok := cache.GetPrayerDay(ctx, userID, dateKey); ok {
		return cached, nil
	}

	var day model.PrayerDay
	err := s.db.GetContext(ctx, &day, `
	SELECT user_id, date_key, completed FROM prayer_days
	 WHERE user_id = $1 AND date_key = $2;`, userID, dateKey)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PrayerDay{UserID: userID, DateKey: dateKey, Completed: []string{}}, nil
	}
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Str("date_key", dateKey).Msg("GetPrayerDay failed")
		return model.PrayerDay{}, fmt.Errorf("%w: %v", prayer.ErrPersistenceRead, err)
	}

	cache.SetPrayerDay(ctx, day)
	return day, nil
}

// SetPrayerCompletion adds or removes one prayer id in a single upsert.
// The array mutation happens inside the statement, so concurrent
// toggles for the same (user, day) serialize on the row and neither
// update is lost; re-applying a state that already holds is a no-op.
func (s *pgStore) SetPrayerCompletion(ctx context.Context, userID int, dateKey, prayerID string, completed bool) (model.PrayerDay, error) {
	var day model.PrayerDay
	const q = `
	INSERT INTO prayer_days (user_id, date_key, completed)
	VALUES ($1, $2, CASE WHEN $4 THEN ARRAY[$3::text] ELSE ARRAY[]::text[] END)
	ON CONFLICT (user_id, date_key) DO UPDATE SET completed =
	  CASE WHEN $4 THEN
	    CASE WHEN $3 = ANY (prayer_days.completed)
	         THEN prayer_days.completed
	         ELSE array_append(prayer_days.completed, $3)
	    END
	  ELSE array_remove(prayer_days.completed, $3)
	  END
	RETURNING user_id, date_key, completed;`

	err := s.db.GetContext(ctx, &day, q, userID, dateKey, prayerID, completed)
	if err != nil {
		log.Error().Err(err).
			Int("user_id", userID).
			Str("date_key", dateKey).
			Str("prayer_id", prayerID).
			Msg("SetPrayerCompletion failed")
		// drop the optimistic cached copy so it cannot outlive the truth
		cache.InvalidatePrayerDay(ctx, userID, dateKey)
		return model.PrayerDay{}, fmt.Errorf("%w: %v", prayer.ErrPersistenceWrite, err)
	}

	// invalidate rather than re-set: concurrent writes serialize on the
	// row but not on the cache, and a slower writer re-setting its older
	// record would shadow the newer row for the whole TTL. The next read
	// repopulates from the durable row.
	cache.InvalidatePrayerDay(ctx, userID, dateKey)
	return day, nil
}

func (s *pgStore) ListPrayerDays(ctx context.Context, userID int, from, to string) ([]model.PrayerDay, error) {
	var out []model.PrayerDay
	const q = `
	SELECT user_id, date_key, completed FROM prayer_days
	 WHERE user_id = $1 AND date_key >= $2 AND date_key <= $3
	 ORDER BY date_key;`
	if err := s.db.SelectContext(ctx, &out, q, userID, from, to); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("ListPrayerDays failed")
		return nil, fmt.Errorf("%w: %v", prayer.ErrPersistenceRead, err)
	}
	return out, nil
}

package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/minaret-app/minaret/internal/model"
	"github.com/minaret-app/minaret/internal/redis"
)

const (
	prayerDayPrefix = "prayer:day"

	// a day record is only interesting for the day itself plus the
	// morning-after streak screens
	prayerDayTTL = 48 * time.Hour
)

func prayerDayKey(userID int, dateKey string) string {
	return redis.Key(prayerDayPrefix, strconv.Itoa(userID), dateKey)
}

// GetPrayerDay returns the cached ledger for the day, if present. Any
// cache failure is a miss; the durable store stays the source of truth.
func GetPrayerDay(ctx context.Context, userID int, dateKey string) (model.PrayerDay, bool) {
	client := redis.Client()
	if client == nil {
		return model.PrayerDay{}, false
	}

	raw, err := client.Get(ctx, prayerDayKey(userID, dateKey)).Bytes()
	if err != nil {
		return model.PrayerDay{}, false
	}

	var day model.PrayerDay
	if err := json.Unmarshal(raw, &day); err != nil {
		log.Warn().Err(err).Msg("corrupt prayer day cache entry")
		return model.PrayerDay{}, false
	}
	return day, true
}

// SetPrayerDay mirrors the durable record. Best effort only.
func SetPrayerDay(ctx context.Context, day model.PrayerDay) {
	client := redis.Client()
	if client == nil {
		return
	}

	raw, err := json.Marshal(day)
	if err != nil {
		return
	}
	if err := client.Set(ctx, prayerDayKey(day.UserID, day.DateKey), raw, prayerDayTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to cache prayer day")
	}
}

// InvalidatePrayerDay drops the cached copy, used when a durable write
// fails so the optimistic state cannot be served back.
func InvalidatePrayerDay(ctx context.Context, userID int, dateKey string) {
	client := redis.Client()
	if client == nil {
		return
	}
	if err := client.Del(ctx, prayerDayKey(userID, dateKey)).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate prayer day cache")
	}
}

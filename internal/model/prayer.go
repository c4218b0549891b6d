package model

import "github.com/lib/pq"

// PrayerDay is the durable completion ledger for one user and one
// calendar day. DateKey is "YYYY-MM-DD" in the user's local timezone
// at the time of recording.
type PrayerDay struct {
	UserID    int            `db:"user_id" json:"user_id"`
	DateKey   string         `db:"date_key" json:"date_key"`
	Completed pq.StringArray `db:"completed" json:"completed"`
}

// Has reports whether the given prayer id is marked complete.
func (d PrayerDay) Has(prayerID string) bool {
	for _, id := range d.Completed {
		if id == prayerID {
			return true
		}
	}
	return false
}

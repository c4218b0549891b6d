package model

import "time"

type QuranBookmark struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Surah     int       `db:"surah" json:"surah"`
	Ayah      int       `db:"ayah" json:"ayah"`
	Note      *string   `db:"note" json:"note"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// QuranLastRead is the single last-read position per user.
type QuranLastRead struct {
	UserID    int       `db:"user_id" json:"user_id"`
	Surah     int       `db:"surah" json:"surah"`
	Ayah      int       `db:"ayah" json:"ayah"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

package model

import "time"

// DuaFavorite marks a du'a from the static catalog as a favorite.
// DuaID is the catalog's stable string identifier.
type DuaFavorite struct {
	UserID    int       `db:"user_id" json:"user_id"`
	DuaID     string    `db:"dua_id" json:"dua_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

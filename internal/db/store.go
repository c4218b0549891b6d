// exposes a Store interface that endpoint modules depend on
package db

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/minaret-app/minaret/internal/model"
)

type Store interface {
	// users
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// prayer completion ledger
	GetPrayerDay(ctx context.Context, userID int, dateKey string) (model.PrayerDay, error)
	SetPrayerCompletion(ctx context.Context, userID int, dateKey, prayerID string, completed bool) (model.PrayerDay, error)
	ListPrayerDays(ctx context.Context, userID int, from, to string) ([]model.PrayerDay, error)

	// quran bookmarks and reading position
	CreateBookmark(userID, surah, ayah int, note *string) (model.QuranBookmark, error)
	ListBookmarks(userID int) ([]model.QuranBookmark, error)
	DeleteBookmark(id, userID int) error
	GetLastRead(userID int) (*model.QuranLastRead, error)
	SetLastRead(userID, surah, ayah int) (model.QuranLastRead, error)

	// du'a favorites
	AddDuaFavorite(userID int, duaID string) error
	RemoveDuaFavorite(userID int, duaID string) error
	ListDuaFavorites(userID int) ([]model.DuaFavorite, error)

	// community
	CreatePost(userID int, publicID, body string) (model.Post, error)
	GetPost(id int) (model.Post, error)
	DeletePost(id int) error
	ListFeed(viewerID, limit int) ([]model.Post, error)
	LikePost(postID, userID int) error
	UnlikePost(postID, userID int) error
	CreateComment(postID, userID int, body string) (model.Comment, error)
	ListComments(postID int) ([]model.Comment, error)
	Follow(followerID, followeeID int) error
	Unfollow(followerID, followeeID int) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{db: DB}
}

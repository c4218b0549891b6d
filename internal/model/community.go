package model

import "time"

type Post struct {
	ID        int       `db:"id" json:"id"`
	PublicID  string    `db:"public_id" json:"public_id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// populated by feed queries, not stored on the row
	AuthorName   *string `db:"author_name" json:"author_name"`
	LikeCount    int     `db:"like_count" json:"like_count"`
	CommentCount int     `db:"comment_count" json:"comment_count"`
	LikedByMe    bool    `db:"liked_by_me" json:"liked_by_me"`
}

type Comment struct {
	ID         int       `db:"id" json:"id"`
	PostID     int       `db:"post_id" json:"post_id"`
	UserID     int       `db:"user_id" json:"user_id"`
	Body       string    `db:"body" json:"body"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	AuthorName *string   `db:"author_name" json:"author_name"`
}

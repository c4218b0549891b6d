package db

import (
	"github.com/rs/zerolog/log"

	"github.com/minaret-app/minaret/internal/model"
)

func (s *pgStore) CreatePost(userID int, publicID, body string) (model.Post, error) {
	var p model.Post
	const q = `
	INSERT INTO posts (public_id, user_id, body, created_at)
	VALUES ($1, $2, $3, now())
	RETURNING id, public_id, user_id, body, created_at;`
	if err := s.db.Get(&p, q, publicID, userID, body); err != nil {
		log.Error().Err(err).Msg("CreatePost failed")
		return model.Post{}, err
	}
	return p, nil
}

func (s *pgStore) GetPost(id int) (model.Post, error) {
	var p model.Post
	err := s.db.Get(&p, `SELECT id, public_id, user_id, body, created_at FROM posts WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("post_id", id).Msg("GetPost failed")
	}
	return p, err
}

func (s *pgStore) DeletePost(id int) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("post_id", id).Msg("DeletePost failed")
	}
	return err
}

// ListFeed returns the newest posts with aggregate counts and whether
// the viewer has liked each one.
func (s *pgStore) ListFeed(viewerID, limit int) ([]model.Post, error) {
	var out []model.Post
	const q = `
	SELECT p.id, p.public_id, p.user_id, p.body, p.created_at,
	       u.name AS author_name,
	       (SELECT count(*) FROM post_likes l WHERE l.post_id = p.id)    AS like_count,
	       (SELECT count(*) FROM post_comments c WHERE c.post_id = p.id) AS comment_count,
	       EXISTS (SELECT 1 FROM post_likes l WHERE l.post_id = p.id AND l.user_id = $1) AS liked_by_me
	  FROM posts p
	  JOIN users u ON u.id = p.user_id
	 ORDER BY p.created_at DESC, p.id DESC
	 LIMIT $2;`
	if err := s.db.Select(&out, q, viewerID, limit); err != nil {
		log.Error().Err(err).Msg("ListFeed failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) LikePost(postID, userID int) error {
	_, err := s.db.Exec(`
	INSERT INTO post_likes (post_id, user_id, created_at)
	VALUES ($1, $2, now())
	ON CONFLICT DO NOTHING;`, postID, userID)
	if err != nil {
		log.Error().Err(err).Int("post_id", postID).Msg("LikePost failed")
	}
	return err
}

func (s *pgStore) UnlikePost(postID, userID int) error {
	_, err := s.db.Exec(`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2;`, postID, userID)
	if err != nil {
		log.Error().Err(err).Int("post_id", postID).Msg("UnlikePost failed")
	}
	return err
}

func (s *pgStore) CreateComment(postID, userID int, body string) (model.Comment, error) {
	var c model.Comment
	const q = `
	INSERT INTO post_comments (post_id, user_id, body, created_at)
	VALUES ($1, $2, $3, now())
	RETURNING id, post_id, user_id, body, created_at;`
	if err := s.db.Get(&c, q, postID, userID, body); err != nil {
		log.Error().Err(err).Int("post_id", postID).Msg("CreateComment failed")
		return model.Comment{}, err
	}
	return c, nil
}

func (s *pgStore) ListComments(postID int) ([]model.Comment, error) {
	var out []model.Comment
	const q = `
	SELECT c.id, c.post_id, c.user_id, c.body, c.created_at, u.name AS author_name
	  FROM post_comments c
	  JOIN users u ON u.id = c.user_id
	 WHERE c.post_id = $1
	 ORDER BY c.created_at;`
	if err := s.db.Select(&out, q, postID); err != nil {
		log.Error().Err(err).Int("post_id", postID).Msg("ListComments failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) Follow(followerID, followeeID int) error {
	_, err := s.db.Exec(`
	INSERT INTO follows (follower_id, followee_id, created_at)
	VALUES ($1, $2, now())
	ON CONFLICT DO NOTHING;`, followerID, followeeID)
	if err != nil {
		log.Error().Err(err).Int("followee_id", followeeID).Msg("Follow failed")
	}
	return err
}

func (s *pgStore) Unfollow(followerID, followeeID int) error {
	_, err := s.db.Exec(`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2;`, followerID, followeeID)
	if err != nil {
		log.Error().Err(err).Int("followee_id", followeeID).Msg("Unfollow failed")
	}
	return err
}

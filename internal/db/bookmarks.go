package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/minaret-app/minaret/internal/model"
)

func (s *pgStore) CreateBookmark(userID, surah, ayah int, note *string) (model.QuranBookmark, error) {
	var b model.QuranBookmark
	const q = `
	INSERT INTO quran_bookmarks (user_id, surah, ayah, note, created_at)
	VALUES ($1, $2, $3, $4, now())
	RETURNING id, user_id, surah, ayah, note, created_at;`
	if err := s.db.Get(&b, q, userID, surah, ayah, note); err != nil {
		log.Error().Err(err).Msg("CreateBookmark failed")
		return model.QuranBookmark{}, err
	}
	return b, nil
}

func (s *pgStore) ListBookmarks(userID int) ([]model.QuranBookmark, error) {
	var out []model.QuranBookmark
	const q = `
	SELECT id, user_id, surah, ayah, note, created_at
	  FROM quran_bookmarks
	 WHERE user_id = $1
	 ORDER BY surah, ayah;`
	if err := s.db.Select(&out, q, userID); err != nil {
		log.Error().Err(err).Msg("ListBookmarks failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) DeleteBookmark(id, userID int) error {
	res, err := s.db.Exec(`DELETE FROM quran_bookmarks WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		log.Error().Err(err).Int("bookmark_id", id).Msg("DeleteBookmark failed")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *pgStore) GetLastRead(userID int) (*model.QuranLastRead, error) {
	var lr model.QuranLastRead
	err := s.db.Get(&lr, `SELECT user_id, surah, ayah, updated_at FROM quran_last_read WHERE user_id = $1;`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("GetLastRead failed")
		return nil, err
	}
	return &lr, nil
}

func (s *pgStore) SetLastRead(userID, surah, ayah int) (model.QuranLastRead, error) {
	var lr model.QuranLastRead
	const q = `
	INSERT INTO quran_last_read (user_id, surah, ayah, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (user_id) DO UPDATE SET surah = $2, ayah = $3, updated_at = now()
	RETURNING user_id, surah, ayah, updated_at;`
	if err := s.db.Get(&lr, q, userID, surah, ayah); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("SetLastRead failed")
		return model.QuranLastRead{}, err
	}
	return lr, nil
}

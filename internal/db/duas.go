package db

import (
	"github.com/rs/zerolog/log"

	"github.com/minaret-app/minaret/internal/model"
)

// AddDuaFavorite is idempotent: favoriting an already-favorite du'a is
// a no-op.
func (s *pgStore) AddDuaFavorite(userID int, duaID string) error {
	_, err := s.db.Exec(`
	INSERT INTO dua_favorites (user_id, dua_id, created_at)
	VALUES ($1, $2, now())
	ON CONFLICT DO NOTHING;`, userID, duaID)
	if err != nil {
		log.Error().Err(err).Str("dua_id", duaID).Msg("AddDuaFavorite failed")
	}
	return err
}

func (s *pgStore) RemoveDuaFavorite(userID int, duaID string) error {
	_, err := s.db.Exec(`DELETE FROM dua_favorites WHERE user_id = $1 AND dua_id = $2;`, userID, duaID)
	if err != nil {
		log.Error().Err(err).Str("dua_id", duaID).Msg("RemoveDuaFavorite failed")
	}
	return err
}

func (s *pgStore) ListDuaFavorites(userID int) ([]model.DuaFavorite, error) {
	var out []model.DuaFavorite
	const q = `
	SELECT user_id, dua_id, created_at
	  FROM dua_favorites
	 WHERE user_id = $1
	 ORDER BY created_at DESC;`
	if err := s.db.Select(&out, q, userID); err != nil {
		log.Error().Err(err).Msg("ListDuaFavorites failed")
		return nil, err
	}
	return out, nil
}

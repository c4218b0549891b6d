package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/minaret-app/minaret/internal/model"
)

func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	var id int
	const q = `
	INSERT INTO users (email, hashed_password, name, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id;`
	if err := s.db.Get(&id, q, email, hashedPassword, name); err != nil {
		log.Error().Err(err).Msg("CreateUser failed")
		return 0, err
	}
	return id, nil
}

func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u, `SELECT * FROM users WHERE email = $1;`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Msg("GetUserByEmail failed")
		return nil, err
	}
	return &u, nil
}

func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	var u model.User
	if err := s.db.Get(&u, `SELECT * FROM users WHERE id = $1;`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	_, err := s.db.Exec(`
	UPDATE users SET email = $2, name = $3, updated_at = now() WHERE id = $1;`,
		id, email, name)
	if err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("UpdateUserProfile failed")
	}
	return err
}

// GetUserByID loads a user through the shared handle. Used by the JWT
// middleware, which runs before any Store is in scope.
func GetUserByID(id int) (*model.User, error) {
	var u model.User
	if err := DB.Get(&u, `SELECT * FROM users WHERE id = $1;`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

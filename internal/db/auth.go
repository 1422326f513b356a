package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

var ErrNoSuchUser = errors.New("no such user")

// inserts new user into table, returns new user ID.
func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	const query = `
	INSERT INTO users (email, hashed_password, name, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id;`
	var newID int
	if err := s.db.QueryRowx(query, email, hashedPassword, name).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		log.Error().Err(err).Str("email", email).Msg("failed to create user")
		return 0, err
	}
	return newID, nil
}

// CreateFirstUser bootstraps the station admin. The table lock makes two
// concurrent first signups serialize, so only one of them succeeds.
func (s *pgStore) CreateFirstUser(email, hashedPassword string, name *string) (int, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE;`); err != nil {
		log.Error().Err(err).Msg("failed to lock users table")
		return 0, err
	}

	const query = `
	INSERT INTO users (email, hashed_password, name, created_at, updated_at)
	SELECT $1, $2, $3, now(), now()
	WHERE NOT EXISTS (SELECT 1 FROM users)
	RETURNING id;`
	var newID int
	if err := tx.QueryRowx(query, email, hashedPassword, name).Scan(&newID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrSignupClosed
		}
		log.Error().Err(err).Str("email", email).Msg("failed to create first user")
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return newID, nil
}

func (s *pgStore) CountUsers() (int, error) {
	var n int
	if err := s.db.Get(&n, `SELECT count(*) FROM users;`); err != nil {
		log.Error().Err(err).Msg("failed to count users")
		return 0, err
	}
	return n, nil
}

// fetches user by email. returns nil, sql.ErrNoRows if not found.
func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	return s.getUser(`
	SELECT id, email, hashed_password, name, created_at, updated_at
	FROM users
	WHERE email = $1;`, email)
}

// fetches a user by ID. returns nil, sql.ErrNoRows if not found.
func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	return s.getUser(`
	SELECT id, email, hashed_password, name, created_at, updated_at
	FROM users
	WHERE id = $1;`, id)
}

func (s *pgStore) getUser(query string, arg any) (*model.User, error) {
	var u model.User
	if err := s.db.Get(&u, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get user")
		return nil, err
	}
	return &u, nil
}

// updates a user's email and name, and bumps updated_at.
func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	const query = `
	UPDATE users
	SET email = $2,
	name = $3,
	updated_at = now()
	WHERE id = $1;`
	res, err := s.db.Exec(query, id, email, name)
	if err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("failed to update user profile")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		log.Warn().Int("user_id", id).Msg("update profile: no such user")
		return ErrNoSuchUser
	}
	return nil
}

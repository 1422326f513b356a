package db

import (
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

const programColumns = `id, name, logo_url, description, extended_description, created_at, updated_at`

func (s *pgStore) ListPrograms() ([]model.Program, error) {
	out := []model.Program{}
	if err := s.db.Select(&out, `SELECT `+programColumns+` FROM programs ORDER BY name, id;`); err != nil {
		log.Error().Err(err).Msg("ListPrograms failed")
		return nil, err
	}
	return out, nil
}

// GetProgram returns sql.ErrNoRows for an unknown id.
func (s *pgStore) GetProgram(id string) (model.Program, error) {
	var p model.Program
	err := s.db.Get(&p, `SELECT `+programColumns+` FROM programs WHERE id = $1;`, id)
	if err != nil && err != sql.ErrNoRows {
		log.Error().Err(err).Str("program_id", id).Msg("GetProgram failed")
	}
	return p, err
}

func (s *pgStore) CreateProgram(p model.Program) (model.Program, error) {
	var out model.Program
	err := s.db.Get(&out, `
	INSERT INTO programs (id, name, logo_url, description, extended_description, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, now(), now())
	RETURNING `+programColumns+`;`,
		p.ID, p.Name, p.LogoURL, p.Description, p.ExtendedDescription)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Program{}, ErrDuplicateProgram
		}
		log.Error().Err(err).Str("program_id", p.ID).Msg("CreateProgram failed")
		return model.Program{}, err
	}
	return out, nil
}

// UpdateProgram returns sql.ErrNoRows for an unknown id.
func (s *pgStore) UpdateProgram(p model.Program) (model.Program, error) {
	var out model.Program
	err := s.db.Get(&out, `
	UPDATE programs
	   SET name = $2,
	       logo_url = $3,
	       description = $4,
	       extended_description = $5,
	       updated_at = now()
	 WHERE id = $1
	RETURNING `+programColumns+`;`,
		p.ID, p.Name, p.LogoURL, p.Description, p.ExtendedDescription)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Error().Err(err).Str("program_id", p.ID).Msg("UpdateProgram failed")
		}
		return model.Program{}, err
	}
	return out, nil
}

// DeleteProgram leaves schedule entries pointing at the program in place;
// the player shows them with an empty name until the schedule is edited.
func (s *pgStore) DeleteProgram(id string) error {
	res, err := s.db.Exec(`DELETE FROM programs WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Str("program_id", id).Msg("DeleteProgram failed")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

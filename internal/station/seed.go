package station

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/onair/internal/config"
	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

// Seeder is the write side of db.Store used to provision a fresh install.
type Seeder interface {
	Reader
	SaveStation(station model.Station) (model.Station, error)
	CreateProgram(program model.Program) (model.Program, error)
	ReplaceSchedule(schedule model.Schedule) error
}

// Seed writes the file's station, programs and schedule into a fresh store:
// one with no saved station settings and no programs. It reports whether
// anything was written.
func Seed(store Seeder, f *config.StationFile) (bool, error) {
	current, err := store.GetStation()
	if err != nil {
		return false, fmt.Errorf("seed: get station: %w", err)
	}
	if current.Saved() {
		log.Info().Time("updated_at", current.UpdatedAt).Msg("station settings already saved, skipping seed")
		return false, nil
	}
	existing, err := store.ListPrograms()
	if err != nil {
		return false, fmt.Errorf("seed: list programs: %w", err)
	}
	if len(existing) > 0 {
		log.Info().Int("programs", len(existing)).Msg("station already provisioned, skipping seed")
		return false, nil
	}

	st := f.Station
	if replaced := st.Sanitize(); len(replaced) > 0 {
		log.Warn().Strs("fields", replaced).Msg("seed station settings out of range, using defaults")
	}
	if _, err := store.SaveStation(st); err != nil {
		return false, fmt.Errorf("seed: save station: %w", err)
	}
	for _, p := range f.Programs {
		if _, err := store.CreateProgram(p); err != nil {
			return false, fmt.Errorf("seed: create program %q: %w", p.ID, err)
		}
	}
	if err := store.ReplaceSchedule(f.Schedule); err != nil {
		return false, fmt.Errorf("seed: replace schedule: %w", err)
	}

	log.Info().
		Int("programs", len(f.Programs)).
		Int("slots", f.Schedule.Count()).
		Msg("station seeded")
	return true, nil
}

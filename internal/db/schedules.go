package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

// GetSchedule loads the week, keeping each day's entries in their saved order.
func (s *pgStore) GetSchedule() (model.Schedule, error) {
	var rows []model.ScheduleEntry
	const q = `
	SELECT id, weekday, program_id, start_time, end_time, position
	  FROM schedule_entries
	 ORDER BY weekday, position, id;`
	if err := s.db.Select(&rows, q); err != nil {
		log.Error().Err(err).Msg("GetSchedule failed")
		return nil, err
	}

	out := model.Schedule{}
	for _, r := range rows {
		if _, ok := model.ParseWeekday(r.Day); !ok {
			log.Warn().Str("weekday", r.Day).Int("entry_id", r.ID).Msg("skipping schedule entry with unknown weekday")
			continue
		}
		key := model.Weekday(r.Day)
		out[key] = append(out[key], r)
	}
	return out, nil
}

// ReplaceSchedule swaps the whole week in one transaction.
func (s *pgStore) ReplaceSchedule(schedule model.Schedule) error {
	tx, err := s.db.Beginx()
	if err != nil {
		log.Error().Err(err).Msg("ReplaceSchedule begin failed")
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM schedule_entries;`); err != nil {
		log.Error().Err(err).Msg("ReplaceSchedule clear failed")
		return err
	}

	const insert = `
	INSERT INTO schedule_entries (weekday, program_id, start_time, end_time, position)
	VALUES ($1, $2, $3, $4, $5);`
	for day := time.Sunday; day <= time.Saturday; day++ {
		key := model.WeekdayOf(day)
		for i, e := range schedule[key] {
			if _, err := tx.Exec(insert, string(key), e.ProgramID, e.Start, e.End, i); err != nil {
				log.Error().Err(err).Str("weekday", string(key)).Int("position", i).Msg("ReplaceSchedule insert failed")
				return fmt.Errorf("insert %s entry %d: %w", key, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error().Err(err).Msg("ReplaceSchedule commit failed")
		return err
	}
	return nil
}

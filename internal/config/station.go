package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Nixie-Tech-LLC/onair/internal/clock"
	"github.com/Nixie-Tech-LLC/onair/internal/model"
	"github.com/Nixie-Tech-LLC/onair/internal/schedule"
)

// StationFile is the YAML seed used to provision a fresh install.
// A file may carry either a relational schedule (programs + schedule)
// or the older flat form under legacy_schedule; not both.
type StationFile struct {
	Station        model.Station                            `yaml:"station"`
	Programs       []model.Program                          `yaml:"programs"`
	Schedule       model.Schedule                           `yaml:"schedule"`
	LegacySchedule map[model.Weekday][]schedule.LegacyEntry `yaml:"legacy_schedule"`
}

// LoadStationFile parses path and collapses a legacy schedule into programs.
// newID mints program ids for legacy entries.
func LoadStationFile(path string, newID func() string) (*StationFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read station file: %w", err)
	}
	return ParseStationFile(raw, newID)
}

func ParseStationFile(raw []byte, newID func() string) (*StationFile, error) {
	var f StationFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse station file: %w", err)
	}

	if tz := f.Station.Timezone; tz != nil && *tz != "" && !clock.KnownZone(*tz) {
		return nil, fmt.Errorf("station file: unknown timezone %q", *tz)
	}

	for key := range f.Schedule {
		if _, ok := model.ParseWeekday(string(key)); !ok {
			return nil, fmt.Errorf("station file: unknown weekday %q in schedule", key)
		}
	}
	for key := range f.LegacySchedule {
		if _, ok := model.ParseWeekday(string(key)); !ok {
			return nil, fmt.Errorf("station file: unknown weekday %q in legacy_schedule", key)
		}
	}

	if len(f.LegacySchedule) > 0 {
		if f.Schedule.Count() > 0 || len(f.Programs) > 0 {
			return nil, fmt.Errorf("station file: legacy_schedule cannot be combined with programs or schedule")
		}
		f.Schedule, f.Programs = schedule.MigrateLegacy(f.LegacySchedule, newID)
		f.LegacySchedule = nil
	}

	if err := schedule.ValidatePrograms(f.Programs).Err(); err != nil {
		return nil, fmt.Errorf("station file programs: %w", err)
	}
	if err := schedule.Validate(f.Schedule, f.Programs).Err(); err != nil {
		return nil, fmt.Errorf("station file schedule: %w", err)
	}
	return &f, nil
}

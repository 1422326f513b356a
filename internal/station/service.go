// Package station joins the stored station, programs and schedule with the
// clock to answer the player's questions.
package station

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/onair/internal/clock"
	"github.com/Nixie-Tech-LLC/onair/internal/model"
	"github.com/Nixie-Tech-LLC/onair/internal/schedule"
)

// Reader is the read side of db.Store the service depends on.
type Reader interface {
	GetStation() (model.Station, error)
	ListPrograms() ([]model.Program, error)
	GetSchedule() (model.Schedule, error)
}

// Config is everything the player page needs to render.
type Config struct {
	Station  model.Station   `json:"station"`
	Programs []model.Program `json:"programs"`
	Schedule model.Schedule  `json:"schedule"`
}

// Snapshot is the on-air state at one instant.
type Snapshot struct {
	Moment      clock.Moment              `json:"moment"`
	Weekday     model.Weekday             `json:"weekday"`
	Active      *schedule.ActiveProgram   `json:"active"`
	Incoming    *schedule.IncomingProgram `json:"incoming"`
	GeneratedAt time.Time                 `json:"generated_at"`
}

// SameAiring reports whether two snapshots show the same active and incoming slots.
// MinutesUntil is ignored so a countdown alone does not count as a change.
func (s Snapshot) SameAiring(other Snapshot) bool {
	return sameActive(s.Active, other.Active) && sameIncoming(s.Incoming, other.Incoming)
}

func sameActive(a, b *schedule.ActiveProgram) bool {
	if a == nil || b == nil {
		return a == b
	}
	return sameAiring(a.Airing, b.Airing)
}

func sameIncoming(a, b *schedule.IncomingProgram) bool {
	if a == nil || b == nil {
		return a == b
	}
	return sameAiring(a.Airing, b.Airing)
}

func sameAiring(a, b schedule.Airing) bool {
	if a.ProgramID != b.ProgramID || a.Name != b.Name || a.Start != b.Start || a.End != b.End {
		return false
	}
	if a.LogoURL == nil || b.LogoURL == nil {
		return a.LogoURL == b.LogoURL
	}
	return *a.LogoURL == *b.LogoURL
}

// TimeInfo compares station time with the host's.
type TimeInfo struct {
	Moment          clock.Moment  `json:"moment"`
	Weekday         model.Weekday `json:"weekday"`
	StationOffset   float64       `json:"station_offset_hours"`
	HostOffset      float64       `json:"host_offset_hours"`
	DifferenceHours float64       `json:"difference_hours"`
	Timezone        *string       `json:"timezone,omitempty"`
}

type Service struct {
	reader   Reader
	resolver *clock.Resolver
	window   int
}

func NewService(reader Reader, resolver *clock.Resolver, incomingWindow int) *Service {
	return &Service{reader: reader, resolver: resolver, window: incomingWindow}
}

// Config loads and sanitises the station configuration.
func (s *Service) Config() (Config, error) {
	st, err := s.reader.GetStation()
	if err != nil {
		return Config{}, fmt.Errorf("load station: %w", err)
	}
	if replaced := st.Sanitize(); len(replaced) > 0 {
		log.Warn().Strs("fields", replaced).Msg("station settings out of range, using defaults")
	}
	programs, err := s.reader.ListPrograms()
	if err != nil {
		return Config{}, fmt.Errorf("load programs: %w", err)
	}
	sched, err := s.reader.GetSchedule()
	if err != nil {
		return Config{}, fmt.Errorf("load schedule: %w", err)
	}
	if sched == nil {
		sched = model.Schedule{}
	}
	return Config{Station: st, Programs: programs, Schedule: sched}, nil
}

// Now is the service clock's current instant.
func (s *Service) Now() time.Time {
	return s.resolver.Now()
}

// Moment resolves the station's current day and minute.
func (s *Service) Moment(st model.Station) clock.Moment {
	return s.resolver.Resolve(st)
}

// Snapshot computes the on-air state from scratch.
func (s *Service) Snapshot() (Snapshot, error) {
	cfg, err := s.Config()
	if err != nil {
		return Snapshot{}, err
	}
	return s.SnapshotOf(cfg), nil
}

// SnapshotOf computes the on-air state for an already loaded configuration.
func (s *Service) SnapshotOf(cfg Config) Snapshot {
	m := s.Moment(cfg.Station)
	return Snapshot{
		Moment:      m,
		Weekday:     m.Weekday(),
		Active:      schedule.FindActive(cfg.Schedule, cfg.Programs, m.Day, m.Minutes),
		Incoming:    schedule.FindIncoming(cfg.Schedule, cfg.Programs, m.Day, m.Minutes, s.window),
		GeneratedAt: s.resolver.Now().UTC(),
	}
}

func (s *Service) Week() ([]schedule.DayWithPrograms, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	m := s.Moment(cfg.Station)
	return schedule.ListWeekFromToday(cfg.Schedule, cfg.Programs, m.Day, m.Minutes), nil
}

func (s *Service) Day(day time.Weekday) ([]schedule.ProgramForDay, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	m := s.Moment(cfg.Station)
	return schedule.ListDay(cfg.Schedule, cfg.Programs, day, m.Day, m.Minutes), nil
}

func (s *Service) Programs() ([]schedule.ProgramWithSlots, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	m := s.Moment(cfg.Station)
	return schedule.ListAllProgramsWithSlots(cfg.Schedule, cfg.Programs, m.Day, m.Minutes), nil
}

// Time reports the station moment and how far the station is from the host.
func (s *Service) Time() (TimeInfo, error) {
	st, err := s.reader.GetStation()
	if err != nil {
		return TimeInfo{}, fmt.Errorf("load station: %w", err)
	}
	st.Sanitize()

	offset := st.TimezoneOffset
	if st.Timezone != nil {
		offset = s.resolver.OffsetHours(*st.Timezone)
	}
	host := s.resolver.HostOffsetHours()
	m := s.Moment(st)
	return TimeInfo{
		Moment:          m,
		Weekday:         m.Weekday(),
		StationOffset:   offset,
		HostOffset:      host,
		DifferenceHours: clock.DifferenceHours(offset, host),
		Timezone:        st.Timezone,
	}, nil
}

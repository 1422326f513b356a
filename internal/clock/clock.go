// Package clock turns the current instant into the station's civil day and
// minute of day. Every function here is total: bad input falls back to UTC
// with a warning and never returns an error.
package clock

import (
	"math"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

const MinutesPerDay = 24 * 60

// Clock abstracts time.Now so resolution can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Moment is a position inside the station's week.
type Moment struct {
	Day     time.Weekday `json:"day"`
	Minutes int          `json:"minutes"`
}

// Weekday returns the schedule key for the moment's day.
func (m Moment) Weekday() model.Weekday {
	return model.WeekdayOf(m.Day)
}

// MomentOf reads the wall-clock day and minute of t in its own location.
func MomentOf(t time.Time) Moment {
	return Moment{Day: t.Weekday(), Minutes: t.Hour()*60 + t.Minute()}
}

type Resolver struct {
	clock   Clock
	host    *time.Location
	verbose bool
	logger  zerolog.Logger
}

type Option func(*Resolver)

// WithHostLocation overrides the host zone used by HostOffsetHours.
func WithHostLocation(loc *time.Location) Option {
	return func(r *Resolver) { r.host = loc }
}

// WithVerbose makes fallbacks log at warn level instead of debug.
func WithVerbose(verbose bool) Option {
	return func(r *Resolver) { r.verbose = verbose }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

func NewResolver(c Clock, opts ...Option) *Resolver {
	if c == nil {
		c = SystemClock{}
	}
	r := &Resolver{
		clock:  c,
		host:   time.Local,
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now exposes the underlying clock.
func (r *Resolver) Now() time.Time {
	return r.clock.Now()
}

// ResolveByOffset shifts the current UTC instant by offsetHours and reads the
// wall clock of the shifted instant as UTC, so the host zone never leaks in.
// Offsets that are not finite or lie outside [-12, 14] read as UTC.
func (r *Resolver) ResolveByOffset(offsetHours float64) Moment {
	if !model.ValidOffset(offsetHours) {
		r.warn().Float64("offset", offsetHours).Msg("timezone offset out of range, using UTC")
		offsetHours = 0
	}
	shift := time.Duration(math.Round(offsetHours*3600)) * time.Second
	return MomentOf(r.clock.Now().UTC().Add(shift))
}

// ResolveByName converts the current instant into the named IANA zone.
func (r *Resolver) ResolveByName(name string) Moment {
	return MomentOf(r.clock.Now().In(r.location(name)))
}

// OffsetHours returns the current UTC offset of the named zone, daylight
// saving included. Unknown zones report 0.
func (r *Resolver) OffsetHours(name string) float64 {
	_, seconds := r.clock.Now().In(r.location(name)).Zone()
	return float64(seconds) / 3600
}

// HostOffsetHours is the host zone's current offset, positive east of UTC.
func (r *Resolver) HostOffsetHours() float64 {
	host := r.host
	if host == nil {
		host = time.UTC
	}
	_, seconds := r.clock.Now().In(host).Zone()
	return float64(seconds) / 3600
}

// DifferenceHours compares two offsets, for example station and listener.
func DifferenceHours(a, b float64) float64 {
	return a - b
}

// Resolve prefers the station's zone name and falls back to its fixed offset
// when the name is missing or cannot be loaded.
func (r *Resolver) Resolve(station model.Station) Moment {
	if station.Timezone != nil && *station.Timezone != "" {
		if KnownZone(*station.Timezone) {
			return r.ResolveByName(*station.Timezone)
		}
		r.logger.Warn().
			Str("timezone", *station.Timezone).
			Float64("offset", station.TimezoneOffset).
			Msg("unknown station timezone, using fixed offset")
	}
	return r.ResolveByOffset(station.TimezoneOffset)
}

// KnownZone reports whether name is an IANA zone this build can load.
func KnownZone(name string) bool {
	if name == "" || name == "Local" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

func (r *Resolver) location(name string) *time.Location {
	if name == "" || name == "Local" {
		r.warn().Str("timezone", name).Msg("missing station timezone, using UTC")
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		r.warn().Err(err).Str("timezone", name).Msg("unknown timezone, using UTC")
		return time.UTC
	}
	return loc
}

func (r *Resolver) warn() *zerolog.Event {
	if r.verbose {
		return r.logger.Warn()
	}
	return r.logger.Debug()
}

// Package schedule answers "what is on air" questions over a weekly program
// schedule. All functions are pure: they never mutate their input, never
// panic on malformed data and return nil or empty results instead of errors.
package schedule

import (
	"sort"
	"time"

	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

// DefaultIncomingWindow is how far ahead, in minutes, FindIncoming looks.
const DefaultIncomingWindow = 10

// Airing is a schedule entry resolved against its program definition.
type Airing struct {
	ProgramID string  `json:"program_id"`
	Name      string  `json:"name"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	TimeRange string  `json:"time_range"`
	LogoURL   *string `json:"logo_url"`
}

type ActiveProgram struct {
	Airing
}

type IncomingProgram struct {
	Airing
	MinutesUntil int `json:"minutes_until"`
}

func airingOf(e model.ScheduleEntry, programs []model.Program) Airing {
	a := Airing{
		ProgramID: e.ProgramID,
		Start:     e.Start,
		End:       e.End,
		TimeRange: TimeRange(e),
	}
	if p, ok := findProgram(programs, e.ProgramID); ok {
		a.Name = p.Name
		a.LogoURL = optional(p.LogoURL)
	}
	return a
}

// FindActive returns the program airing at minute t of day, or nil.
// Today's slots are checked first in start order; when none match, a slot
// from the previous day that runs past midnight and has not ended yet wins.
func FindActive(s model.Schedule, programs []model.Program, day time.Weekday, t int) *ActiveProgram {
	if len(s) == 0 {
		return nil
	}
	t = normalizeMinutes(t)

	for _, sl := range daySlots(s, day) {
		if sl.activeAt(t) {
			return &ActiveProgram{Airing: airingOf(sl.entry, programs)}
		}
	}
	for _, sl := range daySlots(s, day-1) {
		if sl.spillsInto(t) {
			return &ActiveProgram{Airing: airingOf(sl.entry, programs)}
		}
	}
	return nil
}

// FindIncoming returns the next slot to start within window minutes of t,
// whatever is airing now. Tomorrow's slots are placed after today's on one
// continuous timeline so a start just past midnight is still found.
func FindIncoming(s model.Schedule, programs []model.Program, day time.Weekday, t, window int) *IncomingProgram {
	if len(s) == 0 {
		return nil
	}
	if window <= 0 {
		window = DefaultIncomingWindow
	}
	t = normalizeMinutes(t)

	type candidate struct {
		slot     slot
		absolute int
	}
	var candidates []candidate
	for _, sl := range daySlots(s, day) {
		if sl.start > t {
			candidates = append(candidates, candidate{slot: sl, absolute: sl.start})
		}
	}
	for _, sl := range daySlots(s, day+1) {
		candidates = append(candidates, candidate{slot: sl, absolute: sl.start + minutesPerDay})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].absolute < candidates[j].absolute })

	for _, c := range candidates {
		until := c.absolute - t
		if until > 0 && until <= window {
			return &IncomingProgram{Airing: airingOf(c.slot.entry, programs), MinutesUntil: until}
		}
	}
	return nil
}

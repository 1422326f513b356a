package schedule

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

const minutesPerDay = 24 * 60

// ParseClock converts "HH:MM" into minutes since midnight. Anything that is
// not a valid 24-hour time reads as 0.
func ParseClock(value string) int {
	minutes, ok := parseClock(value)
	if !ok {
		return 0
	}
	return minutes
}

func parseClock(value string) (int, bool) {
	hh, mm, found := strings.Cut(strings.TrimSpace(value), ":")
	if !found {
		return 0, false
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// TimeRange renders an entry's preserved start and end strings.
func TimeRange(e model.ScheduleEntry) string {
	return e.Start + " - " + e.End
}

type slot struct {
	entry model.ScheduleEntry
	day   time.Weekday
	start int
	end   int
}

// crossesMidnight: end at or before start means the slot finishes tomorrow.
// Equal bounds therefore cover the whole day.
func (s slot) crossesMidnight() bool {
	return s.end <= s.start
}

// activeAt tests a slot against a minute of its own day.
func (s slot) activeAt(t int) bool {
	if s.crossesMidnight() {
		return t >= s.start || t < s.end
	}
	return s.start <= t && t < s.end
}

// spillsInto tests a slot of yesterday against a minute of today. Only the
// part after midnight counts, so the start bound is never consulted.
func (s slot) spillsInto(t int) bool {
	return s.crossesMidnight() && t < s.end
}

// daySlots returns a sorted copy of the day's entries; the input is never mutated.
func daySlots(s model.Schedule, day time.Weekday) []slot {
	day = model.WrapDay(day)
	entries := s[model.WeekdayOf(day)]
	if len(entries) == 0 {
		return nil
	}
	out := make([]slot, 0, len(entries))
	for _, e := range entries {
		out = append(out, slot{entry: e, day: day, start: ParseClock(e.Start), end: ParseClock(e.End)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].start < out[j].start })
	return out
}

func normalizeMinutes(t int) int {
	return ((t % minutesPerDay) + minutesPerDay) % minutesPerDay
}

func findProgram(programs []model.Program, id string) (model.Program, bool) {
	for _, p := range programs {
		if p.ID == id {
			return p, true
		}
	}
	return model.Program{}, false
}

// optional copies a non-empty string so results never alias program data.
func optional(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	out := *v
	return &out
}

package model

import "time"

// Weekday is the key of a day list inside a Schedule.
type Weekday string

const (
	Sunday    Weekday = "sunday"
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

// Weekdays is indexed by time.Weekday (0 = Sunday).
var Weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf wraps any integer day into 0..6 and returns its key.
func WeekdayOf(day time.Weekday) Weekday {
	return Weekdays[WrapDay(day)]
}

// WrapDay maps day into 0..6, so -1 is Saturday and 7 is Sunday.
func WrapDay(day time.Weekday) time.Weekday {
	return ((day % 7) + 7) % 7
}

// ParseWeekday returns the time.Weekday for a schedule key.
func ParseWeekday(key string) (time.Weekday, bool) {
	for i, w := range Weekdays {
		if string(w) == key {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// ScheduleEntry is one airing slot of a program on one weekday.
// End at or before Start means the slot runs past midnight into the next day.
type ScheduleEntry struct {
	ID        int    `db:"id"         json:"-"                 yaml:"-"`
	Day       string `db:"weekday"    json:"-"                 yaml:"-"`
	ProgramID string `db:"program_id" json:"program_id"        yaml:"program_id"`
	Start     string `db:"start_time" json:"start"             yaml:"start"`
	End       string `db:"end_time"   json:"end"               yaml:"end"`
	Position  int    `db:"position"   json:"-"                 yaml:"-"`
}

// Schedule maps each weekday to the slots airing that day.
type Schedule map[Weekday][]ScheduleEntry

// Count returns the number of entries across the week.
func (s Schedule) Count() int {
	n := 0
	for _, entries := range s {
		n += len(entries)
	}
	return n
}

package schedule

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

type ProgramForDay struct {
	Airing
	Description         *string `json:"description,omitempty"`
	ExtendedDescription *string `json:"extended_description,omitempty"`
	IsActive            bool    `json:"is_active"`
}

type DayWithPrograms struct {
	Day      model.Weekday   `json:"day"`
	Index    time.Weekday    `json:"index"`
	IsToday  bool            `json:"is_today"`
	Programs []ProgramForDay `json:"programs"`
}

type Slot struct {
	Day       model.Weekday `json:"day"`
	Start     string        `json:"start"`
	End       string        `json:"end"`
	TimeRange string        `json:"time_range"`
}

type ProgramWithSlots struct {
	ProgramID           string  `json:"program_id"`
	Name                string  `json:"name"`
	LogoURL             *string `json:"logo_url"`
	Description         *string `json:"description,omitempty"`
	ExtendedDescription *string `json:"extended_description,omitempty"`
	Slots               []Slot  `json:"slots"`
	IsLive              bool    `json:"is_live"`
}

// ListDay lists a day's slots in start order. Only slots of today can be
// flagged active; yesterday's spill past midnight is not reported here.
func ListDay(s model.Schedule, programs []model.Program, day, today time.Weekday, t int) []ProgramForDay {
	slots := daySlots(s, day)
	if len(slots) == 0 {
		return nil
	}
	t = normalizeMinutes(t)
	isToday := model.WrapDay(day) == model.WrapDay(today)

	out := make([]ProgramForDay, 0, len(slots))
	for _, sl := range slots {
		item := ProgramForDay{
			Airing:   airingOf(sl.entry, programs),
			IsActive: isToday && sl.activeAt(t),
		}
		if p, ok := findProgram(programs, sl.entry.ProgramID); ok {
			item.Description = optional(p.Description)
			item.ExtendedDescription = optional(p.ExtendedDescription)
		}
		out = append(out, item)
	}
	return out
}

// ListWeekFromToday walks seven days starting at today, skipping empty days.
func ListWeekFromToday(s model.Schedule, programs []model.Program, today time.Weekday, t int) []DayWithPrograms {
	if len(s) == 0 {
		return nil
	}
	today = model.WrapDay(today)

	var out []DayWithPrograms
	for offset := time.Weekday(0); offset < 7; offset++ {
		day := model.WrapDay(today + offset)
		items := ListDay(s, programs, day, today, t)
		if len(items) == 0 {
			continue
		}
		out = append(out, DayWithPrograms{
			Day:      model.WeekdayOf(day),
			Index:    day,
			IsToday:  offset == 0,
			Programs: items,
		})
	}
	return out
}

// ListAllProgramsWithSlots groups every slot of the week by program and
// sorts the programs by name, ignoring case.
func ListAllProgramsWithSlots(s model.Schedule, programs []model.Program, today time.Weekday, t int) []ProgramWithSlots {
	if len(s) == 0 {
		return nil
	}
	t = normalizeMinutes(t)
	today = model.WrapDay(today)
	yesterday := model.WrapDay(today - 1)

	index := map[string]int{}
	var out []ProgramWithSlots
	for day := time.Sunday; day <= time.Saturday; day++ {
		for _, sl := range daySlots(s, day) {
			i, seen := index[sl.entry.ProgramID]
			if !seen {
				i = len(out)
				index[sl.entry.ProgramID] = i
				item := ProgramWithSlots{ProgramID: sl.entry.ProgramID}
				if p, ok := findProgram(programs, sl.entry.ProgramID); ok {
					item.Name = p.Name
					item.LogoURL = optional(p.LogoURL)
					item.Description = optional(p.Description)
					item.ExtendedDescription = optional(p.ExtendedDescription)
				}
				out = append(out, item)
			}
			out[i].Slots = append(out[i].Slots, Slot{
				Day:       model.WeekdayOf(day),
				Start:     sl.entry.Start,
				End:       sl.entry.End,
				TimeRange: TimeRange(sl.entry),
			})
			if (day == today && sl.activeAt(t)) || (day == yesterday && sl.spillsInto(t)) {
				out[i].IsLive = true
			}
		}
	}

	// collators keep scratch buffers, so one per call
	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

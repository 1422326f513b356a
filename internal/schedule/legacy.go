package schedule

import (
	"strings"
	"time"

	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

// LegacyEntry is the older flat slot format that carried the program name inline.
type LegacyEntry struct {
	Name  string `json:"name"  yaml:"name"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end"   yaml:"end"`
}

// MigrateLegacy turns a flat schedule into the relational form. Slots with
// the same trimmed name share one program; newID mints the program ids.
func MigrateLegacy(legacy map[model.Weekday][]LegacyEntry, newID func() string) (model.Schedule, []model.Program) {
	out := model.Schedule{}
	var programs []model.Program
	byName := map[string]string{}

	for day := time.Sunday; day <= time.Saturday; day++ {
		key := model.WeekdayOf(day)
		for _, le := range legacy[key] {
			name := strings.TrimSpace(le.Name)
			id, ok := byName[name]
			if !ok {
				id = newID()
				byName[name] = id
				programs = append(programs, model.Program{ID: id, Name: name})
			}
			out[key] = append(out[key], model.ScheduleEntry{ProgramID: id, Start: le.Start, End: le.End})
		}
	}
	return out, programs
}

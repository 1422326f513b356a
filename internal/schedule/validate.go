package schedule

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Violation points at one offending field of the admin form.
// Index is the position in the submitted list, not in start order.
type Violation struct {
	Day     model.Weekday `json:"day,omitempty"`
	Index   int           `json:"index"`
	Field   string        `json:"field"`
	Message string        `json:"message"`
}

func (v Violation) Error() string {
	if v.Day == "" {
		return fmt.Sprintf("#%d %s: %s", v.Index, v.Field, v.Message)
	}
	return fmt.Sprintf("%s #%d %s: %s", v.Day, v.Index, v.Field, v.Message)
}

type Violations []Violation

func (vs Violations) Error() string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.Error()
	}
	return strings.Join(parts, "; ")
}

// Err returns nil when there is nothing to report.
func (vs Violations) Err() error {
	if len(vs) == 0 {
		return nil
	}
	return vs
}

type checked struct {
	index int
	slot  slot
}

// Validate applies the data-entry rules for a weekly schedule: 24-hour HH:MM
// times, start different from end, a known program, no overlap inside a day
// and no slot running past midnight into a slot of the next day.
func Validate(s model.Schedule, programs []model.Program) Violations {
	var out Violations
	valid := make([][]checked, 7)

	for day := time.Sunday; day <= time.Saturday; day++ {
		key := model.WeekdayOf(day)
		for i, e := range s[key] {
			add := func(field, msg string) {
				out = append(out, Violation{Day: key, Index: i, Field: field, Message: msg})
			}
			if e.ProgramID == "" {
				add("program_id", "program is required")
			} else if _, ok := findProgram(programs, e.ProgramID); !ok {
				add("program_id", fmt.Sprintf("unknown program %q", e.ProgramID))
			}
			startOK := clockPattern.MatchString(e.Start)
			endOK := clockPattern.MatchString(e.End)
			if !startOK {
				add("start", "must be a 24-hour HH:MM time")
			}
			if !endOK {
				add("end", "must be a 24-hour HH:MM time")
			}
			if !startOK || !endOK {
				continue
			}
			if e.Start == e.End {
				add("end", "must differ from start")
				continue
			}
			valid[day] = append(valid[day], checked{
				index: i,
				slot:  slot{entry: e, day: day, start: ParseClock(e.Start), end: ParseClock(e.End)},
			})
		}
	}

	for day := time.Sunday; day <= time.Saturday; day++ {
		key := model.WeekdayOf(day)
		slots := valid[day]
		for j := range slots {
			for i := 0; i < j; i++ {
				a, b := slots[i].slot, slots[j].slot
				if a.start < sameDayEnd(b) && b.start < sameDayEnd(a) {
					out = append(out, Violation{
						Day:     key,
						Index:   slots[j].index,
						Field:   "start",
						Message: fmt.Sprintf("overlaps %s", TimeRange(a.entry)),
					})
				}
			}
		}

		next := model.WrapDay(day + 1)
		for _, c := range slots {
			if !c.slot.crossesMidnight() {
				continue
			}
			for _, n := range valid[next] {
				if n.slot.start < c.slot.end {
					out = append(out, Violation{
						Day:     key,
						Index:   c.index,
						Field:   "end",
						Message: fmt.Sprintf("runs into %s %s", model.WeekdayOf(next), TimeRange(n.slot.entry)),
					})
				}
			}
		}
	}
	return out
}

// sameDayEnd is where a slot stops occupying its own day.
func sameDayEnd(s slot) int {
	if s.crossesMidnight() {
		return minutesPerDay
	}
	return s.end
}

// ValidatePrograms requires unique non-empty ids and a name on every program.
func ValidatePrograms(programs []model.Program) Violations {
	var out Violations
	seen := map[string]bool{}
	for i, p := range programs {
		switch {
		case p.ID == "":
			out = append(out, Violation{Index: i, Field: "id", Message: "id is required"})
		case seen[p.ID]:
			out = append(out, Violation{Index: i, Field: "id", Message: fmt.Sprintf("duplicate id %q", p.ID)})
		}
		seen[p.ID] = true
		if !p.Complete() {
			out = append(out, Violation{Index: i, Field: "name", Message: "name is required"})
		}
	}
	return out
}

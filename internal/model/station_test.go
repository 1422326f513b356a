package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStationSanitizeKeepsValidSettings(t *testing.T) {
	s := Station{ThemeColor: "teal", Visualizer: "bars", TimezoneOffset: 5.5}

	replaced := s.Sanitize()

	assert.Empty(t, replaced)
	assert.Equal(t, "teal", s.ThemeColor)
	assert.Equal(t, "bars", s.Visualizer)
	assert.Equal(t, 5.5, s.TimezoneOffset)
}

func TestStationSanitizeFallsBack(t *testing.T) {
	empty := ""
	s := Station{ThemeColor: "magenta", Visualizer: "", TimezoneOffset: 15, Timezone: &empty}

	replaced := s.Sanitize()

	assert.Equal(t, []string{"theme_color", "visualizer", "timezone_offset"}, replaced)
	assert.Equal(t, DefaultThemeColor, s.ThemeColor)
	assert.Equal(t, DefaultVisualizer, s.Visualizer)
	assert.Equal(t, 0.0, s.TimezoneOffset)
	assert.Nil(t, s.Timezone)
}

func TestValidOffset(t *testing.T) {
	cases := map[float64]bool{
		-12:         true,
		14:          true,
		0:           true,
		-6:          true,
		5.75:        true,
		-12.5:       false,
		14.25:       false,
		math.NaN():  false,
		math.Inf(1): false,
	}
	for in, want := range cases {
		assert.Equal(t, want, ValidOffset(in), "offset %v", in)
	}
}

func TestWeekdayHelpers(t *testing.T) {
	assert.Equal(t, Sunday, WeekdayOf(0))
	assert.Equal(t, Saturday, WeekdayOf(-1))
	assert.Equal(t, Sunday, WeekdayOf(7))
	assert.Equal(t, time.Weekday(2), WrapDay(9))

	day, ok := ParseWeekday("wednesday")
	assert.True(t, ok)
	assert.Equal(t, time.Wednesday, day)

	_, ok = ParseWeekday("Wednesday")
	assert.False(t, ok)
}

func TestScheduleCount(t *testing.T) {
	s := Schedule{
		Monday:  {{ProgramID: "a"}, {ProgramID: "b"}},
		Tuesday: {{ProgramID: "c"}},
	}
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, 0, Schedule(nil).Count())
}

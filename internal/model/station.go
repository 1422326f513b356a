package model

import (
	"math"
	"time"
)

const (
	DefaultThemeColor = "neutral"
	DefaultVisualizer = "oscilloscope"

	MinTimezoneOffset = -12.0
	MaxTimezoneOffset = 14.0
)

// ThemeColors and Visualizers are the only values the player understands.
var (
	ThemeColors = []string{"neutral", "red", "orange", "amber", "green", "teal", "blue", "purple"}
	Visualizers = []string{"oscilloscope", "bars", "wave", "circle"}
)

// Station holds the settings of the single station served by this instance.
type Station struct {
	ID              int       `db:"id"               json:"-"                          yaml:"-"`
	StreamURL       string    `db:"stream_url"       json:"stream_url"                 yaml:"stream_url"`
	SiteTitle       string    `db:"site_title"       json:"site_title"                 yaml:"site_title"`
	BackgroundImage *string   `db:"background_image" json:"background_image,omitempty" yaml:"background_image,omitempty"`
	LogoImage       *string   `db:"logo_image"       json:"logo_image,omitempty"       yaml:"logo_image,omitempty"`
	ThemeColor      string    `db:"theme_color"      json:"theme_color"                yaml:"theme_color"`
	Visualizer      string    `db:"visualizer"       json:"visualizer"                 yaml:"visualizer"`
	TimezoneOffset  float64   `db:"timezone_offset"  json:"timezone_offset"            yaml:"timezone_offset"`
	Timezone        *string   `db:"timezone"         json:"timezone,omitempty"         yaml:"timezone,omitempty"`
	UpdatedAt       time.Time `db:"updated_at"       json:"updated_at"                 yaml:"-"`
}

// Sanitize replaces out-of-range settings with their safe defaults and
// returns the names of the fields it replaced.
func (s *Station) Sanitize() []string {
	var replaced []string
	if !contains(ThemeColors, s.ThemeColor) {
		s.ThemeColor = DefaultThemeColor
		replaced = append(replaced, "theme_color")
	}
	if !contains(Visualizers, s.Visualizer) {
		s.Visualizer = DefaultVisualizer
		replaced = append(replaced, "visualizer")
	}
	if !ValidOffset(s.TimezoneOffset) {
		s.TimezoneOffset = 0
		replaced = append(replaced, "timezone_offset")
	}
	if s.Timezone != nil && *s.Timezone == "" {
		s.Timezone = nil
	}
	return replaced
}

// Saved reports whether the settings were ever written, by an admin or a seed.
// Defaults for a missing row carry a zero UpdatedAt.
func (s Station) Saved() bool {
	return !s.UpdatedAt.IsZero()
}

// ValidOffset reports whether hours is a finite offset in [-12, 14].
func ValidOffset(hours float64) bool {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return false
	}
	return hours >= MinTimezoneOffset && hours <= MaxTimezoneOffset
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

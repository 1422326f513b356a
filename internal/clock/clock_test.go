package clock

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

func at(value string) *Resolver {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return NewResolver(fixedClock{t}, WithHostLocation(time.UTC))
}

func TestResolveByOffset(t *testing.T) {
	tests := []struct {
		name   string
		now    string
		offset float64
		want   Moment
	}{
		{"utc", "2024-01-02T03:30:00Z", 0, Moment{time.Tuesday, 210}},
		{"behind utc crosses back a day", "2024-01-02T03:30:00Z", -6, Moment{time.Monday, 1290}},
		{"fractional offset crosses forward", "2024-01-01T20:00:00Z", 5.5, Moment{time.Tuesday, 90}},
		{"saturday wraps to sunday", "2024-01-06T23:00:00Z", 2, Moment{time.Sunday, 60}},
		{"last minute of day", "2024-01-02T23:59:59Z", 0, Moment{time.Tuesday, 1439}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, at(tt.now).ResolveByOffset(tt.offset))
		})
	}
}

func TestResolveByOffsetIgnoresHostZone(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 30, 0, 0, time.FixedZone("host", 9*3600))
	r := NewResolver(fixedClock{now})

	assert.Equal(t, Moment{time.Monday, 1110}, r.ResolveByOffset(0))
}

func TestResolveByOffsetFallsBackToUTC(t *testing.T) {
	r := at("2024-03-10T12:15:00Z")
	utc := r.ResolveByOffset(0)

	assert.Equal(t, utc, r.ResolveByOffset(math.NaN()))
	assert.Equal(t, utc, r.ResolveByOffset(math.Inf(1)))
	assert.Equal(t, utc, r.ResolveByOffset(math.Inf(-1)))
}

func TestResolveByOffsetOutOfRangeReadsAsUTC(t *testing.T) {
	r := at("2024-03-10T12:15:00Z")
	utc := r.ResolveByOffset(0)

	for _, offset := range []float64{1e300, -1e300, 14.5, -12.5, math.MaxFloat64} {
		assert.Equal(t, utc, r.ResolveByOffset(offset), "offset %v", offset)
	}
	assert.Equal(t, Moment{time.Monday, 135}, r.ResolveByOffset(14), "upper bound is still honoured")
	assert.Equal(t, Moment{time.Sunday, 15}, r.ResolveByOffset(-12), "lower bound is still honoured")
}

func TestResolveByName(t *testing.T) {
	r := at("2024-07-01T22:30:00Z")

	assert.Equal(t, Moment{time.Tuesday, 30}, r.ResolveByName("Europe/Madrid"))
	assert.Equal(t, Moment{time.Monday, 1110}, r.ResolveByName("America/New_York"))
}

func TestResolveByNameFallsBackToUTC(t *testing.T) {
	r := at("2024-07-01T22:30:00Z")
	utc := r.ResolveByOffset(0)

	for _, name := range []string{"", "Local", "Mars/Olympus_Mons", "not a zone"} {
		assert.Equal(t, utc, r.ResolveByName(name), "zone %q", name)
	}
}

func TestOffsetHours(t *testing.T) {
	winter := at("2024-01-15T12:00:00Z")
	summer := at("2024-07-15T12:00:00Z")

	assert.Equal(t, 1.0, winter.OffsetHours("Europe/Madrid"))
	assert.Equal(t, 2.0, summer.OffsetHours("Europe/Madrid"))
	assert.Equal(t, 5.5, summer.OffsetHours("Asia/Kolkata"))
	assert.Equal(t, -6.0, winter.OffsetHours("America/Chicago"))
	assert.Equal(t, 0.0, winter.OffsetHours("Nowhere/Special"))
}

func TestHostOffsetHours(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 30, 0, 0, time.UTC)
	r := NewResolver(fixedClock{now}, WithHostLocation(time.FixedZone("EST", -5*3600)))

	assert.Equal(t, -5.0, r.HostOffsetHours())
	assert.Equal(t, 0.0, NewResolver(fixedClock{now}, WithHostLocation(nil)).HostOffsetHours())
}

func TestDifferenceHours(t *testing.T) {
	assert.Equal(t, 7.0, DifferenceHours(2, -5))
	assert.Equal(t, -3.5, DifferenceHours(2, 5.5))
}

func TestResolvePrefersZoneName(t *testing.T) {
	r := at("2024-07-01T22:30:00Z")
	zone := "Europe/Madrid"
	blank := ""

	assert.Equal(t, Moment{time.Tuesday, 30}, r.Resolve(model.Station{TimezoneOffset: -6, Timezone: &zone}))
	assert.Equal(t, Moment{time.Monday, 990}, r.Resolve(model.Station{TimezoneOffset: -6}))
	assert.Equal(t, Moment{time.Monday, 990}, r.Resolve(model.Station{TimezoneOffset: -6, Timezone: &blank}))
}

func TestResolveUnknownZoneUsesOffset(t *testing.T) {
	r := at("2024-07-01T12:00:00Z")
	typo := "Europe/Madird"

	assert.Equal(t, Moment{time.Monday, 840}, r.Resolve(model.Station{TimezoneOffset: 2, Timezone: &typo}))
}

func TestMomentWeekday(t *testing.T) {
	assert.Equal(t, model.Friday, Moment{Day: time.Friday}.Weekday())
}

func TestKnownZone(t *testing.T) {
	assert.True(t, KnownZone("Europe/Madrid"))
	assert.True(t, KnownZone("UTC"))
	assert.False(t, KnownZone(""))
	assert.False(t, KnownZone("Local"))
	assert.False(t, KnownZone("Mars/Olympus_Mons"))
}

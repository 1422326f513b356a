package packets

import (
	"github.com/Nixie-Tech-LLC/onair/internal/model"
	"github.com/Nixie-Tech-LLC/onair/internal/schedule"
	"github.com/Nixie-Tech-LLC/onair/internal/station"
)

// snapshot plus where it came from: "cache" or "live"
type NowResponse struct {
	station.Snapshot
	Source string `json:"source"`
}

type DayResponse struct {
	Day      model.Weekday            `json:"day"`
	IsToday  bool                     `json:"is_today"`
	Programs []schedule.ProgramForDay `json:"programs"`
}

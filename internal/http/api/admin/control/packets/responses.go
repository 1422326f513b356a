package packets

import (
	"github.com/Nixie-Tech-LLC/onair/internal/model"
	"github.com/Nixie-Tech-LLC/onair/internal/schedule"
)

type StationResponse struct {
	StreamURL       string   `json:"stream_url"`
	SiteTitle       string   `json:"site_title"`
	BackgroundImage *string  `json:"background_image"`
	LogoImage       *string  `json:"logo_image"`
	ThemeColor      string   `json:"theme_color"`
	Visualizer      string   `json:"visualizer"`
	TimezoneOffset  float64  `json:"timezone_offset"`
	Timezone        *string  `json:"timezone"`
	UpdatedAt       string   `json:"updated_at"`
	Adjusted        []string `json:"adjusted,omitempty"`
}

// ProgramResponse mirrors model.Program but flattens times to RFC3339
type ProgramResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	LogoURL             *string `json:"logo_url"`
	Description         *string `json:"description"`
	ExtendedDescription *string `json:"extended_description"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

type DeleteProgramResponse struct {
	ID string `json:"id"`
	// OrphanedSlots counts schedule entries still pointing at the deleted program.
	OrphanedSlots int `json:"orphaned_slots"`
}

type SlotResponse struct {
	ProgramID string `json:"program_id"`
	Start     string `json:"start"`
	End       string `json:"end"`
	TimeRange string `json:"time_range"`
}

type ScheduleResponse struct {
	Schedule map[model.Weekday][]SlotResponse `json:"schedule"`
	Slots    int                              `json:"slots"`
}

type ValidationResponse struct {
	Valid      bool                `json:"valid"`
	Violations schedule.Violations `json:"violations"`
}

type UploadResponse struct {
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

package packets

// body for PUT /station; the whole settings row is replaced
type UpdateStationRequest struct {
	StreamURL       string   `json:"stream_url" binding:"required,url"`
	SiteTitle       string   `json:"site_title" binding:"required"`
	BackgroundImage *string  `json:"background_image"`
	LogoImage       *string  `json:"logo_image"`
	ThemeColor      string   `json:"theme_color"`
	Visualizer      string   `json:"visualizer"`
	TimezoneOffset  *float64 `json:"timezone_offset"`
	// Timezone wins over TimezoneOffset when set; the offset is then derived from it.
	Timezone *string `json:"timezone"`
}

// body for POST /programs and PUT /programs/:id
type ProgramRequest struct {
	Name                string  `json:"name" binding:"required"`
	LogoURL             *string `json:"logo_url"`
	Description         *string `json:"description"`
	ExtendedDescription *string `json:"extended_description"`
}

type SlotRequest struct {
	ProgramID string `json:"program_id"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

// body for PUT /schedule and POST /schedule/validate, keyed by weekday name
type ScheduleRequest struct {
	Schedule map[string][]SlotRequest `json:"schedule" binding:"required"`
}

package endpoints

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/onair/internal/clock"
	"github.com/Nixie-Tech-LLC/onair/internal/db"
	"github.com/Nixie-Tech-LLC/onair/internal/http/api"
	"github.com/Nixie-Tech-LLC/onair/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

type StationController struct {
	store     db.Store
	offsets   OffsetSource
	refresher Refresher
}

func NewStationController(store db.Store, offsets OffsetSource, refresher Refresher) *StationController {
	return &StationController{store: store, offsets: offsets, refresher: refresher}
}

func StationModule(store db.Store, offsets OffsetSource, refresher Refresher) api.Module {
	ctl := NewStationController(store, offsets, refresher)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/station", ctl.getStation)
		c.PUT("/station", ctl.updateStation)
	})
}

// GET /api/admin/station
func (s *StationController) getStation(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	st, err := s.store.GetStation()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load station"}
	}
	return stationResponse(st, st.Sanitize()), nil
}

// PUT /api/admin/station
func (s *StationController) updateStation(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.UpdateStationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	st := model.Station{
		StreamURL:       strings.TrimSpace(request.StreamURL),
		SiteTitle:       strings.TrimSpace(request.SiteTitle),
		BackgroundImage: nonEmpty(request.BackgroundImage),
		LogoImage:       nonEmpty(request.LogoImage),
		ThemeColor:      request.ThemeColor,
		Visualizer:      request.Visualizer,
	}
	if request.TimezoneOffset != nil {
		st.TimezoneOffset = *request.TimezoneOffset
	}
	if zone := nonEmpty(request.Timezone); zone != nil {
		if !clock.KnownZone(*zone) {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown timezone " + *zone}
		}
		st.Timezone = zone
		st.TimezoneOffset = s.offsets.OffsetHours(*zone)
	}

	adjusted := st.Sanitize()
	if len(adjusted) > 0 {
		log.Warn().Int("user_id", user.ID).Strs("fields", adjusted).Msg("station update adjusted to defaults")
	}

	saved, err := s.store.SaveStation(st)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save station"}
	}
	s.refresher.Refresh()

	log.Info().Int("user_id", user.ID).Msg("station settings updated")
	return stationResponse(saved, adjusted), nil
}

func stationResponse(st model.Station, adjusted []string) packets.StationResponse {
	return packets.StationResponse{
		StreamURL:       st.StreamURL,
		SiteTitle:       st.SiteTitle,
		BackgroundImage: st.BackgroundImage,
		LogoImage:       st.LogoImage,
		ThemeColor:      st.ThemeColor,
		Visualizer:      st.Visualizer,
		TimezoneOffset:  st.TimezoneOffset,
		Timezone:        st.Timezone,
		UpdatedAt:       st.UpdatedAt.Format(time.RFC3339),
		Adjusted:        adjusted,
	}
}

// nonEmpty trims v and turns blank strings into nil.
func nonEmpty(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

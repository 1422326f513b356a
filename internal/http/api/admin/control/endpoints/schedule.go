package endpoints

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/onair/internal/db"
	"github.com/Nixie-Tech-LLC/onair/internal/http/api"
	"github.com/Nixie-Tech-LLC/onair/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/onair/internal/model"
	"github.com/Nixie-Tech-LLC/onair/internal/schedule"
)

type ScheduleController struct {
	store     db.Store
	refresher Refresher
}

func NewScheduleController(store db.Store, refresher Refresher) *ScheduleController {
	return &ScheduleController{store: store, refresher: refresher}
}

func ScheduleModule(store db.Store, refresher Refresher) api.Module {
	ctl := NewScheduleController(store, refresher)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/schedule", ctl.getSchedule)
		c.PUT("/schedule", ctl.replaceSchedule)
		c.POST("/schedule/validate", ctl.validateSchedule)
	})
}

// GET /api/admin/schedule
func (s *ScheduleController) getSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	sched, err := s.store.GetSchedule()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load schedule"}
	}
	return scheduleResponse(sched), nil
}

// PUT /api/admin/schedule
func (s *ScheduleController) replaceSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	sched, violations, apiErr := s.bindAndValidate(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if len(violations) > 0 {
		log.Warn().Int("user_id", user.ID).Int("violations", len(violations)).Msg("schedule rejected")
		return nil, &api.APIError{
			Code:    http.StatusUnprocessableEntity,
			Message: "schedule is invalid",
			Details: violations,
		}
	}

	if err := s.store.ReplaceSchedule(sched); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save schedule"}
	}
	s.refresher.Refresh()

	log.Info().Int("user_id", user.ID).Int("slots", sched.Count()).Msg("schedule replaced")
	return scheduleResponse(sched), nil
}

// POST /api/admin/schedule/validate
func (s *ScheduleController) validateSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	_, violations, apiErr := s.bindAndValidate(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if violations == nil {
		violations = schedule.Violations{}
	}
	return packets.ValidationResponse{Valid: len(violations) == 0, Violations: violations}, nil
}

func (s *ScheduleController) bindAndValidate(ctx *gin.Context) (model.Schedule, schedule.Violations, *api.APIError) {
	var request packets.ScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	sched := model.Schedule{}
	for key, slots := range request.Schedule {
		day, ok := model.ParseWeekday(key)
		if !ok {
			return nil, nil, &api.APIError{Code: http.StatusBadRequest, Message: fmt.Sprintf("unknown weekday %q", key)}
		}
		weekday := model.WeekdayOf(day)
		for _, slot := range slots {
			sched[weekday] = append(sched[weekday], model.ScheduleEntry{
				ProgramID: strings.TrimSpace(slot.ProgramID),
				Start:     strings.TrimSpace(slot.Start),
				End:       strings.TrimSpace(slot.End),
			})
		}
	}

	programs, err := s.store.ListPrograms()
	if err != nil {
		return nil, nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load programs"}
	}
	return sched, schedule.Validate(sched, programs), nil
}

func scheduleResponse(sched model.Schedule) packets.ScheduleResponse {
	out := make(map[model.Weekday][]packets.SlotResponse, len(model.Weekdays))
	for day := time.Sunday; day <= time.Saturday; day++ {
		key := model.WeekdayOf(day)
		slots := make([]packets.SlotResponse, 0, len(sched[key]))
		for _, e := range sched[key] {
			slots = append(slots, packets.SlotResponse{
				ProgramID: e.ProgramID,
				Start:     e.Start,
				End:       e.End,
				TimeRange: schedule.TimeRange(e),
			})
		}
		out[key] = slots
	}
	return packets.ScheduleResponse{Schedule: out, Slots: sched.Count()}
}

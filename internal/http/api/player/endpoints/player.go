package endpoints

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/onair/internal/http/api"
	"github.com/Nixie-Tech-LLC/onair/internal/http/api/player/packets"
	"github.com/Nixie-Tech-LLC/onair/internal/model"
	"github.com/Nixie-Tech-LLC/onair/internal/schedule"
	"github.com/Nixie-Tech-LLC/onair/internal/station"
)

const cacheReadTimeout = 500 * time.Millisecond

// SnapshotReader reads the snapshot the poller cached.
type SnapshotReader interface {
	Get(ctx context.Context) (station.Snapshot, error)
}

type PlayerController struct {
	svc   *station.Service
	cache SnapshotReader
}

func NewPlayerController(svc *station.Service, cache SnapshotReader) *PlayerController {
	return &PlayerController{svc: svc, cache: cache}
}

// PlayerModule mounts the public listener endpoints. cache may be nil.
func PlayerModule(svc *station.Service, cache SnapshotReader) api.Module {
	ctl := NewPlayerController(svc, cache)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/config", ctl.getConfig)
		c.PUBLIC_GET("/now", ctl.getNow)
		c.PUBLIC_GET("/schedule/week", ctl.getWeek)
		c.PUBLIC_GET("/schedule/:day", ctl.getDay)
		c.PUBLIC_GET("/programs", ctl.getPrograms)
		c.PUBLIC_GET("/time", ctl.getTime)
	})
}

// GET /api/player/config
func (p *PlayerController) getConfig(ctx *gin.Context) (any, *api.APIError) {
	cfg, err := p.svc.Config()
	if err != nil {
		return nil, internalError("config", err)
	}
	return cfg, nil
}

// GET /api/player/now
func (p *PlayerController) getNow(ctx *gin.Context) (any, *api.APIError) {
	if snap, ok := p.cached(ctx); ok {
		return packets.NowResponse{Snapshot: snap, Source: "cache"}, nil
	}
	snap, err := p.svc.Snapshot()
	if err != nil {
		return nil, internalError("now", err)
	}
	return packets.NowResponse{Snapshot: snap, Source: "live"}, nil
}

// cached returns the poller's snapshot when it was computed in the current minute.
func (p *PlayerController) cached(ctx *gin.Context) (station.Snapshot, bool) {
	if p.cache == nil {
		return station.Snapshot{}, false
	}
	c, cancel := context.WithTimeout(ctx.Request.Context(), cacheReadTimeout)
	defer cancel()

	snap, err := p.cache.Get(c)
	if err != nil {
		log.Debug().Err(err).Msg("snapshot cache miss")
		return station.Snapshot{}, false
	}
	now := p.svc.Now().UTC().Truncate(time.Minute)
	if !snap.GeneratedAt.UTC().Truncate(time.Minute).Equal(now) {
		return station.Snapshot{}, false
	}
	return snap, true
}

// GET /api/player/schedule/week
func (p *PlayerController) getWeek(ctx *gin.Context) (any, *api.APIError) {
	week, err := p.svc.Week()
	if err != nil {
		return nil, internalError("week", err)
	}
	if week == nil {
		week = []schedule.DayWithPrograms{}
	}
	return week, nil
}

// GET /api/player/schedule/:day, where day is a weekday name or "today"
func (p *PlayerController) getDay(ctx *gin.Context) (any, *api.APIError) {
	key := strings.ToLower(ctx.Param("day"))

	cfg, err := p.svc.Config()
	if err != nil {
		return nil, internalError("day", err)
	}
	now := p.svc.Moment(cfg.Station)

	day := now.Day
	if key != "today" {
		var ok bool
		if day, ok = model.ParseWeekday(key); !ok {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: fmt.Sprintf("unknown weekday %q", key)}
		}
	}

	programs := schedule.ListDay(cfg.Schedule, cfg.Programs, day, now.Day, now.Minutes)
	if programs == nil {
		programs = []schedule.ProgramForDay{}
	}
	return packets.DayResponse{
		Day:      model.WeekdayOf(day),
		IsToday:  day == now.Day,
		Programs: programs,
	}, nil
}

// GET /api/player/programs
func (p *PlayerController) getPrograms(ctx *gin.Context) (any, *api.APIError) {
	programs, err := p.svc.Programs()
	if err != nil {
		return nil, internalError("programs", err)
	}
	if programs == nil {
		programs = []schedule.ProgramWithSlots{}
	}
	return programs, nil
}

// GET /api/player/time
func (p *PlayerController) getTime(ctx *gin.Context) (any, *api.APIError) {
	info, err := p.svc.Time()
	if err != nil {
		return nil, internalError("time", err)
	}
	return info, nil
}

func internalError(endpoint string, err error) *api.APIError {
	log.Error().Err(err).Str("endpoint", endpoint).Msg("[player] request failed")
	return &api.APIError{Code: http.StatusInternalServerError, Message: "station data unavailable"}
}

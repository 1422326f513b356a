package endpoints

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/onair/internal/db"
	"github.com/Nixie-Tech-LLC/onair/internal/http/api"
	"github.com/Nixie-Tech-LLC/onair/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

type ProgramController struct {
	store     db.Store
	refresher Refresher
}

func NewProgramController(store db.Store, refresher Refresher) *ProgramController {
	return &ProgramController{store: store, refresher: refresher}
}

func ProgramModule(store db.Store, refresher Refresher) api.Module {
	ctl := NewProgramController(store, refresher)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/programs", ctl.listPrograms)
		c.POST("/programs", ctl.createProgram)
		c.PUT("/programs/:id", ctl.updateProgram)
		c.DELETE("/programs/:id", ctl.deleteProgram)
	})
}

// GET /api/admin/programs
func (p *ProgramController) listPrograms(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := p.store.ListPrograms()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list programs"}
	}

	response := make([]packets.ProgramResponse, 0, len(list))
	for _, it := range list {
		response = append(response, programResponse(it))
	}
	return response, nil
}

// POST /api/admin/programs
func (p *ProgramController) createProgram(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	program, apiErr := bindProgram(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	program.ID = uuid.NewString()

	created, err := p.store.CreateProgram(program)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create program"}
	}
	p.refresher.Refresh()

	log.Info().Int("user_id", user.ID).Str("program_id", created.ID).Msg("program created")
	return programResponse(created), nil
}

// PUT /api/admin/programs/:id
func (p *ProgramController) updateProgram(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	program, apiErr := bindProgram(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	program.ID = ctx.Param("id")

	updated, err := p.store.UpdateProgram(program)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "program not found"}
	}
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update program"}
	}
	p.refresher.Refresh()

	return programResponse(updated), nil
}

// DELETE /api/admin/programs/:id
func (p *ProgramController) deleteProgram(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id := ctx.Param("id")

	err := p.store.DeleteProgram(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "program not found"}
	}
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete program"}
	}
	p.refresher.Refresh()

	orphaned := 0
	if sched, err := p.store.GetSchedule(); err == nil {
		for _, entries := range sched {
			for _, e := range entries {
				if e.ProgramID == id {
					orphaned++
				}
			}
		}
	}
	if orphaned > 0 {
		log.Warn().Str("program_id", id).Int("slots", orphaned).Msg("deleted program is still scheduled")
	}
	return packets.DeleteProgramResponse{ID: id, OrphanedSlots: orphaned}, nil
}

func bindProgram(ctx *gin.Context) (model.Program, *api.APIError) {
	var request packets.ProgramRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return model.Program{}, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return model.Program{}, &api.APIError{Code: http.StatusBadRequest, Message: "name is required"}
	}
	return model.Program{
		Name:                name,
		LogoURL:             nonEmpty(request.LogoURL),
		Description:         nonEmpty(request.Description),
		ExtendedDescription: nonEmpty(request.ExtendedDescription),
	}, nil
}

func programResponse(p model.Program) packets.ProgramResponse {
	return packets.ProgramResponse{
		ID:                  p.ID,
		Name:                p.Name,
		LogoURL:             p.LogoURL,
		Description:         p.Description,
		ExtendedDescription: p.ExtendedDescription,
		CreatedAt:           p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           p.UpdatedAt.Format(time.RFC3339),
	}
}

package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/onair/internal/http/middleware"
)

// Module attaches one feature's endpoints to a Controller.
type Module interface {
	Mount(c *Controller)
}

type ModuleFunc func(c *Controller)

func (f ModuleFunc) Mount(c *Controller) { f(c) }

// GroupConfig describes one mounted route group. The admin API mounts two
// groups on the same prefix: a public one for signup/login and an
// authenticated one for everything that edits the station.
type GroupConfig struct {
	Prefix     string
	Auth       bool
	SecretKey  string                // Auth only
	Users      middleware.UserLookup // Auth only
	Middleware []gin.HandlerFunc
}

// MountGroup creates the group under parent, applies cfg.Middleware in order,
// then the JWT check when cfg.Auth is set, and mounts every module on it.
// A group with Auth but no secret or user lookup is a wiring bug and stops
// the process.
func MountGroup(parent gin.IRouter, cfg GroupConfig, modules ...Module) *gin.RouterGroup {
	if cfg.Auth && (cfg.SecretKey == "" || cfg.Users == nil) {
		log.Fatal().Str("prefix", cfg.Prefix).Msg("api.MountGroup: auth group needs a secret key and a user lookup")
	}

	grp := parent.Group(cfg.Prefix, cfg.Middleware...)
	if cfg.Auth {
		grp.Use(middleware.JWTMiddleware(cfg.SecretKey, cfg.Users))
	}

	controller := &Controller{Group: grp}
	for _, m := range modules {
		m.Mount(controller)
	}

	log.Debug().
		Str("prefix", grp.BasePath()).
		Bool("auth", cfg.Auth).
		Int("modules", len(modules)).
		Msg("route group mounted")
	return grp
}

package main

import (
	"html/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/onair/internal/clock"
	"github.com/Nixie-Tech-LLC/onair/internal/config"
	"github.com/Nixie-Tech-LLC/onair/internal/db"
	"github.com/Nixie-Tech-LLC/onair/internal/http/api"
	authapi "github.com/Nixie-Tech-LLC/onair/internal/http/api/admin/auth/endpoints"
	adminapi "github.com/Nixie-Tech-LLC/onair/internal/http/api/admin/control/endpoints"
	playerapi "github.com/Nixie-Tech-LLC/onair/internal/http/api/player/endpoints"
	"github.com/Nixie-Tech-LLC/onair/internal/onair"
	"github.com/Nixie-Tech-LLC/onair/internal/station"
	"github.com/Nixie-Tech-LLC/onair/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	store db.Store,
	storageSystem storage.Storage,
	tmpl *template.Template,
	svc *station.Service,
	resolver *clock.Resolver,
	poller *onair.Poller,
	cache playerapi.SnapshotReader,
) {
	r.SetHTMLTemplate(tmpl)
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		authapi.AuthPublicModule(cfg.JWTSecret, cfg.InviteCode, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
		Users:     store,
	},
		append(
			adminapi.ControlModules(store, storageSystem, resolver, poller),
			// session endpoints that require auth
			authapi.AuthSessionModule(cfg.JWTSecret, store),
		)...,
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/player",
	},
		playerapi.PlayerModule(svc, cache),
	)

	api.MountGroup(r, api.GroupConfig{}, playerapi.PageModule(svc))

	// Static content
	if !cfg.UseSpaces {
		r.Static(uploadsRoute, cfg.UploadDir)
	}
}

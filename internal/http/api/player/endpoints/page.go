package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/onair/internal/http/api"
	"github.com/Nixie-Tech-LLC/onair/internal/station"
)

// PageTemplate is the name the player page is parsed under.
const PageTemplate = "player.html"

// PageModule serves the server-rendered player at "/".
func PageModule(svc *station.Service) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.RAW_GET("/", func(ctx *gin.Context) {
			cfg, err := svc.Config()
			if err != nil {
				internalError("page", err)
				ctx.String(http.StatusServiceUnavailable, "station temporarily unavailable")
				return
			}
			ctx.HTML(http.StatusOK, PageTemplate, gin.H{
				"Title":   cfg.Station.SiteTitle,
				"Station": cfg.Station,
				"Config":  cfg,
			})
		})
	})
}

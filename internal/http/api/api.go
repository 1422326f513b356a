package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/onair/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

type APIError struct {
	Code    int
	Message string
	// Details is rendered next to the message, e.g. per-field violations.
	Details any
}

func (e *APIError) body() gin.H {
	if e.Details == nil {
		return gin.H{"error": e.Message}
	}
	return gin.H{"error": e.Message, "details": e.Details}
}

type HandlerFuncWithAuth func(ctx *gin.Context, user *model.User) (any, *APIError)
type HandlerFunc func(ctx *gin.Context) (any, *APIError)

func ResolveEndpointWithAuth(h HandlerFuncWithAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := middleware.GetCurrentUser(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, apiErr := h(ctx, user)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, apiErr.body())
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, apiErr.body())
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

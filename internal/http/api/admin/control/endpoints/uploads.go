package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/onair/internal/http/api"
	"github.com/Nixie-Tech-LLC/onair/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/onair/internal/model"
	"github.com/Nixie-Tech-LLC/onair/internal/storage"
)

type UploadController struct {
	storage storage.Storage
}

func UploadModule(storageSystem storage.Storage) api.Module {
	ctl := &UploadController{storage: storageSystem}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/uploads", ctl.uploadImage)
	})
}

// POST /api/admin/uploads (multipart: kind, file)
func (u *UploadController) uploadImage(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	kind, err := storage.ParseKind(ctx.PostForm("kind"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		log.Warn().Err(err).Msg("[uploads] uploadImage: missing file")
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "file is required"}
	}

	url, err := u.storage.SaveImage(kind, fileHeader)
	switch {
	case errors.Is(err, storage.ErrUnsupportedImage), errors.Is(err, storage.ErrTooLarge):
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	case err != nil:
		log.Error().Err(err).Msg("[uploads] uploadImage: save failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save file"}
	}

	log.Info().Int("user_id", user.ID).Str("kind", string(kind)).Str("url", url).Msg("image uploaded")
	return packets.UploadResponse{Kind: string(kind), URL: url}, nil
}

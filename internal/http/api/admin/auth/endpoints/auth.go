package endpoints

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/onair/internal/db"
	"github.com/Nixie-Tech-LLC/onair/internal/http/api"
	"github.com/Nixie-Tech-LLC/onair/internal/http/api/admin/auth/packets"
	"github.com/Nixie-Tech-LLC/onair/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

// AuthPublicModule mounts the unauthenticated auth endpoints. Signup only
// bootstraps the first admin, or admits another one holding inviteCode.
func AuthPublicModule(jwtSecret, inviteCode string, store db.Store) api.Module {
	ctl := newAccountManager(jwtSecret, inviteCode, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/auth/signup", ctl.signupStatus)
		c.PUBLIC_POST("/auth/signup", ctl.userSignup)
		c.PUBLIC_POST("/auth/login", ctl.userLogin)
	})
}

// AuthSessionModule mounts private session/profile endpoints (JWT required)
func AuthSessionModule(jwtSecret string, store db.Store) api.Module {
	ctl := newAccountManager(jwtSecret, "", store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/auth/current_profile", ctl.getCurrentProfile)
		c.PUT("/auth/current_profile", ctl.updateCurrentProfile)
	})
}

type AccountManager struct {
	jwtSecret  string
	inviteCode string
	store      db.Store
}

func newAccountManager(secret, inviteCode string, store db.Store) *AccountManager {
	return &AccountManager{jwtSecret: secret, inviteCode: inviteCode, store: store}
}

// GET /api/admin/auth/signup
func (a *AccountManager) signupStatus(ctx *gin.Context) (any, *api.APIError) {
	count, err := a.store.CountUsers()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not read signup status"}
	}
	return packets.SignupStatusResponse{Bootstrap: count == 0, InviteEnabled: a.inviteCode != ""}, nil
}

// POST /api/admin/auth/signup
func (a *AccountManager) userSignup(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SignupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	hashed, err := middleware.HashPassword(request.Password)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not hash password"}
	}

	var userID int
	if middleware.ValidInvite(a.inviteCode, request.InviteCode) {
		userID, err = a.store.CreateUser(request.Email, hashed, request.Name)
	} else {
		userID, err = a.store.CreateFirstUser(request.Email, hashed, request.Name)
	}
	if errors.Is(err, db.ErrSignupClosed) {
		log.Warn().Str("email", request.Email).Bool("invite_given", request.InviteCode != "").Msg("signup refused")
		return nil, &api.APIError{Code: http.StatusForbidden, Message: middleware.ErrInviteRequired.Error()}
	}
	if errors.Is(err, db.ErrDuplicateEmail) {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "email already registered"}
	}
	if err != nil {
		log.Error().Err(err).Str("email", request.Email).Msg("signup failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create user"}
	}

	token, err := middleware.GenerateJWT(userID, a.jwtSecret)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}

	return packets.TokenResponse{Token: token}, nil
}

// POST /api/admin/auth/login
func (a *AccountManager) userLogin(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	foundUser, err := a.store.GetUserByEmail(request.Email)
	if err != nil || foundUser == nil || !middleware.CheckPassword(foundUser.HashedPassword, request.Password) {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: middleware.ErrInvalidCredentials.Error()}
	}

	token, err := middleware.GenerateJWT(foundUser.ID, a.jwtSecret)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}

	return packets.TokenResponse{Token: token}, nil
}

// GET /api/admin/auth/current_profile
func (a *AccountManager) getCurrentProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return profileOf(user), nil
}

// PUT /api/admin/auth/current_profile
func (a *AccountManager) updateCurrentProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if request.Email != user.Email {
		if other, _ := a.store.GetUserByEmail(request.Email); other != nil {
			return nil, &api.APIError{Code: http.StatusConflict, Message: "email already in use"}
		}
	}

	if err := a.store.UpdateUserProfile(user.ID, request.Email, request.Name); err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("profile update failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update profile"}
	}

	updated, err := a.store.GetUserByID(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not fetch updated profile"}
	}

	return profileOf(updated), nil
}

func profileOf(user *model.User) packets.ProfileResponse {
	return packets.ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}


package api

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/onair/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

type oneUser struct{ user model.User }

func (u oneUser) GetUserByID(id int) (*model.User, error) {
	if id != u.user.ID {
		return nil, sql.ErrNoRows
	}
	out := u.user
	return &out, nil
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMountGroupPublicAndAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	users := oneUser{model.User{ID: 7, Email: "admin@example.com"}}

	var order []string
	tag := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) { order = append(order, name) }
	}

	MountGroup(r, GroupConfig{Prefix: "/api", Middleware: []gin.HandlerFunc{tag("a"), tag("b")}},
		ModuleFunc(func(c *Controller) {
			c.PUBLIC_GET("/ping", func(ctx *gin.Context) (any, *APIError) { return gin.H{"ok": true}, nil })
			c.PUBLIC_POST("/fail", func(ctx *gin.Context) (any, *APIError) {
				return nil, &APIError{Code: http.StatusTeapot, Message: "nope", Details: []string{"x"}}
			})
		}))
	grp := MountGroup(r, GroupConfig{Prefix: "/api", Auth: true, SecretKey: "s", Users: users},
		ModuleFunc(func(c *Controller) {
			c.GET("/me", func(ctx *gin.Context, user *model.User) (any, *APIError) {
				return gin.H{"email": user.Email}, nil
			})
		}))
	assert.Equal(t, "/api", grp.BasePath())

	w := get(r, "/api/ping", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.Equal(t, []string{"a", "b"}, order)

	req := httptest.NewRequest(http.MethodPost, "/api/fail", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.JSONEq(t, `{"error":"nope","details":["x"]}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/me", "").Code)

	token, err := middleware.GenerateJWT(7, "s")
	require.NoError(t, err)
	w = get(r, "/api/me", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"admin@example.com"}`, w.Body.String())
}

func TestResolveEndpointWithAuthNeedsUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	MountGroup(r, GroupConfig{}, ModuleFunc(func(c *Controller) {
		c.GET("/me", func(ctx *gin.Context, user *model.User) (any, *APIError) { return user, nil })
	}))

	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "").Code)
}

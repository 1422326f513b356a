package middleware

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

type users map[int]*model.User

func (u users) GetUserByID(id int) (*model.User, error) {
	if user, ok := u[id]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func init() {
	gin.SetMode(gin.TestMode)
}

func protected(secret string, lookup UserLookup) *gin.Engine {
	r := gin.New()
	r.GET("/me", JWTMiddleware(secret, lookup), func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	return r
}

func call(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTMiddleware(t *testing.T) {
	r := protected("s3cret", users{7: {ID: 7, Email: "dj@example.com"}})

	token, err := GenerateJWT(7, "s3cret")
	require.NoError(t, err)

	w := call(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"dj@example.com"}`, w.Body.String())
}

func TestJWTMiddlewareRejects(t *testing.T) {
	r := protected("s3cret", users{7: {ID: 7}})

	wrongKey, err := GenerateJWT(7, "other")
	require.NoError(t, err)
	unknownUser, err := GenerateJWT(8, "s3cret")
	require.NoError(t, err)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": 7,
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":      "",
		"not bearer":   "Token " + unknownUser,
		"wrong key":    "Bearer " + wrongKey,
		"unknown user": "Bearer " + unknownUser,
		"expired":      "Bearer " + expired,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, call(r, header).Code)
		})
	}
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "battery staple"))
}

func TestValidInvite(t *testing.T) {
	assert.True(t, ValidInvite("on-air-crew", "on-air-crew"))
	assert.False(t, ValidInvite("on-air-crew", "on-air"))
	assert.False(t, ValidInvite("on-air-crew", ""))
	assert.False(t, ValidInvite("", ""), "no configured code means no invites")
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/teapot", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teapot", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

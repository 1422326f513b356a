package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/onair/internal/clock"
	"github.com/Nixie-Tech-LLC/onair/internal/db"
	"github.com/Nixie-Tech-LLC/onair/internal/http/api"
	"github.com/Nixie-Tech-LLC/onair/internal/http/api/admin/auth/packets"
	control "github.com/Nixie-Tech-LLC/onair/internal/http/api/admin/control/endpoints"
)

const (
	secret = "test-secret"
	invite = "on-air-crew"
)

type noopRefresher struct{}

func (noopRefresher) Refresh() {}

// newRouter mounts auth next to the station settings module, the way the
// server does, so tests can check what a signup token is allowed to change.
func newRouter(store db.Store, inviteCode string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/admin"}, AuthPublicModule(secret, inviteCode, store))
	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: secret,
		Users:     store,
	},
		AuthSessionModule(secret, store),
		control.StationModule(store, clock.NewResolver(nil), noopRefresher{}),
	)
	return r
}

func send(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp packets.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestSignupLoginProfile(t *testing.T) {
	r := newRouter(db.NewMemoryStore(), "")

	token := tokenOf(t, send(r, http.MethodPost, "/api/admin/auth/signup", "", gin.H{
		"email": "dj@example.com", "password": "longenough", "name": "DJ",
	}))

	w := send(r, http.MethodGet, "/api/admin/auth/current_profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile packets.ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "dj@example.com", profile.Email)
	require.NotNil(t, profile.Name)
	assert.Equal(t, "DJ", *profile.Name)

	token = tokenOf(t, send(r, http.MethodPost, "/api/admin/auth/login", "", gin.H{
		"email": "dj@example.com", "password": "longenough",
	}))

	w = send(r, http.MethodPut, "/api/admin/auth/current_profile", token, gin.H{"email": "host@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "host@example.com", profile.Email)
	assert.Nil(t, profile.Name)
}

func TestSignupClosedAfterFirstAdmin(t *testing.T) {
	store := db.NewMemoryStore()
	r := newRouter(store, "")

	admin := tokenOf(t, send(r, http.MethodPost, "/api/admin/auth/signup", "", gin.H{
		"email": "admin@example.com", "password": "longenough",
	}))

	w := send(r, http.MethodPost, "/api/admin/auth/signup", "", gin.H{
		"email": "stranger@example.net", "password": "longenough",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "token")

	w = send(r, http.MethodPost, "/api/admin/auth/signup", "", gin.H{
		"email": "admin@example.com", "password": "longenough",
	})
	assert.Equal(t, http.StatusForbidden, w.Code, "registered emails are not revealed")

	w = send(r, http.MethodPut, "/api/admin/station", "", gin.H{
		"stream_url": "https://evil.example/stream", "site_title": "pwned",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	st, err := store.GetStation()
	require.NoError(t, err)
	assert.NotEqual(t, "pwned", st.SiteTitle)

	w = send(r, http.MethodPut, "/api/admin/station", admin, gin.H{
		"stream_url": "https://stream.example/live", "site_title": "Radio Uno",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	n, err := store.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSignupWithInviteCode(t *testing.T) {
	store := db.NewMemoryStore()
	r := newRouter(store, invite)

	tokenOf(t, send(r, http.MethodPost, "/api/admin/auth/signup", "", gin.H{
		"email": "admin@example.com", "password": "longenough",
	}))

	w := send(r, http.MethodPost, "/api/admin/auth/signup", "", gin.H{
		"email": "host@example.com", "password": "longenough", "invite_code": "guess",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	tokenOf(t, send(r, http.MethodPost, "/api/admin/auth/signup", "", gin.H{
		"email": "host@example.com", "password": "longenough", "invite_code": invite,
	}))

	w = send(r, http.MethodPost, "/api/admin/auth/signup", "", gin.H{
		"email": "host@example.com", "password": "longenough", "invite_code": invite,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignupStatus(t *testing.T) {
	r := newRouter(db.NewMemoryStore(), invite)

	status := func() packets.SignupStatusResponse {
		w := send(r, http.MethodGet, "/api/admin/auth/signup", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp packets.SignupStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	assert.Equal(t, packets.SignupStatusResponse{Bootstrap: true, InviteEnabled: true}, status())
	tokenOf(t, send(r, http.MethodPost, "/api/admin/auth/signup", "", gin.H{
		"email": "admin@example.com", "password": "longenough",
	}))
	assert.Equal(t, packets.SignupStatusResponse{Bootstrap: false, InviteEnabled: true}, status())
}

func TestSignupValidation(t *testing.T) {
	r := newRouter(db.NewMemoryStore(), "")

	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodPost, "/api/admin/auth/signup", "", gin.H{
		"email": "not-an-email", "password": "longenough",
	}).Code)
	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodPost, "/api/admin/auth/signup", "", gin.H{
		"email": "x@example.com", "password": "short",
	}).Code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	r := newRouter(db.NewMemoryStore(), "")
	tokenOf(t, send(r, http.MethodPost, "/api/admin/auth/signup", "", gin.H{"email": "dj@example.com", "password": "longenough"}))

	w := send(r, http.MethodPost, "/api/admin/auth/login", "", gin.H{"email": "dj@example.com", "password": "wrongwrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid email or password"}`, w.Body.String())
}

func TestProfileRequiresToken(t *testing.T) {
	r := newRouter(db.NewMemoryStore(), "")
	assert.Equal(t, http.StatusUnauthorized, send(r, http.MethodGet, "/api/admin/auth/current_profile", "", nil).Code)
}

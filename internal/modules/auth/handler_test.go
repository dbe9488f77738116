package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/config"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/middleware"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*gin.Engine, *store.Store) {
	return setupRouterLimited(t, 100, 100)
}

func setupRouterLimited(t *testing.T, rps float64, burst int) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cfg := &config.AppConfig{SessionTTLH: 24}
	r := gin.New()
	NewHandler(NewService(st, cfg)).RegisterRoutes(&r.RouterGroup, middleware.RateLimit(rps, burst), middleware.Auth(st))
	return r, st
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/register", "", gin.H{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "registered", body["message"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/register", "", gin.H{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/register", "", gin.H{"username": "Alice", "password": "secret2"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	r, _ := setupRouter(t)

	cases := []gin.H{
		{"username": "al", "password": "secret1"},        // too short
		{"username": "alice", "password": "short"},       // password too short
		{"username": "bad name!", "password": "secret1"}, // illegal chars
		{"username": "alice"},                            // missing password
	}
	for _, c := range cases {
		w := doJSON(t, r, http.MethodPost, "/register", "", c)
		assert.Equal(t, http.StatusBadRequest, w.Code, "payload %v", c)
	}
}

func TestLogin(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/register", "", gin.H{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", "", gin.H{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "logged in", body.Message)
	assert.NotEmpty(t, body.Token)
	assert.NotEmpty(t, body.User.ID)
	assert.Equal(t, "alice", body.User.Username)
}

func TestLoginBadCredentials(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/register", "", gin.H{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", "", gin.H{"username": "alice", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", "", gin.H{"username": "nobody", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/register", "", gin.H{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/login", "", gin.H{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	w = doJSON(t, r, http.MethodPost, "/logout", body.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// the revoked token no longer authenticates
	w = doJSON(t, r, http.MethodPost, "/logout", body.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimitCoversCredentialEndpointsOnly(t *testing.T) {
	// a burst of 2 is spent on register + login; the throttle must then
	// hit further credential attempts but never the session-bound logout
	r, _ := setupRouterLimited(t, 0.01, 2)

	w := doJSON(t, r, http.MethodPost, "/register", "", gin.H{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/login", "", gin.H{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	w = doJSON(t, r, http.MethodPost, "/login", "", gin.H{"username": "alice", "password": "secret1"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = doJSON(t, r, http.MethodPost, "/logout", body.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

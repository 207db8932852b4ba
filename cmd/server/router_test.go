package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promanage/promanage-api/internal/api"
	apiMiddleware "github.com/promanage/promanage-api/internal/api/middleware"
	"github.com/promanage/promanage-api/internal/config"
	"github.com/promanage/promanage-api/internal/mocks"
	"github.com/promanage/promanage-api/internal/service/auth"
)

// newTestApplication builds an application wired against in-memory mocks so
// the full router can be exercised without a database.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 3000, LogLevel: "error"},
		Auth: config.AuthConfig{
			JWTSecret:            "test-jwt-secret-value-32-chars-long!",
			TokenLifetimeMinutes: 60,
		},
	}

	userStore := mocks.NewMockUserStore()
	taskStore := mocks.NewMockTaskStore()
	jwtService := auth.NewTestJWTService(cfg.Auth.JWTSecret, time.Hour, time.Now)
	hasher := &mocks.MockPasswordHasher{}
	verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}

	return &application{
		config:         cfg,
		logger:         slog.Default(),
		userStore:      userStore,
		taskStore:      taskStore,
		jwtService:     jwtService,
		passwordHasher: hasher,
		userHandler:    api.NewUserHandler(userStore, jwtService, hasher, verifier),
		taskHandler:    api.NewTaskHandler(taskStore, userStore),
		authMiddleware: apiMiddleware.NewAuthMiddleware(jwtService, userStore),
	}
}

func postJSON(t *testing.T, router http.Handler, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func getWithToken(router http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestApplication(t).setupRouter()

	rec := getWithToken(router, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	router := newTestApplication(t).setupRouter()

	for _, path := range []string{
		"/api/user/verify",
		"/api/user/dashboard",
		"/api/user/setting",
		"/api/task/all",
		"/api/task/analytics",
	} {
		rec := getWithToken(router, path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "path %s", path)
	}
}

// TestRegisterLoginCreateFlow walks the happy path through the real router:
// register, log in, create a task with the issued token, then list it back.
func TestRegisterLoginCreateFlow(t *testing.T) {
	t.Parallel()

	router := newTestApplication(t).setupRouter()

	rec := postJSON(t, router, "/api/user/register", "", map[string]string{
		"name":     "Flow User",
		"email":    "flow@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = postJSON(t, router, "/api/user/login", "", map[string]string{
		"email":    "flow@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&login))
	require.NotEmpty(t, login.Token)

	rec = getWithToken(router, "/api/user/verify", login.Token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, router, "/api/task/create", login.Token, map[string]interface{}{
		"title":    "T",
		"priority": "Low",
		"checklist": []map[string]interface{}{
			{"item": "x"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = getWithToken(router, "/api/task/all", login.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Tasks struct {
			Todo []struct {
				Title      string `json:"title"`
				TaskStatus string `json:"taskStatus"`
			} `json:"todo"`
		} `json:"tasks"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list.Tasks.Todo, 1)
	assert.Equal(t, "T", list.Tasks.Todo[0].Title)
	assert.Equal(t, "todo", list.Tasks.Todo[0].TaskStatus)
}

//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	caregiverrepo "github.com/babylog/babylog-backend/internal/adapter/postgres/caregiver"
	"github.com/babylog/babylog-backend/internal/adapter/postgres/testhelper"
	"github.com/babylog/babylog-backend/internal/app"
	"github.com/babylog/babylog-backend/internal/config"
	"github.com/babylog/babylog-backend/internal/domain"
	"github.com/babylog/babylog-backend/internal/transport/middleware"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	cfg := &config.Config{
		Server: config.ServerConfig{
			LoginPerMinute: 100,
		},
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-at-least-32-chars-long!!",
			JWTIssuer:      "babylog-test",
			AccessTokenTTL: 15 * time.Minute,
		},
		Sleep: config.SleepConfig{
			MinMinutes:     10,
			MaxMinutes:     300,
			HardMaxMinutes: 720,
		},
		CORS: config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		},
	}

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	srv := httptest.NewServer(app.NewHandler(cfg, logger, pool, limiter))
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// seedCaregiver creates a caregiver with a known password and returns it
// alongside the plaintext password for login calls.
func seedCaregiver(t *testing.T, ts *testServer) (domain.Caregiver, string) {
	t.Helper()

	password := "correct-horse-battery"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	suffix := uuid.New().String()[:8]
	c := domain.Caregiver{
		ID:           uuid.New(),
		Email:        "e2e-" + suffix + "@example.com",
		Name:         "E2E Caregiver " + suffix,
		PasswordHash: string(hash),
	}

	created, err := caregiverrepo.New(ts.Pool).Create(context.Background(), &c)
	require.NoError(t, err)

	return *created, password
}

// login authenticates a caregiver and returns the access token.
func login(t *testing.T, ts *testServer, email, password string) string {
	t.Helper()

	resp := restRequest(t, ts, "POST", "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "login failed")

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	token, ok := body["accessToken"].(string)
	require.True(t, ok, "expected accessToken in login response")
	require.NotEmpty(t, token)
	return token
}

// loginSeeded seeds a caregiver and logs them in.
func loginSeeded(t *testing.T, ts *testServer) (domain.Caregiver, string) {
	t.Helper()
	c, password := seedCaregiver(t, ts)
	return c, login(t, ts, c.Email, password)
}

// restRequest makes a request with optional auth token and JSON body.
func restRequest(t *testing.T, ts *testServer, method, path, token string, body any) *http.Response {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(jsonBody)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reqBody)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// decodeJSON decodes a response body into a generic map and closes it.
func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

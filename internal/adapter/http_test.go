// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/qatrackplus/qcpump/internal/config"
	"github.com/qatrackplus/qcpump/internal/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Configuration {
	cfg := config.Defaults(config.Runtime{Mode: config.SourceRun, Root: "/opt/qcpump"})
	cfg.HTTP307SleepTime = time.Millisecond
	return &cfg
}

// newTestAdapter creates a qatrackAdapter pointed at the test server.
func newTestAdapter(t *testing.T, cfg *config.Configuration, serverURL string) *qatrackAdapter {
	t.Helper()

	a, err := NewQATrackAdapter(cfg, APIConfig{URL: serverURL + "/api/", Token: "secret"}, logger.Nop())
	require.NoError(t, err)
	return a.(*qatrackAdapter)
}

// ── CheckAuth ───────────────────────────────────────────────────────────────

func TestCheckAuth_Success(t *testing.T) {
	cfg := testConfig()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/auth/", r.URL.Path)
		assert.Equal(t, "Token secret", r.Header.Get("Authorization"))
		assert.Equal(t, cfg.BrowserUserAgent, r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, cfg, srv.URL)
	require.NoError(t, a.CheckAuth(context.Background()))
}

func TestCheckAuth_RetriesTemporaryRedirect(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.Header().Set("Location", "/api/auth/")
			w.WriteHeader(http.StatusTemporaryRedirect)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, testConfig(), srv.URL)

	require.NoError(t, a.CheckAuth(context.Background()))
	assert.Equal(t, int32(3), calls.Load())
}

func TestCheckAuth_TooManyRedirects(t *testing.T) {
	cfg := testConfig()
	cfg.MaxHTTP307Count = 2

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Location", "/api/auth/")
		w.WriteHeader(http.StatusTemporaryRedirect)
	}))
	defer srv.Close()

	a := newTestAdapter(t, cfg, srv.URL)
	err := a.CheckAuth(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyRedirects)
	// one request plus MaxHTTP307Count retries
	assert.Equal(t, int32(3), calls.Load())
}

func TestCheckAuth_FoundIsNotFollowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/login/")
		w.WriteHeader(http.StatusFound)
	}))
	defer srv.Close()

	a := newTestAdapter(t, testConfig(), srv.URL)
	err := a.CheckAuth(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRedirected)
}

func TestCheckAuth_UnauthorizedWithDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Invalid token."}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, testConfig(), srv.URL)
	err := a.CheckAuth(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "Invalid token.")
}

func TestCheckAuth_ServerErrorWithoutJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, testConfig(), srv.URL)
	err := a.CheckAuth(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "500")
}

func TestCheckAuth_LogsToContextLogger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).With().Str("command", "check-qatrack").Logger().WithContext(context.Background())

	a := newTestAdapter(t, testConfig(), srv.URL)
	err := a.CheckAuth(ctx)

	require.Error(t, err)
	assert.Contains(t, buf.String(), "QATrack+ auth check failed")
	assert.Contains(t, buf.String(), `"command":"check-qatrack"`)
}

func TestCheckAuth_EmptyUserAgentIsNotSent(t *testing.T) {
	cfg := testConfig()
	cfg.BrowserUserAgent = ""

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEqual(t, config.Defaults(config.Runtime{}).BrowserUserAgent, r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, cfg, srv.URL)
	require.NoError(t, a.CheckAuth(context.Background()))
}

// ── construction helpers ────────────────────────────────────────────────────

func TestNewQATrackAdapter_InvalidURL(t *testing.T) {
	_, err := NewQATrackAdapter(testConfig(), APIConfig{URL: "   "}, logger.Nop())
	require.Error(t, err)
}

func TestNewQATrackAdapter_InvalidProxy(t *testing.T) {
	_, err := NewQATrackAdapter(testConfig(), APIConfig{URL: "https://qa.example.com/api/", HTTPSProxy: "://bad"}, logger.Nop())
	require.Error(t, err)
}

func TestEndpoint(t *testing.T) {
	a := newTestAdapter(t, testConfig(), "http://qa.example.com")

	assert.Equal(t, "http://qa.example.com/api/units/units/", a.Endpoint("/units/units"))
	assert.Equal(t, "http://qa.example.com/api/", a.Endpoint(""))
}

func TestAuthHeader(t *testing.T) {
	assert.Equal(t, "Authorization", authHeader("https://qa.example.com/api"))
	assert.Equal(t, "RadAuthorization", authHeader("https://clinic.radformation.com/api"))
}

func TestValidateAPIURL(t *testing.T) {
	assert.NoError(t, ValidateAPIURL("https://qa.example.com/api/"))
	assert.NoError(t, ValidateAPIURL("https://qa.example.com/api"))
	assert.ErrorIs(t, ValidateAPIURL("https://qa.example.com/"), ErrNotAPIURL)
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// This file contains unit tests for the health and readiness handlers.

// TestHealthHandler ensures the liveness endpoint replies without any dependency.
func TestHealthHandler(t *testing.T) {
	clock := NewMockClocker()
	api := NewAPIHandler(zap.NewNop(), nil, &Statistics{started: clock.MockNow.Add(-90 * time.Second)}, clock, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	api.Health(w, req, httprouter.Params{})
	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))

	var resp HealthResponse
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, float64(90), resp.Uptime)
	assert.Equal(t, clock.MockNow.UTC().Format(time.RFC3339), resp.Timestamp)
}

// TestReadyHandler ensures the readiness endpoint reflects the live states
// of the database and the cache.
func TestReadyHandler(t *testing.T) {
	testCases := []struct {
		name     string
		pingErr  error
		cacheUp  bool
		status   int
		expected ReadyResponse
	}{
		{
			name:     "database and cache up",
			pingErr:  nil,
			cacheUp:  true,
			status:   http.StatusOK,
			expected: ReadyResponse{Status: "ready", Database: "connected", Cache: "connected"},
		},
		{
			name:     "database up cache disabled",
			pingErr:  nil,
			cacheUp:  false,
			status:   http.StatusOK,
			expected: ReadyResponse{Status: "ready", Database: "connected", Cache: "disabled"},
		},
		{
			name:     "database down",
			pingErr:  errors.New("connection refused"),
			cacheUp:  true,
			status:   http.StatusServiceUnavailable,
			expected: ReadyResponse{Status: "not ready", Database: "disconnected", Cache: "connected"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockBookStorage{
				PingFunc: func(ctx context.Context) error { return tc.pingErr },
			}
			cache := &MockBookCache{
				AvailableFunc: func(ctx context.Context) bool { return tc.cacheUp },
			}
			api := NewAPIHandler(zap.NewNop(), nil, &Statistics{started: time.Now()}, NewMockClocker(), nil, repo, cache)

			req := httptest.NewRequest(http.MethodGet, "/api/ready", nil)
			w := httptest.NewRecorder()
			api.Ready(w, req, httprouter.Params{})
			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tc.status, res.StatusCode)

			var resp ReadyResponse
			assert.NoError(t, json.NewDecoder(res.Body).Decode(&resp))
			assert.Equal(t, tc.expected, resp)
		})
	}
}

// TestNotFoundHandler ensures unknown routes get a generic json error.
func TestNotFoundHandler(t *testing.T) {
	api := NewAPIHandler(zap.NewNop(), nil, &Statistics{started: time.Now()}, NewMockClocker(), nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	w := httptest.NewRecorder()
	api.NotFound().ServeHTTP(w, req)
	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	data, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"error":"Endpoint not found"}`, string(data))
}

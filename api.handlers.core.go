package main

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// HealthResponse is the data model sent when the health endpoint is called.
type HealthResponse struct {
	Status    string  `json:"status"`
	Uptime    float64 `json:"uptime"`
	Timestamp string  `json:"timestamp"`
}

// ReadyResponse is the data model sent when the readiness endpoint is called.
type ReadyResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// Health reports process liveness. It never touches the database or the
// cache so it stays available as long as the process runs.
func (api *APIHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	resp := HealthResponse{
		Status:    "ok",
		Uptime:    api.clock.Now().Sub(api.stats.started).Seconds(),
		Timestamp: api.clock.Now().UTC().Format(time.RFC3339),
	}
	if err := WriteJSONResponse(w, http.StatusOK, resp); err != nil {
		api.logger.Error("failed to send health response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// Ready reports whether the service can serve traffic based on a live
// database ping. The cache state is informational only since the service
// stays fully functional without it.
func (api *APIHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	cacheState := "disabled"
	if api.cache.Available(r.Context()) {
		cacheState = "connected"
	}

	if err := api.storage.Ping(r.Context()); err != nil {
		api.logger.Error("readiness check failed", zap.String("request.id", requestID), zap.Error(err))
		resp := ReadyResponse{Status: "not ready", Database: "disconnected", Cache: cacheState}
		if err = WriteJSONResponse(w, http.StatusServiceUnavailable, resp); err != nil {
			api.logger.Error("failed to send readiness response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	resp := ReadyResponse{Status: "ready", Database: "connected", Cache: cacheState}
	if err := WriteJSONResponse(w, http.StatusOK, resp); err != nil {
		api.logger.Error("failed to send readiness response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// NotFound replies to any unknown route with a generic json error.
func (api *APIHandler) NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := WriteErrorResponse(w, http.StatusNotFound, "Endpoint not found"); err != nil {
			api.logger.Error("failed to send not found response", zap.Error(err))
		}
	})
}

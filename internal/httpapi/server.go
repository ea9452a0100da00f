package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inferd/internal/registry"
	"inferd/internal/serving"
	"inferd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Predict(ctx context.Context, req types.PredictionRequest) (types.PredictionResponse, error)
	Reload(ctx context.Context) error
	ModelInfo() (types.ModelInfo, bool)
	Health() types.HealthStatus
	Status() types.StatusResponse
	Ready() bool
}

// NewMux builds the HTTP handler: prediction and model endpoints, probe
// endpoints for the orchestrator, and the Prometheus scrape endpoint.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	r.Use(MetricsMiddleware)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Post("/predict", handlePredict(svc))
	r.Post("/model/reload", handleReload(svc))
	r.Get("/model/info", handleModelInfo(svc))

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		h := svc.Health()
		status := http.StatusOK
		if !h.ModelLoaded {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, h)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// handlePredict serves POST /predict.
//
// @Summary      Run model inference
// @Accept       json
// @Produce      json
// @Param        request body types.PredictionRequest true "feature vector"
// @Success      200 {object} types.PredictionResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      503 {object} types.ErrorResponse
// @Router       /predict [post]
func handlePredict(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.PredictionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		start := time.Now()
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		resp, err := svc.Predict(joinedCtx, req)
		if err != nil {
			status := statusForError(err)
			writeJSONError(w, status, err.Error())
			logRequest(r, "predict", status, time.Since(start), err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		logRequest(r, "predict", http.StatusOK, time.Since(start), nil)
	}
}

// handleReload serves POST /model/reload.
//
// @Summary      Reload the model artifact
// @Produce      json
// @Success      200 {object} types.ReloadResponse
// @Failure      409 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /model/reload [post]
func handleReload(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		if err := svc.Reload(joinedCtx); err != nil {
			status := statusForError(err)
			writeJSONError(w, status, err.Error())
			logRequest(r, "reload", status, time.Since(start), err)
			return
		}
		version := ""
		if info, ok := svc.ModelInfo(); ok {
			version = info.Version
		}
		writeJSON(w, http.StatusOK, types.ReloadResponse{ModelVersion: version})
		logRequest(r, "reload", http.StatusOK, time.Since(start), nil)
	}
}

// handleModelInfo serves GET /model/info.
//
// @Summary      Describe the active model
// @Produce      json
// @Success      200 {object} types.ModelInfo
// @Failure      404 {object} types.ErrorResponse
// @Router       /model/info [get]
func handleModelInfo(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, ok := svc.ModelInfo()
		if !ok {
			writeJSONError(w, http.StatusNotFound, "no model loaded")
			return
		}
		writeJSON(w, http.StatusOK, info)
	}
}

// statusForError maps well-known serving and registry errors to HTTP codes.
func statusForError(err error) int {
	switch {
	case serving.IsValidationError(err):
		return http.StatusBadRequest
	case serving.IsNotLoaded(err):
		return http.StatusServiceUnavailable
	case registry.IsLoadInProgress(err):
		return http.StatusConflict
	case serving.IsInferenceError(err), registry.IsLoadError(err):
		return http.StatusInternalServerError
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && status == http.StatusOK {
		// Headers already sent; nothing left to do but note it.
		logEncodeFailure(err)
	}
}

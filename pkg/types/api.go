package types

// PredictionRequest is the payload for POST /predict.
type PredictionRequest struct {
	// Ordered feature vector. Length must match the active model's expected
	// feature count exactly.
	// example: [1.0, 2.0, 3.0, 4.0, 5.0]
	Features []float64 `json:"features"`
	// Optional version pin. If set, the request fails unless it equals the
	// active model's version; there is no fallback to another model.
	// example: v1.0
	RequestedVersion string `json:"requested_version,omitempty" example:"v1.0"`
}

// PredictionResponse is returned by a successful POST /predict.
type PredictionResponse struct {
	// Predicted class or score.
	// example: 1
	Prediction float64 `json:"prediction" example:"1"`
	// Probability of the positive class, in [0,1].
	// example: 0.8731
	Probability float64 `json:"probability" example:"0.8731"`
	// Version of the model that served this request.
	// example: v1.0
	ModelVersion string `json:"model_version" example:"v1.0"`
	// Wall-clock inference time in milliseconds.
	// example: 0.42
	InferenceTimeMs float64 `json:"inference_time_ms" example:"0.42"`
}

// HealthStatus is returned by GET /health and consumed by orchestrator probes.
type HealthStatus struct {
	// "healthy" iff a model is loaded and serving.
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// Whether a model artifact is currently loaded.
	// example: true
	ModelLoaded bool `json:"model_loaded" example:"true"`
	// Version of the loaded model, empty when none.
	// example: v1.0
	Version string `json:"version,omitempty" example:"v1.0"`
}

// ModelInfo describes the active artifact, returned by GET /model/info.
type ModelInfo struct {
	// Model version label.
	// example: v1.0
	Version string `json:"version" example:"v1.0"`
	// Number of features the model expects per request.
	// example: 5
	ExpectedFeatureCount int `json:"expected_feature_count" example:"5"`
	// RFC3339 timestamp of when the artifact was loaded.
	// example: 2024-01-15T10:30:00Z
	LoadedAt string `json:"loaded_at" example:"2024-01-15T10:30:00Z"`
	// Path the artifact was loaded from.
	// example: /var/lib/inferd/model.json
	ArtifactPath string `json:"artifact_path,omitempty" example:"/var/lib/inferd/model.json"`
	// Framework label carried by the artifact manifest.
	// example: logistic-regression
	Framework string `json:"framework,omitempty" example:"logistic-regression"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Registry lifecycle state (unloaded, loading, loaded, failed).
	// example: loaded
	State string `json:"state" example:"loaded"`
	// Active model details, nil when no model is loaded.
	Model *ModelInfo `json:"model,omitempty"`
	// Last load or reload error observed, if any.
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Total successful model loads (including reloads).
	// example: 3
	LoadsTotal uint64 `json:"loads_total" example:"3"`
	// Total reload attempts, successful or not.
	// example: 2
	ReloadsTotal uint64 `json:"reloads_total" example:"2"`
}

// ReloadResponse is returned by a successful POST /model/reload.
type ReloadResponse struct {
	// Version of the model active after the reload.
	// example: v1.1
	ModelVersion string `json:"model_version" example:"v1.1"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

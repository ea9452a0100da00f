package serving

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"inferd/internal/registry"
	"inferd/pkg/types"
)

// Service orchestrates the full prediction path: registry read, validation,
// inference, metrics, response assembly. It is safe for concurrent use; the
// only shared state it touches is the registry's atomically-published
// artifact reference.
type Service struct {
	reg       *registry.Registry
	log       zerolog.Logger
	modelPath string
	startTime time.Time
}

// New constructs a Service around reg. modelPath is the artifact source used
// by Reload.
func New(reg *registry.Registry, modelPath string, log zerolog.Logger) *Service {
	return &Service{
		reg:       reg,
		log:       log.With().Str("component", "serving").Logger(),
		modelPath: modelPath,
		startTime: time.Now(),
	}
}

// Predict serves one synchronous prediction request.
func (s *Service) Predict(ctx context.Context, req types.PredictionRequest) (types.PredictionResponse, error) {
	art, ok := s.reg.Current()
	if !ok {
		observePrediction(outcomeNotLoaded, 0)
		return types.PredictionResponse{}, ErrNotLoaded()
	}
	if err := Validate(req, art); err != nil {
		observePrediction(outcomeValidationError, 0)
		return types.PredictionResponse{}, err
	}
	resp, err := Infer(art, req.Features)
	if err != nil {
		observePrediction(outcomeInferenceError, 0)
		s.log.Error().Err(err).Str("version", art.Version).Msg("inference failed")
		return types.PredictionResponse{}, err
	}
	observePrediction(outcomeSuccess, resp.InferenceTimeMs/1000)
	return resp, nil
}

// Load performs the initial model load.
func (s *Service) Load(ctx context.Context) error {
	err := s.reg.Load(ctx, s.modelPath)
	s.recordLoad(err)
	return err
}

// Reload swaps in a freshly built artifact from the configured model path.
func (s *Service) Reload(ctx context.Context) error {
	err := s.reg.Reload(ctx, s.modelPath)
	s.recordLoad(err)
	return err
}

func (s *Service) recordLoad(err error) {
	switch {
	case err == nil:
		version := ""
		if art, ok := s.reg.Current(); ok {
			version = art.Version
		}
		recordModelLoad("success", version)
	case registry.IsLoadInProgress(err):
		recordModelLoad("in_progress", "")
	default:
		recordModelLoad("failure", "")
	}
}

// Health derives the probe-facing health status from registry state. Cheap:
// one atomic pointer read, no I/O. Stays healthy while a reload of a working
// model is in progress.
func (s *Service) Health() types.HealthStatus {
	if art, ok := s.reg.Current(); ok {
		return types.HealthStatus{Status: "healthy", ModelLoaded: true, Version: art.Version}
	}
	return types.HealthStatus{Status: "unhealthy", ModelLoaded: false}
}

// Ready reports readiness for traffic; the orchestrator's readiness probe
// and autoscaler capacity count both key off this.
func (s *Service) Ready() bool { return s.reg.Loaded() }

// ModelInfo describes the active artifact, or false when none is loaded.
func (s *Service) ModelInfo() (types.ModelInfo, bool) {
	art, ok := s.reg.Current()
	if !ok {
		return types.ModelInfo{}, false
	}
	return types.ModelInfo{
		Version:              art.Version,
		ExpectedFeatureCount: art.FeatureCount,
		LoadedAt:             art.LoadedAt.Format(time.RFC3339),
		ArtifactPath:         art.Path,
		Framework:            art.Framework,
	}, true
}

// Status builds the detailed status response.
func (s *Service) Status() types.StatusResponse {
	snap := s.reg.Snapshot()
	resp := types.StatusResponse{
		State:          string(snap.State),
		LastError:      snap.LastError,
		UptimeSeconds:  int64(time.Since(s.startTime).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
		LoadsTotal:     snap.LoadsTotal,
		ReloadsTotal:   snap.ReloadsTotal,
	}
	if snap.Artifact != nil {
		resp.Model = &types.ModelInfo{
			Version:              snap.Artifact.Version,
			ExpectedFeatureCount: snap.Artifact.FeatureCount,
			LoadedAt:             snap.Artifact.LoadedAt.Format(time.RFC3339),
			ArtifactPath:         snap.Artifact.Path,
			Framework:            snap.Artifact.Framework,
		}
	}
	return resp
}

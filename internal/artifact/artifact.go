package artifact

import "time"

// Model is the capability contract every loaded model fulfils. One adapter
// exists per supported on-disk format; callers never see the concrete type.
type Model interface {
	// Predict returns the model's prediction for one feature vector.
	Predict(features []float64) (float64, error)
	// PredictProbability returns the per-class probability vector.
	PredictProbability(features []float64) ([]float64, error)
	// FeatureCount returns the number of features the model expects.
	FeatureCount() int
}

// Artifact is an immutable, ready-to-infer model plus its metadata. Once
// constructed it is never mutated; the registry publishes it by reference
// and readers borrow it for the duration of a single inference call.
type Artifact struct {
	Model        Model
	Version      string
	FeatureCount int
	LoadedAt     time.Time
	Path         string
	Framework    string
}

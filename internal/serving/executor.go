package serving

import (
	"fmt"
	"math"
	"time"

	"inferd/internal/artifact"
	"inferd/pkg/types"
)

// Infer runs one prediction against a borrowed artifact reference and
// assembles the response with version and timing. It only reads the artifact
// and local state, so any number of calls may run concurrently without
// external locking. An artifact fault (error or panic) surfaces as a typed
// inference error; nothing unclassified escapes to the caller.
func Infer(art *artifact.Artifact, features []float64) (resp types.PredictionResponse, err error) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			err = inferenceError{err: fmt.Errorf("model panicked: %v", rec)}
		}
	}()

	pred, perr := art.Model.Predict(features)
	if perr != nil {
		return types.PredictionResponse{}, inferenceError{err: perr}
	}
	probs, perr := art.Model.PredictProbability(features)
	if perr != nil {
		return types.PredictionResponse{}, inferenceError{err: perr}
	}

	resp = types.PredictionResponse{
		Prediction:      pred,
		Probability:     positiveClassProbability(probs),
		ModelVersion:    art.Version,
		InferenceTimeMs: float64(time.Since(start)) / float64(time.Millisecond),
	}
	return resp, nil
}

// positiveClassProbability reduces a probability vector to the confidence
// reported in the response: the last class for binary models, else the max.
func positiveClassProbability(probs []float64) float64 {
	switch len(probs) {
	case 0:
		return 0
	case 2:
		return probs[1]
	default:
		max := probs[0]
		for _, p := range probs[1:] {
			max = math.Max(max, p)
		}
		return max
	}
}

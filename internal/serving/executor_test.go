package serving

import (
	"errors"
	"testing"
	"time"

	"inferd/internal/artifact"
)

type faultyModel struct {
	predictErr error
	probaErr   error
	panics     bool
}

func (m faultyModel) Predict(f []float64) (float64, error) {
	if m.panics {
		panic("index out of range in model internals")
	}
	if m.predictErr != nil {
		return 0, m.predictErr
	}
	return 1, nil
}

func (m faultyModel) PredictProbability(f []float64) ([]float64, error) {
	if m.probaErr != nil {
		return nil, m.probaErr
	}
	return []float64{0.1, 0.9}, nil
}

func (m faultyModel) FeatureCount() int { return 2 }

func faultyArtifact(m artifact.Model) *artifact.Artifact {
	return &artifact.Artifact{Model: m, Version: "v1.0", FeatureCount: 2, LoadedAt: time.Now()}
}

func TestInferAssemblesResponse(t *testing.T) {
	resp, err := Infer(faultyArtifact(faultyModel{}), []float64{1, 2})
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	if resp.Prediction != 1 {
		t.Fatalf("prediction=%v", resp.Prediction)
	}
	if resp.Probability != 0.9 {
		t.Fatalf("probability=%v", resp.Probability)
	}
	if resp.ModelVersion != "v1.0" {
		t.Fatalf("version=%q", resp.ModelVersion)
	}
	if resp.InferenceTimeMs < 0 {
		t.Fatalf("inference_time_ms=%v", resp.InferenceTimeMs)
	}
}

func TestInferMapsPredictError(t *testing.T) {
	boom := errors.New("singular matrix")
	_, err := Infer(faultyArtifact(faultyModel{predictErr: boom}), []float64{1, 2})
	if !IsInferenceError(err) {
		t.Fatalf("expected inference error, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("cause not wrapped: %v", err)
	}
}

func TestInferMapsProbabilityError(t *testing.T) {
	_, err := Infer(faultyArtifact(faultyModel{probaErr: errors.New("bad state")}), []float64{1, 2})
	if !IsInferenceError(err) {
		t.Fatalf("expected inference error, got %v", err)
	}
}

func TestInferRecoversPanic(t *testing.T) {
	_, err := Infer(faultyArtifact(faultyModel{panics: true}), []float64{1, 2})
	if !IsInferenceError(err) {
		t.Fatalf("expected inference error from panic, got %v", err)
	}
}

func TestPositiveClassProbability(t *testing.T) {
	cases := []struct {
		probs []float64
		want  float64
	}{
		{nil, 0},
		{[]float64{0.25, 0.75}, 0.75},
		{[]float64{0.9, 0.1}, 0.1},
		{[]float64{0.2, 0.5, 0.3}, 0.5},
	}
	for _, tc := range cases {
		if got := positiveClassProbability(tc.probs); got != tc.want {
			t.Fatalf("probs=%v got=%v want=%v", tc.probs, got, tc.want)
		}
	}
}

package serving

import (
	"math"
	"testing"
	"time"

	"inferd/internal/artifact"
	"inferd/pkg/types"
)

type fixedModel struct{ n int }

func (m fixedModel) Predict(f []float64) (float64, error) { return 1, nil }
func (m fixedModel) PredictProbability(f []float64) ([]float64, error) {
	return []float64{0.3, 0.7}, nil
}
func (m fixedModel) FeatureCount() int { return m.n }

func testArtifact(version string, features int) *artifact.Artifact {
	return &artifact.Artifact{
		Model:        fixedModel{n: features},
		Version:      version,
		FeatureCount: features,
		LoadedAt:     time.Now(),
	}
}

func TestValidate(t *testing.T) {
	art := testArtifact("v1.0", 3)
	cases := []struct {
		name    string
		req     types.PredictionRequest
		wantErr bool
	}{
		{"valid", types.PredictionRequest{Features: []float64{1, 2, 3}}, false},
		{"valid with version pin", types.PredictionRequest{Features: []float64{1, 2, 3}, RequestedVersion: "v1.0"}, false},
		{"empty", types.PredictionRequest{}, true},
		{"too short", types.PredictionRequest{Features: []float64{1, 2}}, true},
		{"too long", types.PredictionRequest{Features: []float64{1, 2, 3, 4}}, true},
		{"nan", types.PredictionRequest{Features: []float64{1, math.NaN(), 3}}, true},
		{"positive inf", types.PredictionRequest{Features: []float64{1, math.Inf(1), 3}}, true},
		{"negative inf", types.PredictionRequest{Features: []float64{1, math.Inf(-1), 3}}, true},
		{"version mismatch", types.PredictionRequest{Features: []float64{1, 2, 3}, RequestedVersion: "v2.0"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.req, art)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !IsValidationError(err) {
					t.Fatalf("wrong error kind: %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateIsPure(t *testing.T) {
	art := testArtifact("v1.0", 2)
	req := types.PredictionRequest{Features: []float64{1, 2}}
	if err := Validate(req, art); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if req.Features[0] != 1 || req.Features[1] != 2 {
		t.Fatalf("request mutated: %+v", req)
	}
	if art.FeatureCount != 2 || art.Version != "v1.0" {
		t.Fatalf("artifact mutated: %+v", art)
	}
}

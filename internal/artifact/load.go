package artifact

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"time"
)

// manifest is the on-disk artifact format: a JSON document exported by the
// training pipeline holding the fitted parameters and metadata.
type manifest struct {
	Version      string    `json:"version"`
	Framework    string    `json:"framework,omitempty"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Threshold    float64   `json:"threshold,omitempty"`
}

// Load reads an artifact manifest from path and builds a ready-to-infer
// Artifact. The returned value is fully constructed before Load returns;
// callers may publish it without further initialization.
func Load(path string) (*Artifact, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var m manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse artifact %s: %w", path, err)
	}
	if strings.TrimSpace(m.Version) == "" {
		return nil, fmt.Errorf("artifact %s: missing version", path)
	}
	if len(m.Coefficients) == 0 {
		return nil, fmt.Errorf("artifact %s: no coefficients", path)
	}
	for i, w := range m.Coefficients {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("artifact %s: coefficient %d is not finite", path, i)
		}
	}
	if math.IsNaN(m.Intercept) || math.IsInf(m.Intercept, 0) {
		return nil, fmt.Errorf("artifact %s: intercept is not finite", path)
	}
	threshold := m.Threshold
	if threshold <= 0 || threshold >= 1 {
		threshold = defaultThreshold
	}
	framework := m.Framework
	if framework == "" {
		framework = "logistic-regression"
	}
	mdl := &logisticModel{
		coefficients: append([]float64(nil), m.Coefficients...),
		intercept:    m.Intercept,
		threshold:    threshold,
	}
	return &Artifact{
		Model:        mdl,
		Version:      m.Version,
		FeatureCount: mdl.FeatureCount(),
		LoadedAt:     time.Now().UTC(),
		Path:         path,
		Framework:    framework,
	}, nil
}

package artifact

import (
	"fmt"
	"math"
)

// defaultThreshold is the decision boundary when the manifest omits one.
const defaultThreshold = 0.5

// logisticModel is a binary logistic-regression adapter. The score is
// sigmoid(w·x + b); Predict thresholds the score into {0, 1}.
type logisticModel struct {
	coefficients []float64
	intercept    float64
	threshold    float64
}

func (m *logisticModel) FeatureCount() int { return len(m.coefficients) }

func (m *logisticModel) score(features []float64) (float64, error) {
	if len(features) != len(m.coefficients) {
		return 0, fmt.Errorf("expected %d features, got %d", len(m.coefficients), len(features))
	}
	z := m.intercept
	for i, w := range m.coefficients {
		z += w * features[i]
	}
	p := 1.0 / (1.0 + math.Exp(-z))
	if math.IsNaN(p) {
		return 0, fmt.Errorf("prediction produced NaN")
	}
	return p, nil
}

func (m *logisticModel) Predict(features []float64) (float64, error) {
	p, err := m.score(features)
	if err != nil {
		return 0, err
	}
	if p >= m.threshold {
		return 1, nil
	}
	return 0, nil
}

func (m *logisticModel) PredictProbability(features []float64) ([]float64, error) {
	p, err := m.score(features)
	if err != nil {
		return nil, err
	}
	return []float64{1 - p, p}, nil
}

package prediction

import "github.com/LithiraHettiarachchi/gridSense/core/features"

// MockModel returns deterministic predictions for tests.
// When Fn is nil the prediction is Base.
type MockModel struct {
	Base float64
	Fn   func(features.Vector) float64
	Err  error
}

// NumFeatures returns the assembler width.
func (m MockModel) NumFeatures() int { return features.Size }

// Predict returns the configured value.
func (m MockModel) Predict(v features.Vector) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if err := Check(m, v); err != nil {
		return 0, err
	}
	if m.Fn != nil {
		return Finite(m.Fn(v))
	}
	return m.Base, nil
}

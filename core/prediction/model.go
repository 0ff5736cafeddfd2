package prediction

import (
	"errors"
	"fmt"
	"math"

	"github.com/LithiraHettiarachchi/gridSense/core/features"
)

// ErrFeatureCount is returned when a vector does not match the model width.
var ErrFeatureCount = errors.New("feature count mismatch")

// Model predicts a scalar energy value in kWh from a feature vector.
type Model interface {
	Predict(v features.Vector) (float64, error)
	// NumFeatures returns the number of input columns the model was trained on.
	NumFeatures() int
}

// Check validates v against the model width.
func Check(m Model, v features.Vector) error {
	if len(v) != m.NumFeatures() {
		return fmt.Errorf("%w: got %d want %d", ErrFeatureCount, len(v), m.NumFeatures())
	}
	return nil
}

// Finite rejects NaN and infinite predictions.
func Finite(y float64) (float64, error) {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, fmt.Errorf("non-finite prediction %v", y)
	}
	return y, nil
}

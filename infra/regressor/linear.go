package regressor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/LithiraHettiarachchi/gridSense/core/features"
	"github.com/LithiraHettiarachchi/gridSense/core/prediction"
)

// Linear is an ordinary least squares model y = coef·x + intercept.
type Linear struct {
	coef      *mat.VecDense
	intercept float64
}

// NewLinear returns a linear model with the given coefficients.
func NewLinear(coef []float64, intercept float64) (*Linear, error) {
	if len(coef) == 0 {
		return nil, fmt.Errorf("linear model has no coefficients")
	}
	c := make([]float64, len(coef))
	copy(c, coef)
	return &Linear{coef: mat.NewVecDense(len(c), c), intercept: intercept}, nil
}

// NumFeatures implements prediction.Model.
func (l *Linear) NumFeatures() int { return l.coef.Len() }

// Kind returns KindLinear.
func (l *Linear) Kind() string { return KindLinear }

// Predict implements prediction.Model.
func (l *Linear) Predict(x features.Vector) (float64, error) {
	if err := prediction.Check(l, x); err != nil {
		return 0, err
	}
	xv := mat.NewVecDense(len(x), []float64(x))
	return prediction.Finite(mat.Dot(l.coef, xv) + l.intercept)
}

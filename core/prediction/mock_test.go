package prediction

import (
	"errors"
	"math"
	"testing"

	"github.com/LithiraHettiarachchi/gridSense/core/features"
)

func TestMockModel_Predict(t *testing.T) {
	m := MockModel{Base: 4.2}
	v := make(features.Vector, features.Size)
	y, err := m.Predict(v)
	if err != nil || y != 4.2 {
		t.Fatalf("unexpected %v %v", y, err)
	}
	if _, err := m.Predict(v[:3]); !errors.Is(err, ErrFeatureCount) {
		t.Fatalf("expected ErrFeatureCount got %v", err)
	}
}

func TestMockModel_Fn(t *testing.T) {
	m := MockModel{Fn: func(v features.Vector) float64 { return v[17] * 2 }}
	v := make(features.Vector, features.Size)
	v[17] = 3
	y, err := m.Predict(v)
	if err != nil || y != 6 {
		t.Fatalf("unexpected %v %v", y, err)
	}
	m.Fn = func(features.Vector) float64 { return math.NaN() }
	if _, err := m.Predict(v); err == nil {
		t.Fatalf("expected error for NaN prediction")
	}
}

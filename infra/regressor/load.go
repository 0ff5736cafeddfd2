// Package regressor loads serialized regression models exported from the
// training pipeline and evaluates them in-process.
package regressor

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/LithiraHettiarachchi/gridSense/core/prediction"
)

// Kinds of model artifacts understood by Load.
const (
	KindRandomForest = "random_forest"
	KindLinear       = "linear"
)

// Artifact is the JSON model document produced by
// tools/exportmodel/export_model.py from a pickled scikit-learn model.
//
// A random_forest artifact carries one TreeSpec per estimator, copied from
// the estimator's tree_ arrays: children_left and children_right (-1 for a
// leaf), feature, threshold and the leaf value of every node. A linear
// artifact carries coef and intercept. feature_names, when present, must list
// the columns in vector order.
type Artifact struct {
	Kind         string     `json:"kind"`
	NumFeatures  int        `json:"n_features"`
	FeatureNames []string   `json:"feature_names,omitempty"`
	Trees        []TreeSpec `json:"trees,omitempty"`
	Coef         []float64  `json:"coef,omitempty"`
	Intercept    float64    `json:"intercept,omitempty"`
}

// Load reads the artifact at path and builds a model expecting want columns.
// If the artifact lists feature names they must equal names.
func Load(path string, names []string) (prediction.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return a.Build(names)
}

// Build validates the artifact against the expected columns and returns the model.
func (a Artifact) Build(names []string) (prediction.Model, error) {
	if a.NumFeatures != len(names) {
		return nil, fmt.Errorf("%w: artifact has %d features, assembler produces %d",
			prediction.ErrFeatureCount, a.NumFeatures, len(names))
	}
	if len(a.FeatureNames) > 0 {
		if len(a.FeatureNames) != len(names) {
			return nil, fmt.Errorf("feature_names has %d entries, want %d", len(a.FeatureNames), len(names))
		}
		for i, n := range names {
			if a.FeatureNames[i] != n {
				return nil, fmt.Errorf("feature %d is %q, want %q", i, a.FeatureNames[i], n)
			}
		}
	}
	switch a.Kind {
	case KindRandomForest:
		return NewForest(a.NumFeatures, a.Trees)
	case KindLinear:
		return NewLinear(a.Coef, a.Intercept)
	default:
		return nil, fmt.Errorf("unknown model kind %q", a.Kind)
	}
}

// KindOf returns the artifact kind of m, or "unknown" for models not built by Load.
func KindOf(m prediction.Model) string {
	if k, ok := m.(interface{ Kind() string }); ok {
		return k.Kind()
	}
	return "unknown"
}

package regressor

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/LithiraHettiarachchi/gridSense/core/features"
	"github.com/LithiraHettiarachchi/gridSense/core/prediction"
)

// leaf marks a node without children, as in scikit-learn's tree arrays.
const leaf = -1

// TreeSpec is one regression tree in flattened array form.
type TreeSpec struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

func (t TreeSpec) validate(nFeatures int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return fmt.Errorf("empty tree")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("tree arrays have different lengths")
	}
	for i := 0; i < n; i++ {
		l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
		if (l == leaf) != (r == leaf) {
			return fmt.Errorf("node %d has a single child", i)
		}
		if l == leaf {
			continue
		}
		if l <= i || l >= n || r <= i || r >= n {
			return fmt.Errorf("node %d has out of range children", i)
		}
		if f := t.Feature[i]; f < 0 || f >= nFeatures {
			return fmt.Errorf("node %d splits on feature %d", i, f)
		}
	}
	return nil
}

// eval walks the tree. Children always have higher indices than their parent,
// which validate guarantees, so the walk terminates. Inputs are rounded to
// float32 before each split, as scikit-learn does when it trains and predicts.
func (t TreeSpec) eval(x features.Vector) float64 {
	node := 0
	for t.ChildrenLeft[node] != leaf {
		if float64(float32(x[t.Feature[node]])) <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}

// Forest averages the output of its regression trees.
type Forest struct {
	trees     []TreeSpec
	nFeatures int
}

// NewForest validates the trees and returns the ensemble.
func NewForest(nFeatures int, trees []TreeSpec) (*Forest, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("forest has no trees")
	}
	for i, t := range trees {
		if err := t.validate(nFeatures); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return &Forest{trees: trees, nFeatures: nFeatures}, nil
}

// NumFeatures implements prediction.Model.
func (f *Forest) NumFeatures() int { return f.nFeatures }

// Kind returns KindRandomForest.
func (f *Forest) Kind() string { return KindRandomForest }

// Predict implements prediction.Model.
func (f *Forest) Predict(x features.Vector) (float64, error) {
	if err := prediction.Check(f, x); err != nil {
		return 0, err
	}
	outs := make([]float64, len(f.trees))
	for i, t := range f.trees {
		outs[i] = t.eval(x)
	}
	return prediction.Finite(stat.Mean(outs, nil))
}

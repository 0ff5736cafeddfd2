package regressor

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LithiraHettiarachchi/gridSense/core/features"
	"github.com/LithiraHettiarachchi/gridSense/core/prediction"
)

// stump splits on the station encoding column.
func stump(low, high float64) TreeSpec {
	return TreeSpec{
		ChildrenLeft:  []int{1, leaf, leaf},
		ChildrenRight: []int{2, leaf, leaf},
		Feature:       []int{17, 0, 0},
		Threshold:     []float64{2.5, 0, 0},
		Value:         []float64{0, low, high},
	}
}

func writeArtifact(t *testing.T, a Artifact) string {
	t.Helper()
	b, err := json.Marshal(a)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, b, 0o644))
	return path
}

func TestForest_Predict(t *testing.T) {
	f, err := NewForest(features.Size, []TreeSpec{stump(1, 3), stump(2, 5)})
	require.NoError(t, err)
	x := make(features.Vector, features.Size)
	x[17] = 1
	y, err := f.Predict(x)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, y, 1e-12)
	x[17] = 3
	y, err = f.Predict(x)
	require.NoError(t, err)
	assert.InDelta(t, 4, y, 1e-12)

	_, err = f.Predict(x[:5])
	assert.True(t, errors.Is(err, prediction.ErrFeatureCount))
}

func TestForest_SplitsOnFloat32Inputs(t *testing.T) {
	// 35.7796 rounds down to 35.77959823608398 in float32, below the
	// threshold, while the float64 value is above it.
	tree := TreeSpec{
		ChildrenLeft:  []int{1, leaf, leaf},
		ChildrenRight: []int{2, leaf, leaf},
		Feature:       []int{0, 0, 0},
		Threshold:     []float64{35.77959911804199, 0, 0},
		Value:         []float64{0, 10, 20},
	}
	f, err := NewForest(features.Size, []TreeSpec{tree})
	require.NoError(t, err)
	x := make(features.Vector, features.Size)
	x[0] = 35.7796
	y, err := f.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, 10.0, y)

	x[0] = 35.7797
	y, err = f.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, 20.0, y)
}

func TestForest_InvalidTrees(t *testing.T) {
	bad := []TreeSpec{
		{},
		{ChildrenLeft: []int{1}, ChildrenRight: []int{1}, Feature: []int{0}, Threshold: []float64{0}, Value: []float64{0}},
		{ChildrenLeft: []int{1, leaf}, ChildrenRight: []int{leaf, leaf}, Feature: []int{0, 0}, Threshold: []float64{0, 0}, Value: []float64{0, 0}},
		{ChildrenLeft: []int{0, leaf, leaf}, ChildrenRight: []int{2, leaf, leaf}, Feature: []int{0, 0, 0}, Threshold: []float64{0, 0, 0}, Value: []float64{0, 0, 0}},
		{ChildrenLeft: []int{1, leaf, leaf}, ChildrenRight: []int{2, leaf, leaf}, Feature: []int{99, 0, 0}, Threshold: []float64{0, 0, 0}, Value: []float64{0, 0, 0}},
	}
	for i, tr := range bad {
		if _, err := NewForest(features.Size, []TreeSpec{tr}); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
	_, err := NewForest(features.Size, nil)
	assert.Error(t, err)
}

func TestLinear_Predict(t *testing.T) {
	coef := make([]float64, features.Size)
	coef[0] = 2
	coef[17] = 0.5
	l, err := NewLinear(coef, 1)
	require.NoError(t, err)
	x := make(features.Vector, features.Size)
	x[0] = 3
	x[17] = 4
	y, err := l.Predict(x)
	require.NoError(t, err)
	assert.InDelta(t, 9, y, 1e-12)
}

func TestLoad_Forest(t *testing.T) {
	path := writeArtifact(t, Artifact{
		Kind:         KindRandomForest,
		NumFeatures:  features.Size,
		FeatureNames: features.Names,
		Trees:        []TreeSpec{stump(10, 20)},
	})
	m, err := Load(path, features.Names)
	require.NoError(t, err)
	assert.Equal(t, features.Size, m.NumFeatures())
	assert.Equal(t, KindRandomForest, KindOf(m))
	assert.Equal(t, "unknown", KindOf(prediction.MockModel{}))
}

func TestLoad_ExportedForest(t *testing.T) {
	m, err := Load(filepath.Join("testdata", "forest.json"), features.Names)
	require.NoError(t, err)
	x := make(features.Vector, features.Size)
	x[17] = 1
	x[9] = 600
	y, err := m.Predict(x)
	require.NoError(t, err)
	assert.InDelta(t, (8.0+15.0)/2, y, 1e-12)
}

func TestLoad_Failures(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), features.Names)
	assert.Error(t, err)

	corrupt := filepath.Join(t.TempDir(), "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0o644))
	_, err = Load(corrupt, features.Names)
	assert.Error(t, err)

	path := writeArtifact(t, Artifact{Kind: KindLinear, NumFeatures: 3, Coef: []float64{1, 2, 3}})
	_, err = Load(path, features.Names)
	assert.True(t, errors.Is(err, prediction.ErrFeatureCount))

	names := append([]string(nil), features.Names...)
	names[0] = "lat"
	path = writeArtifact(t, Artifact{Kind: KindRandomForest, NumFeatures: features.Size, FeatureNames: names, Trees: []TreeSpec{stump(1, 2)}})
	_, err = Load(path, features.Names)
	assert.Error(t, err)

	path = writeArtifact(t, Artifact{Kind: "xgboost", NumFeatures: features.Size})
	_, err = Load(path, features.Names)
	assert.Error(t, err)
}

package features_test

import (
	"math"
	"testing"

	"github.com/hscells/reviewrate/features"
	"github.com/stretchr/testify/assert"
)

func TestL1Normalizer(t *testing.T) {
	v := features.NewSparseVector(5, map[int]float64{0: 3, 2: -1, 4: 4})
	n := features.L1.Transform(v)
	assert.InDelta(t, 1.0, n.Norm(1), 1e-12)
	assert.InDelta(t, 0.375, n.Get(0), 1e-12)
	assert.InDelta(t, -0.125, n.Get(2), 1e-12)
}

func TestNormalizerZeroVector(t *testing.T) {
	for _, p := range []float64{1, 2, math.Inf(1), 0} {
		n := features.Normalizer{P: p}.Transform(features.NewSparseVector(3, nil))
		assert.Empty(t, n.Values)
		assert.Equal(t, 0.0, n.Norm(1))
	}
}

func TestNormalizerOtherNorms(t *testing.T) {
	v := features.NewSparseVector(2, map[int]float64{0: 3, 1: 4})
	assert.InDelta(t, 1.0, features.Normalizer{P: 2}.Transform(v).Norm(2), 1e-12)
	assert.InDelta(t, 1.0, features.Normalizer{P: math.Inf(1)}.Transform(v).Norm(math.Inf(1)), 1e-12)
	assert.InDelta(t, 1.0, features.Normalizer{P: 3}.Transform(v).Norm(3), 1e-12)
}

func TestFeaturizerUnitNorm(t *testing.T) {
	h, err := features.NewHasher(64)
	if err != nil {
		t.Fatal(err)
	}
	f := features.Featurizer{Hasher: h, Normalizer: features.L1}

	train := [][]string{
		{"great", "camera", "great", "lens"},
		{"poor", "battery"},
		{},
	}
	fitted, vectors := f.Fit(train)
	assert.Len(t, vectors, 3)
	assert.Equal(t, 3, fitted.IDF.Documents())

	for i, v := range vectors {
		if len(v.Values) == 0 {
			continue
		}
		assert.InDelta(t, 1.0, v.Norm(1), 1e-9, "document %d", i)
		for _, idx := range v.Indices {
			assert.True(t, idx >= 0 && idx < 64)
		}
	}
	assert.Empty(t, vectors[2].Values)

	// Transforming a training document again gives the vector produced while fitting.
	assert.Equal(t, vectors[0], fitted.Transform(train[0]))

	// Unseen tokens still produce valid unit vectors.
	unseen := fitted.TransformAll([][]string{{"never", "seen", "before"}})
	assert.InDelta(t, 1.0, unseen[0].Norm(1), 1e-9)
}

package features_test

import (
	"testing"

	"github.com/hscells/reviewrate/features"
	"github.com/stretchr/testify/assert"
)

func TestSparseVector(t *testing.T) {
	v := features.NewSparseVector(6, map[int]float64{5: 1, 1: 2, 3: 0})
	assert.Equal(t, []int{1, 5}, v.Indices)
	assert.Equal(t, []float64{2, 1}, v.Values)
	assert.Equal(t, 0.0, v.Get(3))
	assert.Equal(t, []float64{0, 2, 0, 0, 0, 1}, v.Dense())
	assert.Equal(t, 2*10+1*0.5, v.Dot([]float64{0, 10, 0, 0, 0, 0.5}))
}

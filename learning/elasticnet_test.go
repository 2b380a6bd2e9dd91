package learning_test

import (
	"errors"
	"math"
	"testing"

	"github.com/hscells/reviewrate/failure"
	"github.com/hscells/reviewrate/features"
	"github.com/hscells/reviewrate/learning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// column builds one-dimensional feature vectors from dense values.
func column(values ...float64) []features.SparseVector {
	x := make([]features.SparseVector, len(values))
	for i, v := range values {
		x[i] = features.NewSparseVector(1, map[int]float64{0: v})
	}
	return x
}

func TestElasticNetRejectsEmptyTrainingSet(t *testing.T) {
	_, err := learning.NewElasticNet().Fit(nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, failure.ErrEmptyDataset))
}

func TestElasticNetRejectsBadInput(t *testing.T) {
	_, err := learning.NewElasticNet().Fit(column(1, 2), []float64{1})
	assert.True(t, errors.Is(err, failure.ErrDataValidation))

	_, err = learning.NewElasticNet().Fit(column(1, 2), []float64{1, math.NaN()})
	assert.True(t, errors.Is(err, failure.ErrDataValidation))

	mixed := []features.SparseVector{
		features.NewSparseVector(2, map[int]float64{0: 1}),
		features.NewSparseVector(3, map[int]float64{2: 1}),
	}
	_, err = learning.NewElasticNet().Fit(mixed, []float64{1, 2})
	assert.True(t, errors.Is(err, failure.ErrDataValidation))
}

func TestElasticNetValidate(t *testing.T) {
	tests := []struct {
		name string
		net  learning.ElasticNet
	}{
		{"negative regParam", learning.NewElasticNet(learning.RegParam(-0.1))},
		{"elasticNetParam above one", learning.NewElasticNet(learning.ElasticNetParam(1.5))},
		{"elasticNetParam below zero", learning.NewElasticNet(learning.ElasticNetParam(-0.5))},
		{"zero maxIter", learning.NewElasticNet(learning.MaxIter(0))},
		{"negative tol", learning.NewElasticNet(learning.Tolerance(-1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.net.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, failure.ErrConfiguration))
			_, err = tt.net.Fit(column(1, 2), []float64{1, 2})
			assert.True(t, errors.Is(err, failure.ErrConfiguration))
		})
	}
	assert.NoError(t, learning.NewElasticNet(learning.RegParam(0.3), learning.ElasticNetParam(0.8)).Validate())
}

func TestElasticNetConstantLabels(t *testing.T) {
	x := []features.SparseVector{
		features.NewSparseVector(3, map[int]float64{0: 0.5, 2: 0.5}),
		features.NewSparseVector(3, map[int]float64{1: 1}),
		features.NewSparseVector(3, map[int]float64{0: 0.25, 1: 0.75}),
	}
	y := []float64{5, 5, 5}
	m, err := learning.NewElasticNet(learning.RegParam(0.1), learning.ElasticNetParam(0.8)).Fit(x, y)
	require.NoError(t, err)

	assert.Equal(t, 5.0, m.Intercept)
	for _, c := range m.Coefficients {
		assert.Equal(t, 0.0, c)
	}
	assert.Equal(t, y, m.PredictAll(x))
	assert.True(t, m.Summary.Converged)
}

func TestElasticNetOrdinaryLeastSquares(t *testing.T) {
	x := column(1, 2, 3, 4)
	y := []float64{3, 5, 7, 9}

	for _, standardize := range []bool{true, false} {
		m, err := learning.NewElasticNet(learning.Standardization(standardize)).Fit(x, y)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, m.Coefficients[0], 1e-9)
		assert.InDelta(t, 1.0, m.Intercept, 1e-9)
		assert.InDelta(t, 11.0, m.Predict(features.NewSparseVector(1, map[int]float64{0: 5})), 1e-9)
	}
}

func TestElasticNetRidgeClosedForm(t *testing.T) {
	x := column(1, 2, 3, 4)
	y := []float64{2, 4, 6, 8}
	// For a single centred feature, β = cov(x, y) / (var(x) + λ).
	const lambda = 0.5
	m, err := learning.NewElasticNet(
		learning.RegParam(lambda),
		learning.ElasticNetParam(0),
		learning.Standardization(false),
	).Fit(x, y)
	require.NoError(t, err)

	beta := 2.5 / (1.25 + lambda)
	assert.InDelta(t, beta, m.Coefficients[0], 1e-9)
	assert.InDelta(t, 5-beta*2.5, m.Intercept, 1e-9)
	assert.True(t, m.Summary.Converged)
}

func TestElasticNetLassoShrinksToMean(t *testing.T) {
	x := column(1, 2, 3, 4)
	y := []float64{1, 2, 2, 3}
	m, err := learning.NewElasticNet(learning.RegParam(10), learning.ElasticNetParam(1)).Fit(x, y)
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.Coefficients[0])
	assert.InDelta(t, 2.0, m.Intercept, 1e-12)
}

func TestElasticNetObjectiveNonIncreasing(t *testing.T) {
	x := []features.SparseVector{
		features.NewSparseVector(4, map[int]float64{0: 0.5, 1: 0.5}),
		features.NewSparseVector(4, map[int]float64{1: 0.2, 2: 0.8}),
		features.NewSparseVector(4, map[int]float64{2: 0.4, 3: 0.6}),
		features.NewSparseVector(4, map[int]float64{0: 0.9, 3: 0.1}),
		features.NewSparseVector(4, map[int]float64{0: 0.3, 1: 0.3, 2: 0.4}),
	}
	y := []float64{5, 3, 1, 4, 2}
	m, err := learning.NewElasticNet(
		learning.RegParam(0.01),
		learning.ElasticNetParam(0.5),
		learning.MaxIter(500),
		learning.Tolerance(1e-10),
	).Fit(x, y)
	require.NoError(t, err)

	h := m.Summary.ObjectiveHistory
	require.Len(t, h, m.Summary.Iterations+1)
	for i := 1; i < len(h); i++ {
		assert.LessOrEqual(t, h[i], h[i-1]+1e-12, "sweep %d", i)
	}
	assert.Less(t, h[len(h)-1], h[0])
}

func TestElasticNetNonConvergenceIsNotAnError(t *testing.T) {
	// Two strongly correlated features need many sweeps.
	x := []features.SparseVector{
		features.NewSparseVector(2, map[int]float64{0: 1, 1: 1.1}),
		features.NewSparseVector(2, map[int]float64{0: 2, 1: 1.9}),
		features.NewSparseVector(2, map[int]float64{0: 3, 1: 3.05}),
		features.NewSparseVector(2, map[int]float64{0: 4, 1: 4.2}),
	}
	y := []float64{1, 2, 3, 4}
	m, err := learning.NewElasticNet(learning.MaxIter(1), learning.Tolerance(0)).Fit(x, y)
	require.NoError(t, err)
	assert.False(t, m.Summary.Converged)
	assert.Equal(t, 1, m.Summary.Iterations)
	assert.Len(t, m.Coefficients, 2)
}

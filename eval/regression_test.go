package eval_test

import (
	"errors"
	"math"
	"testing"

	"github.com/hscells/reviewrate/eval"
	"github.com/hscells/reviewrate/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRMSE(t *testing.T) {
	s, err := eval.RMSE.Score([]float64{1, 2, 3}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s)

	s, err = eval.RMSE.Score([]float64{2, 4}, []float64{1, 1})
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(5), s, 1e-12)

	s, err = eval.RMSE.Score([]float64{0.5}, []float64{1})
	require.NoError(t, err)
	assert.Greater(t, s, 0.0)
}

func TestRMSEErrors(t *testing.T) {
	_, err := eval.RMSE.Score([]float64{1}, []float64{1, 2})
	if !errors.Is(err, failure.ErrDataValidation) {
		t.Fatalf("expected a data validation error for mismatched lengths, got %v", err)
	}

	_, err = eval.RMSE.Score(nil, nil)
	if !errors.Is(err, failure.ErrEmptyDataset) {
		t.Fatalf("expected an empty dataset error, got %v", err)
	}
}

func TestOtherMeasures(t *testing.T) {
	predicted := []float64{2, 4, 3}
	actual := []float64{1, 5, 3}

	s, err := eval.MSE.Score(predicted, actual)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, s, 1e-12)

	s, err = eval.MAE.Score(predicted, actual)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, s, 1e-12)

	s, err = eval.R2.Score(actual, actual)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s, 1e-12)
}

func TestByName(t *testing.T) {
	for _, name := range []string{"rmse", "RMSE", "mse", "mae", "r2"} {
		e, err := eval.ByName(name)
		require.NoError(t, err)
		assert.Equal(t, e.Name(), e.Name())
	}
	_, err := eval.ByName("auc")
	assert.True(t, errors.Is(err, failure.ErrConfiguration))
}

func TestBetter(t *testing.T) {
	assert.True(t, eval.Better(eval.RMSE, 0.5, 1))
	assert.False(t, eval.Better(eval.RMSE, 1, 1))
	assert.True(t, eval.Better(eval.R2, 0.9, 0.1))
}

package learning

import (
	"github.com/hscells/reviewrate/features"
)

// Regressor fits a linear model to feature vectors and their labels.
type Regressor interface {
	Fit(x []features.SparseVector, y []float64) (LinearModel, error)
}

// Summary describes how fitting a model went.
type Summary struct {
	// Iterations is the number of solver sweeps that were run.
	Iterations int
	// Converged is false when the solver stopped because it ran out of iterations; the model is
	// then the best iterate that was found.
	Converged bool
	// ObjectiveHistory is the value of the objective before the first sweep and after every sweep.
	ObjectiveHistory []float64
}

// LinearModel predicts a label as the dot product of the coefficients and a feature vector, plus
// an intercept. A LinearModel is not modified after it is fit.
type LinearModel struct {
	Coefficients []float64
	Intercept    float64
	Summary      Summary
}

// NumFeatures is the dimension of the vectors the model accepts.
func (m LinearModel) NumFeatures() int {
	return len(m.Coefficients)
}

// Predict computes the prediction for a single feature vector.
func (m LinearModel) Predict(x features.SparseVector) float64 {
	return x.Dot(m.Coefficients) + m.Intercept
}

// PredictAll computes a prediction for every feature vector.
func (m LinearModel) PredictAll(xs []features.SparseVector) []float64 {
	predictions := make([]float64, len(xs))
	for i, x := range xs {
		predictions[i] = m.Predict(x)
	}
	return predictions
}

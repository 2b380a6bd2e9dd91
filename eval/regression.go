package eval

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

type rmse struct{}
type mse struct{}
type mae struct{}
type r2 struct{}

var (
	// RMSE is the root mean squared error.
	RMSE = rmse{}
	// MSE is the mean squared error.
	MSE = mse{}
	// MAE is the mean absolute error.
	MAE = mae{}
	// R2 is the coefficient of determination.
	R2 = r2{}
)

func meanSquaredError(predicted, actual []float64) float64 {
	var sum float64
	for i, p := range predicted {
		d := p - actual[i]
		sum += d * d
	}
	return sum / float64(len(predicted))
}

func (rmse) Name() string {
	return "rmse"
}

func (rmse) LargerIsBetter() bool {
	return false
}

// Score computes sqrt(mean((predicted - actual)²)).
func (rmse) Score(predicted, actual []float64) (float64, error) {
	if err := check(predicted, actual); err != nil {
		return 0, err
	}
	return math.Sqrt(meanSquaredError(predicted, actual)), nil
}

func (mse) Name() string {
	return "mse"
}

func (mse) LargerIsBetter() bool {
	return false
}

func (mse) Score(predicted, actual []float64) (float64, error) {
	if err := check(predicted, actual); err != nil {
		return 0, err
	}
	return meanSquaredError(predicted, actual), nil
}

func (mae) Name() string {
	return "mae"
}

func (mae) LargerIsBetter() bool {
	return false
}

func (mae) Score(predicted, actual []float64) (float64, error) {
	if err := check(predicted, actual); err != nil {
		return 0, err
	}
	var sum float64
	for i, p := range predicted {
		sum += math.Abs(p - actual[i])
	}
	return sum / float64(len(predicted)), nil
}

func (r2) Name() string {
	return "r2"
}

func (r2) LargerIsBetter() bool {
	return true
}

// Score computes 1 - SSres/SStot. Constant labels give NaN or -Inf unless predicted exactly.
func (r2) Score(predicted, actual []float64) (float64, error) {
	if err := check(predicted, actual); err != nil {
		return 0, err
	}
	return stat.RSquaredFrom(predicted, actual, nil), nil
}

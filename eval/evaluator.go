// Package eval scores predictions of a continuous label against the true labels.
package eval

import (
	"strings"

	"github.com/hscells/reviewrate/failure"
	"github.com/pkg/errors"
)

// Evaluator is an interface for scoring predictions against true labels.
type Evaluator interface {
	// Score computes the measure. predicted and actual must be non-empty and of equal length.
	Score(predicted, actual []float64) (float64, error)
	// LargerIsBetter reports the direction in which the measure improves.
	LargerIsBetter() bool
	Name() string
}

var evaluators = map[string]Evaluator{
	RMSE.Name(): RMSE,
	MSE.Name():  MSE,
	MAE.Name():  MAE,
	R2.Name():   R2,
}

// ByName returns the evaluator with the given (case-insensitive) name.
func ByName(name string) (Evaluator, error) {
	if e, ok := evaluators[strings.ToLower(name)]; ok {
		return e, nil
	}
	return nil, failure.Configuration("unknown metric %q", name)
}

// Better reports whether score a improves on score b according to the evaluator.
func Better(e Evaluator, a, b float64) bool {
	if e.LargerIsBetter() {
		return a > b
	}
	return a < b
}

func check(predicted, actual []float64) error {
	if len(predicted) != len(actual) {
		return errors.Wrapf(failure.ErrDataValidation, "%d predictions but %d labels", len(predicted), len(actual))
	}
	if len(predicted) == 0 {
		return errors.Wrap(failure.ErrEmptyDataset, "no predictions to score")
	}
	return nil
}

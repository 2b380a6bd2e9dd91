// Package tuning selects hyperparameters for an estimator by k-fold cross-validation over a grid.
package tuning

import (
	"fmt"

	"github.com/hscells/reviewrate/failure"
)

// Document is a tokenised record: the unit an Estimator is fit to and predicts for.
type Document struct {
	Tokens []string
	Label  float64
}

// Labels extracts the label of every document.
func Labels(docs []Document) []float64 {
	labels := make([]float64, len(docs))
	for i, d := range docs {
		labels[i] = d.Label
	}
	return labels
}

// Params is one combination of hyperparameters.
type Params struct {
	NumFeatures     int
	RegParam        float64
	ElasticNetParam float64
}

func (p Params) String() string {
	return fmt.Sprintf("numFeatures=%d regParam=%g elasticNetParam=%g", p.NumFeatures, p.RegParam, p.ElasticNetParam)
}

// Validate checks that an estimator could be configured with the parameters.
func (p Params) Validate() error {
	if p.NumFeatures <= 0 {
		return failure.Configuration("numFeatures must be positive, got %d", p.NumFeatures)
	}
	if !(p.RegParam >= 0 && p.RegParam <= 1) {
		return failure.Configuration("regParam must be in [0, 1], got %g", p.RegParam)
	}
	if !(p.ElasticNetParam >= 0 && p.ElasticNetParam <= 1) {
		return failure.Configuration("elasticNetParam must be in [0, 1], got %g", p.ElasticNetParam)
	}
	return nil
}

// Grid is an ordered list of parameter combinations. The order is significant: ties in the
// cross-validated score go to the earliest combination.
type Grid []Params

// NewGrid creates the Cartesian product of the parameter values. numFeatures varies slowest and
// elasticNetParams fastest.
func NewGrid(numFeatures []int, regParams []float64, elasticNetParams []float64) (Grid, error) {
	var g Grid
	for _, n := range numFeatures {
		for _, r := range regParams {
			for _, a := range elasticNetParams {
				g = append(g, Params{NumFeatures: n, RegParam: r, ElasticNetParam: a})
			}
		}
	}
	return g, g.Validate()
}

// Validate checks that the grid is non-empty and that every combination is valid.
func (g Grid) Validate() error {
	if len(g) == 0 {
		return failure.Configuration("hyperparameter grid is empty")
	}
	for _, p := range g {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

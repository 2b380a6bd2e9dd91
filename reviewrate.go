// Package reviewrate predicts the rating of a product review from its text.
//
// Review text is tokenised, hashed into term counts, weighted by inverse document frequency and
// normalised; an elastic-net linear regression is then fit to the resulting vectors. The number of
// hash buckets and the strength of the penalty are chosen by k-fold cross-validation, and the
// chosen model is scored by its root mean squared error on the training and test sets.
package reviewrate

import (
	"math"

	"github.com/hscells/reviewrate/failure"
)

// Record is a review: its text and its rating.
type Record struct {
	Text  string
	Label float64
}

// Validate checks the label is a finite number. Empty text is valid.
func (r Record) Validate() error {
	if math.IsNaN(r.Label) || math.IsInf(r.Label, 0) {
		return failure.DataValidation("label %v is not finite", r.Label)
	}
	return nil
}

// Labels extracts the label of every record.
func Labels(records []Record) []float64 {
	labels := make([]float64, len(records))
	for i, r := range records {
		labels[i] = r.Label
	}
	return labels
}

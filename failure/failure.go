// Package failure holds the error kinds shared by the reviewrate packages.
//
// Errors are wrapped with context using github.com/pkg/errors and matched with
// errors.Is against the sentinels below.
package failure

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrDataValidation is raised for a single malformed record.
	ErrDataValidation = errors.New("data validation error")
	// ErrEmptyDataset is raised when a dataset that must contain records is empty.
	ErrEmptyDataset = errors.New("empty dataset")
	// ErrConfiguration is raised when a pipeline, estimator or search is configured
	// with values it cannot run with.
	ErrConfiguration = errors.New("configuration error")
	// ErrAllCandidatesFailed is raised when no hyperparameter combination could be
	// evaluated on every fold.
	ErrAllCandidatesFailed = errors.New("all parameter combinations failed")
)

// Configuration wraps ErrConfiguration with a formatted message.
func Configuration(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConfiguration, format, args...)
}

// DataValidation wraps ErrDataValidation with a formatted message.
func DataValidation(format string, args ...interface{}) error {
	return errors.Wrapf(ErrDataValidation, format, args...)
}

// EmptyTrainingSet reports a training set without records. It matches both ErrEmptyDataset and
// ErrConfiguration, since a search cannot be configured over nothing.
func EmptyTrainingSet(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %w: %s", ErrConfiguration, ErrEmptyDataset, fmt.Sprintf(format, args...))
}

// AllCandidatesFailed wraps ErrAllCandidatesFailed around the first candidate failure, keeping
// both in the chain.
func AllCandidatesFailed(first error) error {
	return fmt.Errorf("%w: first failure: %w", ErrAllCandidatesFailed, first)
}

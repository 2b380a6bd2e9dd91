package tuning

import (
	"math/rand"

	"github.com/hscells/reviewrate/failure"
)

// Folds assigns each of n items to one of k folds. The assignment is a seeded random permutation
// dealt round-robin, so fold sizes differ by at most one and the same seed always gives the same
// folds.
type Folds struct {
	K          int
	assignment []int
}

// NewFolds partitions n items into k folds.
func NewFolds(n, k int, seed int64) (Folds, error) {
	if k < 2 {
		return Folds{}, failure.Configuration("numFolds must be at least 2, got %d", k)
	}
	if n < k {
		return Folds{}, failure.Configuration("%d records cannot be split into %d folds", n, k)
	}
	assignment := make([]int, n)
	for i, item := range rand.New(rand.NewSource(seed)).Perm(n) {
		assignment[item] = i % k
	}
	return Folds{K: k, assignment: assignment}, nil
}

// Len is the number of items that were partitioned.
func (f Folds) Len() int {
	return len(f.assignment)
}

// Fold returns the fold that item i was assigned to.
func (f Folds) Fold(i int) int {
	return f.assignment[i]
}

// Split returns, in ascending order, the items used to train and to validate for a fold.
func (f Folds) Split(fold int) (train, validation []int) {
	for i, a := range f.assignment {
		if a == fold {
			validation = append(validation, i)
		} else {
			train = append(train, i)
		}
	}
	return
}

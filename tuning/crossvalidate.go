package tuning

import (
	"math"
	"runtime"

	"github.com/hscells/reviewrate/eval"
	"github.com/hscells/reviewrate/failure"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/cheggaaa/pb.v1"
)

// Model predicts a label for every document.
type Model interface {
	Predict(docs []Document) []float64
}

// Estimator fits a model to documents using a combination of hyperparameters. Fit is called
// concurrently, so an Estimator must not modify itself.
type Estimator interface {
	Fit(docs []Document, params Params) (Model, error)
}

// Candidate is the cross-validated performance of one combination of hyperparameters.
type Candidate struct {
	Params Params
	// Scores holds the validation score of each fold.
	Scores []float64
	// Mean is the mean of Scores, or NaN if the candidate failed.
	Mean float64
	// Err is the first error from fitting or scoring a fold of this candidate.
	Err error
}

// Failed reports whether any fold of the candidate could not be evaluated.
func (c Candidate) Failed() bool {
	return c.Err != nil
}

// CVResult is the outcome of a cross-validated grid search.
type CVResult struct {
	Metric     string
	NumFolds   int
	Candidates []Candidate
	// Best is the index of the selected candidate.
	Best int
	// Model is the selected candidate refit on all of the documents.
	Model Model
}

// BestParams is the selected combination of hyperparameters.
func (r CVResult) BestParams() Params {
	return r.Candidates[r.Best].Params
}

// BestScore is the mean validation score of the selected candidate.
func (r CVResult) BestScore() float64 {
	return r.Candidates[r.Best].Mean
}

// CrossValidator searches a grid of hyperparameters for the combination whose models score best
// on held-out folds, then refits the estimator on all documents with that combination.
type CrossValidator struct {
	Estimator   Estimator
	Grid        Grid
	Evaluator   eval.Evaluator
	NumFolds    int
	Seed        int64
	Parallelism int

	progress bool
	logger   *zap.Logger
}

// NumFolds sets the number of folds.
func NumFolds(k int) func(*CrossValidator) {
	return func(cv *CrossValidator) {
		cv.NumFolds = k
	}
}

// Seed sets the seed used to assign documents to folds.
func Seed(seed int64) func(*CrossValidator) {
	return func(cv *CrossValidator) {
		cv.Seed = seed
	}
}

// Parallelism bounds how many folds are fit at once.
func Parallelism(n int) func(*CrossValidator) {
	return func(cv *CrossValidator) {
		cv.Parallelism = n
	}
}

// Evaluator sets the measure the candidates are compared by.
func Evaluator(e eval.Evaluator) func(*CrossValidator) {
	return func(cv *CrossValidator) {
		cv.Evaluator = e
	}
}

// Progress shows a progress bar on the terminal while folds are fit.
func Progress(show bool) func(*CrossValidator) {
	return func(cv *CrossValidator) {
		cv.progress = show
	}
}

// Logger sets the logger used to report on the search.
func Logger(logger *zap.Logger) func(*CrossValidator) {
	return func(cv *CrossValidator) {
		cv.logger = logger
	}
}

// NewCrossValidator creates a search over the grid using five folds, a seed of 42, RMSE and one
// worker per CPU, unless configured otherwise.
func NewCrossValidator(estimator Estimator, grid Grid, options ...func(*CrossValidator)) CrossValidator {
	cv := CrossValidator{
		Estimator:   estimator,
		Grid:        grid,
		Evaluator:   eval.RMSE,
		NumFolds:    5,
		Seed:        42,
		Parallelism: runtime.NumCPU(),
		logger:      zap.NewNop(),
	}
	for _, option := range options {
		option(&cv)
	}
	return cv
}

// Validate checks the search can be run, independently of the documents.
func (cv CrossValidator) Validate() error {
	if cv.Estimator == nil {
		return failure.Configuration("no estimator to cross-validate")
	}
	if cv.Evaluator == nil {
		return failure.Configuration("no evaluator to compare candidates with")
	}
	if cv.NumFolds < 2 {
		return failure.Configuration("numFolds must be at least 2, got %d", cv.NumFolds)
	}
	if cv.Parallelism < 1 {
		return failure.Configuration("parallelism must be at least 1, got %d", cv.Parallelism)
	}
	return cv.Grid.Validate()
}

type split struct {
	train      []Document
	validation []Document
	labels     []float64
}

// Fit runs the search. Every combination in the grid is fit and scored on every fold; a
// combination that fails on any fold is not eligible for selection. Of the rest, the one with the
// best mean score is chosen, the earliest in the grid winning ties.
func (cv CrossValidator) Fit(docs []Document) (CVResult, error) {
	if len(docs) == 0 {
		return CVResult{}, failure.EmptyTrainingSet("no documents to cross-validate")
	}
	if err := cv.Validate(); err != nil {
		return CVResult{}, err
	}
	folds, err := NewFolds(len(docs), cv.NumFolds, cv.Seed)
	if err != nil {
		return CVResult{}, err
	}
	logger := cv.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	splits := make([]split, folds.K)
	for f := range splits {
		train, validation := folds.Split(f)
		splits[f] = split{
			train:      pick(docs, train),
			validation: pick(docs, validation),
		}
		splits[f].labels = Labels(splits[f].validation)
	}

	scores := make([][]float64, len(cv.Grid))
	errs := make([][]error, len(cv.Grid))
	for t := range cv.Grid {
		scores[t] = make([]float64, folds.K)
		errs[t] = make([]error, folds.K)
	}

	var bar *pb.ProgressBar
	if cv.progress {
		bar = pb.StartNew(len(cv.Grid) * folds.K)
	}

	logger.Info("starting cross-validation",
		zap.Int("candidates", len(cv.Grid)),
		zap.Int("folds", folds.K),
		zap.Int("documents", len(docs)),
		zap.String("metric", cv.Evaluator.Name()))

	sem := make(chan bool, cv.Parallelism)
	for t := range cv.Grid {
		for f := range splits {
			sem <- true
			go func(t, f int) {
				defer func() { <-sem }()
				scores[t][f], errs[t][f] = cv.evaluate(cv.Grid[t], splits[f])
				if errs[t][f] != nil {
					logger.Warn("could not evaluate fold",
						zap.Stringer("params", cv.Grid[t]),
						zap.Int("fold", f),
						zap.Error(errs[t][f]))
				} else {
					logger.Debug("evaluated fold",
						zap.Stringer("params", cv.Grid[t]),
						zap.Int("fold", f),
						zap.Float64(cv.Evaluator.Name(), scores[t][f]))
				}
				if bar != nil {
					bar.Increment()
				}
			}(t, f)
		}
	}
	// Wait until the last goroutine has read from the semaphore.
	for i := 0; i < cap(sem); i++ {
		sem <- true
	}
	if bar != nil {
		bar.Finish()
	}

	result := CVResult{
		Metric:     cv.Evaluator.Name(),
		NumFolds:   folds.K,
		Candidates: make([]Candidate, len(cv.Grid)),
		Best:       -1,
	}
	var firstErr error
	for t, params := range cv.Grid {
		c := Candidate{Params: params, Scores: scores[t], Mean: math.NaN()}
		for f, err := range errs[t] {
			if err != nil {
				c.Err = errors.Wrapf(err, "%s fold %d", params, f)
				break
			}
		}
		if c.Failed() {
			if firstErr == nil {
				firstErr = c.Err
			}
		} else {
			c.Mean = stat.Mean(c.Scores, nil)
			if result.Best < 0 || cv.improves(c.Mean, result.Candidates[result.Best].Mean) {
				result.Best = t
			}
		}
		result.Candidates[t] = c
	}
	if result.Best < 0 {
		return result, failure.AllCandidatesFailed(firstErr)
	}

	best := result.BestParams()
	logger.Info("selected hyperparameters",
		zap.Stringer("params", best),
		zap.Float64(result.Metric, result.BestScore()))

	result.Model, err = cv.Estimator.Fit(docs, best)
	if err != nil {
		return result, errors.Wrapf(err, "refitting %s", best)
	}
	return result, nil
}

func (cv CrossValidator) evaluate(params Params, s split) (float64, error) {
	model, err := cv.Estimator.Fit(s.train, params)
	if err != nil {
		return 0, err
	}
	return cv.Evaluator.Score(model.Predict(s.validation), s.labels)
}

// improves reports whether mean a beats mean b. A NaN mean never beats anything and is beaten by
// any other mean.
func (cv CrossValidator) improves(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return eval.Better(cv.Evaluator, a, b)
}

func pick(docs []Document, indices []int) []Document {
	picked := make([]Document, len(indices))
	for i, j := range indices {
		picked[i] = docs[j]
	}
	return picked
}

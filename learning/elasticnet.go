// Package learning fits elastic-net regularised linear regression models to sparse feature vectors.
package learning

import (
	"math"

	"github.com/hscells/reviewrate/failure"
	"github.com/hscells/reviewrate/features"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ElasticNet is a linear regression whose coefficients are penalised by a mix of their L1 and L2
// norms. It minimises
//
//	1/(2n) Σ (y - β·x - β₀)² + λ (α‖β‖₁ + (1-α)/2 ‖β‖²)
//
// where λ is RegParam and α is ElasticNetParam (0 is ridge, 1 is lasso). The intercept is not
// penalised. With Standardization, the penalty is applied to the coefficients of features scaled
// to unit variance; the returned coefficients are always on the original scale.
//
// Coordinate descent runs for at most MaxIter sweeps, or until no coefficient moves by more than
// Tol in a sweep. Running out of sweeps is not an error: the best iterate is returned and the
// model's Summary records that it did not converge.
type ElasticNet struct {
	RegParam        float64
	ElasticNetParam float64
	MaxIter         int
	Tol             float64
	Standardization bool

	logger *zap.Logger
}

// RegParam sets the overall strength of the penalty.
func RegParam(regParam float64) func(*ElasticNet) {
	return func(e *ElasticNet) {
		e.RegParam = regParam
	}
}

// ElasticNetParam sets the fraction of the penalty given to the L1 norm.
func ElasticNetParam(alpha float64) func(*ElasticNet) {
	return func(e *ElasticNet) {
		e.ElasticNetParam = alpha
	}
}

// MaxIter bounds the number of sweeps of coordinate descent.
func MaxIter(n int) func(*ElasticNet) {
	return func(e *ElasticNet) {
		e.MaxIter = n
	}
}

// Tolerance sets the largest coefficient change at which the solver stops.
func Tolerance(tol float64) func(*ElasticNet) {
	return func(e *ElasticNet) {
		e.Tol = tol
	}
}

// Standardization controls whether the penalty applies to standardised features.
func Standardization(standardize bool) func(*ElasticNet) {
	return func(e *ElasticNet) {
		e.Standardization = standardize
	}
}

// Logger sets the logger used to report on fitting.
func Logger(logger *zap.Logger) func(*ElasticNet) {
	return func(e *ElasticNet) {
		e.logger = logger
	}
}

// NewElasticNet creates an elastic net with no penalty, 100 sweeps, a tolerance of 1e-6 and
// standardisation, unless configured otherwise.
func NewElasticNet(options ...func(*ElasticNet)) ElasticNet {
	e := ElasticNet{
		MaxIter:         100,
		Tol:             1e-6,
		Standardization: true,
		logger:          zap.NewNop(),
	}
	for _, option := range options {
		option(&e)
	}
	return e
}

// Validate checks that the parameters can be fit with.
func (e ElasticNet) Validate() error {
	switch {
	case e.RegParam < 0 || math.IsNaN(e.RegParam) || math.IsInf(e.RegParam, 0):
		return failure.Configuration("regParam must be a non-negative number, got %v", e.RegParam)
	case !(e.ElasticNetParam >= 0 && e.ElasticNetParam <= 1):
		return failure.Configuration("elasticNetParam must be in [0, 1], got %v", e.ElasticNetParam)
	case e.MaxIter <= 0:
		return failure.Configuration("maxIter must be positive, got %d", e.MaxIter)
	case e.Tol < 0 || math.IsNaN(e.Tol):
		return failure.Configuration("tol must be non-negative, got %v", e.Tol)
	}
	return nil
}

// Fit fits the coefficients and intercept to the training vectors x and labels y.
func (e ElasticNet) Fit(x []features.SparseVector, y []float64) (LinearModel, error) {
	if err := e.Validate(); err != nil {
		return LinearModel{}, err
	}
	if len(x) == 0 {
		return LinearModel{}, errors.Wrap(failure.ErrEmptyDataset, "cannot fit a model to zero training examples")
	}
	if len(x) != len(y) {
		return LinearModel{}, failure.DataValidation("%d feature vectors but %d labels", len(x), len(y))
	}
	for i, label := range y {
		if math.IsNaN(label) || math.IsInf(label, 0) {
			return LinearModel{}, failure.DataValidation("label %d is not finite (%v)", i, label)
		}
	}

	d, centred, err := newDesign(x, y, e.Standardization)
	if err != nil {
		return LinearModel{}, err
	}

	logger := e.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cd := coordinateDescent{
		design: d,
		l1:     e.RegParam * e.ElasticNetParam,
		l2:     e.RegParam * (1 - e.ElasticNetParam),
	}
	s := cd.initial(centred)
	best, bestObjective := s, cd.objective(s)
	history := []float64{bestObjective}
	converged := false
	for s.iteration < e.MaxIter {
		s = cd.step(s)
		objective := cd.objective(s)
		history = append(history, objective)
		if objective <= bestObjective {
			best, bestObjective = s, objective
		}
		if s.maxDelta <= e.Tol {
			converged = true
			break
		}
	}
	if !converged {
		logger.Warn("elastic net did not converge, using best iterate",
			zap.Int("maxIter", e.MaxIter),
			zap.Float64("maxDelta", s.maxDelta),
			zap.Float64("tol", e.Tol),
			zap.Float64("objective", bestObjective))
	}

	coef, intercept := d.unscale(best.coef)
	logger.Debug("fit elastic net",
		zap.Int("samples", d.n),
		zap.Int("features", d.p),
		zap.Int("activeFeatures", len(d.active)),
		zap.Int("iterations", s.iteration),
		zap.Bool("converged", converged))

	return LinearModel{
		Coefficients: coef,
		Intercept:    intercept,
		Summary: Summary{
			Iterations:       s.iteration,
			Converged:        converged,
			ObjectiveHistory: history,
		},
	}, nil
}

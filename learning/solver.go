package learning

import (
	"math"

	"github.com/hscells/reviewrate/failure"
	"github.com/hscells/reviewrate/features"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// design is a column-major view of the training vectors together with the per-column statistics
// needed to centre (and optionally scale) every column without densifying it.
type design struct {
	n, p int

	rows [][]int
	vals [][]float64

	mean   []float64
	colSum []float64
	// scale is the standard deviation of a column when standardising, 1 otherwise.
	scale []float64
	// curvature is the mean squared value of the centred, scaled column.
	curvature []float64

	// active holds the columns that are not constant; the others never get a coefficient.
	active []int

	labelMean float64
}

func newDesign(x []features.SparseVector, y []float64, standardize bool) (*design, []float64, error) {
	n, p := len(x), x[0].Dim
	d := &design{
		n:         n,
		p:         p,
		rows:      make([][]int, p),
		vals:      make([][]float64, p),
		mean:      make([]float64, p),
		colSum:    make([]float64, p),
		scale:     make([]float64, p),
		curvature: make([]float64, p),
	}
	for i, v := range x {
		if v.Dim != p {
			return nil, nil, failure.DataValidation("feature vector %d has dimension %d, expected %d", i, v.Dim, p)
		}
		for k, j := range v.Indices {
			if j < 0 || j >= p {
				return nil, nil, failure.DataValidation("feature vector %d has index %d outside [0, %d)", i, j, p)
			}
			if v.Values[k] == 0 {
				continue
			}
			d.rows[j] = append(d.rows[j], i)
			d.vals[j] = append(d.vals[j], v.Values[k])
		}
	}

	fn := float64(n)
	for j := 0; j < p; j++ {
		if len(d.vals[j]) == 0 {
			continue
		}
		d.colSum[j] = floats.Sum(d.vals[j])
		d.mean[j] = d.colSum[j] / fn
		if constant(d.vals[j], n) {
			continue
		}
		// Two-pass variance; the implicit zeros each contribute mean².
		var ss float64
		for _, v := range d.vals[j] {
			ss += (v - d.mean[j]) * (v - d.mean[j])
		}
		ss += float64(n-len(d.vals[j])) * d.mean[j] * d.mean[j]
		variance := ss / fn
		if variance <= 0 {
			continue
		}
		if standardize {
			d.scale[j] = math.Sqrt(variance)
			d.curvature[j] = 1
		} else {
			d.scale[j] = 1
			d.curvature[j] = variance
		}
		d.active = append(d.active, j)
	}

	d.labelMean = stat.Mean(y, nil)
	centred := make([]float64, n)
	for i, label := range y {
		centred[i] = label - d.labelMean
	}
	return d, centred, nil
}

// constant reports whether a column with the given non-zero values takes a single value over all n rows.
func constant(vals []float64, n int) bool {
	if len(vals) < n {
		return false
	}
	for _, v := range vals[1:] {
		if v != vals[0] {
			return false
		}
	}
	return true
}

// unscale maps coefficients of the centred, scaled columns back to the original columns and
// recovers the intercept.
func (d *design) unscale(coef []float64) ([]float64, float64) {
	beta := make([]float64, d.p)
	intercept := d.labelMean
	for _, j := range d.active {
		beta[j] = coef[j] / d.scale[j]
		intercept -= beta[j] * d.mean[j]
	}
	return beta, intercept
}

// state is a single iterate of coordinate descent. The residual of row i is
// residual[i] + offset; keeping the offset separate means a change to a centred column only
// touches the rows where the column is non-zero.
type state struct {
	coef        []float64
	residual    []float64
	offset      float64
	sumResidual float64
	iteration   int
	// maxDelta is the largest coefficient change made by the sweep that produced this state.
	maxDelta float64
}

type coordinateDescent struct {
	design *design
	l1, l2 float64
}

// initial is the iterate with every coefficient at zero, so the residuals are the centred labels.
func (cd coordinateDescent) initial(centred []float64) state {
	residual := make([]float64, len(centred))
	copy(residual, centred)
	return state{
		coef:        make([]float64, cd.design.p),
		residual:    residual,
		sumResidual: floats.Sum(residual),
		maxDelta:    math.Inf(1),
	}
}

// step performs one sweep over the active columns and returns the next iterate; s is not modified.
func (cd coordinateDescent) step(s state) state {
	d := cd.design
	next := state{
		coef:        make([]float64, len(s.coef)),
		residual:    make([]float64, len(s.residual)),
		offset:      s.offset,
		sumResidual: s.sumResidual,
		iteration:   s.iteration + 1,
	}
	copy(next.coef, s.coef)
	copy(next.residual, s.residual)

	fn := float64(d.n)
	for _, j := range d.active {
		rows, vals := d.rows[j], d.vals[j]

		var dot float64
		for k, i := range rows {
			dot += vals[k] * next.residual[i]
		}
		xr := dot + next.offset*d.colSum[j]
		r := next.sumResidual + fn*next.offset
		gradient := (xr - d.mean[j]*r) / (d.scale[j] * fn)

		old := next.coef[j]
		updated := softThreshold(gradient+d.curvature[j]*old, cd.l1) / (d.curvature[j] + cd.l2)
		delta := updated - old
		if delta == 0 {
			continue
		}
		next.coef[j] = updated
		if math.Abs(delta) > next.maxDelta {
			next.maxDelta = math.Abs(delta)
		}

		f := delta / d.scale[j]
		for k, i := range rows {
			next.residual[i] -= f * vals[k]
		}
		next.sumResidual -= f * d.colSum[j]
		next.offset += f * d.mean[j]
	}
	return next
}

// objective is the penalised loss of an iterate.
func (cd coordinateDescent) objective(s state) float64 {
	var loss float64
	for _, r := range s.residual {
		loss += (r + s.offset) * (r + s.offset)
	}
	loss /= 2 * float64(cd.design.n)
	return loss + cd.l1*floats.Norm(s.coef, 1) + cd.l2/2*floats.Dot(s.coef, s.coef)
}

func softThreshold(x, threshold float64) float64 {
	switch {
	case x > threshold:
		return x - threshold
	case x < -threshold:
		return x + threshold
	}
	return 0
}

// Package features turns token sequences into weighted, normalised sparse vectors using the
// hashing trick and inverse document frequency.
package features

import (
	"math"
	"sort"
)

// SparseVector is a vector of dimension Dim whose non-zero entries are stored at sorted,
// distinct Indices. Absent indices are zero.
type SparseVector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// NewSparseVector creates a sparse vector from a map of index to value. Zero values are dropped.
func NewSparseVector(dim int, m map[int]float64) SparseVector {
	v := SparseVector{
		Dim:     dim,
		Indices: make([]int, 0, len(m)),
		Values:  make([]float64, 0, len(m)),
	}
	for i, x := range m {
		if x != 0 {
			v.Indices = append(v.Indices, i)
		}
	}
	sort.Ints(v.Indices)
	for _, i := range v.Indices {
		v.Values = append(v.Values, m[i])
	}
	return v
}

// Get returns the value at index i.
func (v SparseVector) Get(i int) float64 {
	j := sort.SearchInts(v.Indices, i)
	if j < len(v.Indices) && v.Indices[j] == i {
		return v.Values[j]
	}
	return 0
}

// Dot computes the dot product with a dense vector.
func (v SparseVector) Dot(dense []float64) float64 {
	var sum float64
	for k, i := range v.Indices {
		sum += v.Values[k] * dense[i]
	}
	return sum
}

// Norm computes the p-norm of the vector. p may be math.Inf(1).
func (v SparseVector) Norm(p float64) float64 {
	var n float64
	switch {
	case p == 1:
		for _, x := range v.Values {
			n += math.Abs(x)
		}
	case p == 2:
		for _, x := range v.Values {
			n += x * x
		}
		n = math.Sqrt(n)
	case math.IsInf(p, 1):
		for _, x := range v.Values {
			n = math.Max(n, math.Abs(x))
		}
	default:
		for _, x := range v.Values {
			n += math.Pow(math.Abs(x), p)
		}
		n = math.Pow(n, 1/p)
	}
	return n
}

// Dense expands the vector into a slice of length Dim.
func (v SparseVector) Dense() []float64 {
	d := make([]float64, v.Dim)
	for k, i := range v.Indices {
		d[i] = v.Values[k]
	}
	return d
}

// Map returns a copy of the vector whose values have been passed through fn. Indices are kept even
// if fn maps a value to zero.
func (v SparseVector) Map(fn func(i int, x float64) float64) SparseVector {
	out := SparseVector{
		Dim:     v.Dim,
		Indices: make([]int, len(v.Indices)),
		Values:  make([]float64, len(v.Values)),
	}
	copy(out.Indices, v.Indices)
	for k, i := range v.Indices {
		out.Values[k] = fn(i, v.Values[k])
	}
	return out
}

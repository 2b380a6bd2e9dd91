package features

// Normalizer rescales vectors to unit p-norm.
type Normalizer struct {
	P float64
}

// L1 normalises to unit L1 norm.
var L1 = Normalizer{P: 1}

// Transform divides every component by the p-norm of the vector. The zero vector stays zero.
func (n Normalizer) Transform(v SparseVector) SparseVector {
	p := n.P
	if p <= 0 {
		p = 1
	}
	norm := v.Norm(p)
	if norm == 0 {
		return v.Map(func(_ int, x float64) float64 { return x })
	}
	return v.Map(func(_ int, x float64) float64 {
		return x / norm
	})
}

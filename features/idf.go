package features

import "math"

// IDF holds the inverse document frequency of every bucket, as fit on a training corpus. It is
// never modified after fitting and is safe to share.
type IDF struct {
	weights   []float64
	documents int
}

// FitIDF computes idf(b) = ln((N+1)/(df(b)+1)) + 1 for each of the numFeatures buckets, where N
// is the number of documents and df(b) the number of documents with a non-zero count in b.
// Buckets no document touches get the largest weight, ln(N+1)+1.
func FitIDF(numFeatures int, docs []SparseVector) IDF {
	df := make([]float64, numFeatures)
	for _, d := range docs {
		for k, i := range d.Indices {
			if d.Values[k] != 0 {
				df[i]++
			}
		}
	}
	n := float64(len(docs))
	weights := make([]float64, numFeatures)
	for i := range weights {
		weights[i] = math.Log((n+1)/(df[i]+1)) + 1
	}
	return IDF{weights: weights, documents: len(docs)}
}

// NewIDF recreates an idf from weights that were previously fit on a corpus of documents.
func NewIDF(weights []float64, documents int) IDF {
	return IDF{weights: append([]float64(nil), weights...), documents: documents}
}

// Weights returns a copy of the idf of every bucket.
func (idf IDF) Weights() []float64 {
	return append([]float64(nil), idf.weights...)
}

// Weight returns the idf of bucket i.
func (idf IDF) Weight(i int) float64 {
	return idf.weights[i]
}

// Len is the number of buckets.
func (idf IDF) Len() int {
	return len(idf.weights)
}

// Documents is the number of documents the idf was fit on.
func (idf IDF) Documents() int {
	return idf.documents
}

// Transform scales the counts of a document by the idf of each bucket.
func (idf IDF) Transform(v SparseVector) SparseVector {
	return v.Map(func(i int, x float64) float64 {
		return x * idf.weights[i]
	})
}

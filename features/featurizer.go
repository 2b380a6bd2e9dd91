package features

// Featurizer hashes, weights and normalises token sequences. A Featurizer is fit on a training
// corpus to produce a FittedFeaturizer, which is then applied to any corpus.
type Featurizer struct {
	Hasher     Hasher
	Normalizer Normalizer
}

// FittedFeaturizer holds the idf fit on a training corpus.
type FittedFeaturizer struct {
	Hasher     Hasher
	IDF        IDF
	Normalizer Normalizer
}

// Fit hashes every training document and fits the idf on the result. The transformed training
// vectors are returned alongside the fitted featurizer so that they are not hashed twice.
func (f Featurizer) Fit(docs [][]string) (FittedFeaturizer, []SparseVector) {
	counts := make([]SparseVector, len(docs))
	for i, tokens := range docs {
		counts[i] = f.Hasher.Transform(tokens)
	}
	fitted := FittedFeaturizer{
		Hasher:     f.Hasher,
		IDF:        FitIDF(f.Hasher.NumFeatures(), counts),
		Normalizer: f.Normalizer,
	}
	vectors := make([]SparseVector, len(counts))
	for i, c := range counts {
		vectors[i] = fitted.weight(c)
	}
	return fitted, vectors
}

// Transform produces the feature vector of a single document.
func (f FittedFeaturizer) Transform(tokens []string) SparseVector {
	return f.weight(f.Hasher.Transform(tokens))
}

// TransformAll produces the feature vectors of many documents.
func (f FittedFeaturizer) TransformAll(docs [][]string) []SparseVector {
	vectors := make([]SparseVector, len(docs))
	for i, tokens := range docs {
		vectors[i] = f.Transform(tokens)
	}
	return vectors
}

func (f FittedFeaturizer) weight(counts SparseVector) SparseVector {
	return f.Normalizer.Transform(f.IDF.Transform(counts))
}

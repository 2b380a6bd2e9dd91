package preprocess

import "github.com/reiver/go-porterstemmer"

// Stem reduces each token to its Porter stem.
func Stem(tokens []string) []string {
	stemmed := make([]string, len(tokens))
	for i, token := range tokens {
		stemmed[i] = porterstemmer.StemString(token)
	}
	return stemmed
}

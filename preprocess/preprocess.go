// Package preprocess turns raw review text into the token sequences that are hashed into features.
package preprocess

import (
	"sort"

	"github.com/xtgo/set"
)

// TokenProcessor is applied to a sequence of tokens after tokenisation.
type TokenProcessor func(tokens []string) []string

// Analyser filters text, tokenises it and then applies each processor in order.
type Analyser struct {
	TextFilters []TextFilter
	Tokenizer   Tokenizer
	Processors  []TokenProcessor
}

// NewAnalyser creates an analyser out of a tokenizer and a chain of processors.
func NewAnalyser(tokenizer Tokenizer, processors ...TokenProcessor) Analyser {
	return Analyser{
		Tokenizer:  tokenizer,
		Processors: processors,
	}
}

// WithTextFilters returns a copy of the analyser that filters text before tokenising it.
func (a Analyser) WithTextFilters(filters ...TextFilter) Analyser {
	a.TextFilters = append(append([]TextFilter(nil), a.TextFilters...), filters...)
	return a
}

// Analyse produces the processed tokens for a single piece of text.
func (a Analyser) Analyse(text string) []string {
	for _, f := range a.TextFilters {
		text = f(text)
	}
	return Process(a.Tokenizer.Tokenise(text), a.Processors...)
}

// Process applies processors to tokens in the order they are given.
func Process(tokens []string, processors ...TokenProcessor) []string {
	for _, p := range processors {
		tokens = p(tokens)
	}
	return tokens
}

// Vocabulary returns the sorted, distinct tokens that appear across all the token sequences.
func Vocabulary(docs ...[]string) []string {
	var n int
	for _, d := range docs {
		n += len(d)
	}
	all := make(sort.StringSlice, 0, n)
	for _, d := range docs {
		all = append(all, d...)
	}
	sort.Sort(all)
	return all[:set.Uniq(all)]
}

package preprocess

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// WordBoundary splits on any run of non-word characters.
var WordBoundary = regexp.MustCompile(`\W+`)

// Tokenizer splits lowercased text into tokens on a gap pattern.
type Tokenizer struct {
	pattern        *regexp.Regexp
	minTokenLength int
}

// TokenizerPattern sets the gap pattern tokens are split on.
func TokenizerPattern(pattern *regexp.Regexp) func(*Tokenizer) {
	return func(t *Tokenizer) {
		t.pattern = pattern
	}
}

// TokenizerMinLength drops tokens with fewer than n characters.
func TokenizerMinLength(n int) func(*Tokenizer) {
	return func(t *Tokenizer) {
		t.minTokenLength = n
	}
}

// NewTokenizer creates a tokenizer splitting on WordBoundary and keeping every non-empty token,
// unless configured otherwise.
func NewTokenizer(options ...func(*Tokenizer)) Tokenizer {
	t := Tokenizer{
		pattern:        WordBoundary,
		minTokenLength: 1,
	}
	for _, option := range options {
		option(&t)
	}
	if t.minTokenLength < 1 {
		t.minTokenLength = 1
	}
	return t
}

// Tokenise lowercases text and splits it into tokens. Text with no word characters produces an
// empty (non-nil) slice.
func (t Tokenizer) Tokenise(text string) []string {
	parts := t.pattern.Split(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if utf8.RuneCountInString(p) < t.minTokenLength {
			continue
		}
		tokens = append(tokens, p)
	}
	return tokens
}

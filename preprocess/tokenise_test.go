package preprocess_test

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hscells/reviewrate/preprocess"
	"github.com/stretchr/testify/assert"
)

func TestTokenise(t *testing.T) {
	tokenizer := preprocess.NewTokenizer()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple", "Great Camera, would buy again!", []string{"great", "camera", "would", "buy", "again"}},
		{"leading punctuation", "...works fine", []string{"works", "fine"}},
		{"numbers and underscores", "5 stars for snake_case", []string{"5", "stars", "for", "snake_case"}},
		{"empty", "", []string{}},
		{"punctuation only", "?!... --", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenizer.Tokenise(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenise(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestTokeniseOptions(t *testing.T) {
	tokenizer := preprocess.NewTokenizer(
		preprocess.TokenizerPattern(regexp.MustCompile(`\s+`)),
		preprocess.TokenizerMinLength(3),
	)
	assert.Equal(t, []string{"it's", "good!"}, tokenizer.Tokenise("It's a good!"))
}

func TestAnalyser(t *testing.T) {
	filter, err := preprocess.NewStopWordFilter(preprocess.StopWords("the", "is"))
	assert.NoError(t, err)

	a := preprocess.NewAnalyser(preprocess.NewTokenizer(), filter.Filter, preprocess.Stem)
	assert.Equal(t, []string{"batteri", "last"}, a.Analyse("The battery is lasting"))
}

func TestVocabulary(t *testing.T) {
	v := preprocess.Vocabulary([]string{"b", "a", "b"}, []string{"c", "a"}, nil)
	assert.Equal(t, []string{"a", "b", "c"}, v)
	assert.Empty(t, preprocess.Vocabulary())
}

func TestTextFilters(t *testing.T) {
	assert.Equal(t, "cafe", preprocess.Transliterate("café"))

	a := preprocess.NewAnalyser(preprocess.NewTokenizer()).WithTextFilters(preprocess.Transliterate)
	if diff := cmp.Diff([]string{"creme", "brulee"}, a.Analyse("Crème Brûlée")); diff != "" {
		t.Errorf("transliterated tokens differ (-want +got):\n%s", diff)
	}

	tokens := preprocess.NewAnalyser(preprocess.NewTokenizer()).
		WithTextFilters(preprocess.StripHTML).
		Analyse("<p>great <b>phone</b></p>")
	assert.Contains(t, tokens, "great")
	assert.Contains(t, tokens, "phone")
	assert.NotContains(t, tokens, "b")
}

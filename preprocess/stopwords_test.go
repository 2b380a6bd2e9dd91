package preprocess_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/hscells/reviewrate/failure"
	"github.com/hscells/reviewrate/preprocess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopWordFilterDefaultList(t *testing.T) {
	f, err := preprocess.NewStopWordFilter()
	require.NoError(t, err)

	assert.True(t, f.IsStopWord("the"))
	assert.False(t, f.IsStopWord("battery"))
	// Cached verdicts do not change.
	assert.True(t, f.IsStopWord("the"))
	assert.Equal(t, []string{"battery"}, f.Filter([]string{"the", "battery"}))
}

func TestStopWordFilterOnlyListedWords(t *testing.T) {
	f, err := preprocess.NewStopWordFilter()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		token string
		stop  bool
	}{
		{"the", true},
		{"and", true},
		{"is", true},
		{"a", true},
		{"s", false},
		{"x", false},
		{"5", false},
		{"10", false},
		{"100", false},
		{"2019", false},
		{"4a", false},
		{"a4", false},
		{"_", false},
		{"battery", false},
		{"stars", false},
	}
	for _, test := range tests {
		if got := f.IsStopWord(test.token); got != test.stop {
			t.Errorf("IsStopWord(%q) = %v, expected %v", test.token, got, test.stop)
		}
	}

	tokens := preprocess.NewAnalyser(preprocess.NewTokenizer(), f.Filter).Analyse("5 stars and the 2 year warranty")
	expected := []string{"5", "stars", "2", "year", "warranty"}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, tokens)
	}
	for i := range expected {
		if tokens[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, tokens)
		}
	}
}

func TestStopWordsLanguage(t *testing.T) {
	for _, tag := range []string{"en", "EN", "en-GB", "fr", "de"} {
		if _, err := preprocess.NewStopWordFilter(preprocess.StopWordsLanguage(tag)); err != nil {
			t.Errorf("language %q: %v", tag, err)
		}
	}
	for _, tag := range []string{"english", "xx", "zh", ""} {
		_, err := preprocess.NewStopWordFilter(preprocess.StopWordsLanguage(tag))
		if !errors.Is(err, failure.ErrConfiguration) {
			t.Errorf("language %q: expected a configuration error, got %v", tag, err)
		}
	}
	// A custom list does not need a language.
	if _, err := preprocess.NewStopWordFilter(preprocess.StopWordsLanguage("xx"), preprocess.StopWords("foo")); err != nil {
		t.Fatal(err)
	}
}

func TestStopWordFilterCustom(t *testing.T) {
	f, err := preprocess.NewStopWordFilter(preprocess.StopWords("Foo", "bar"))
	require.NoError(t, err)

	got := f.Filter([]string{"foo", "baz", "bar", "qux", "foo"})
	assert.Equal(t, []string{"baz", "qux"}, got)
	assert.Empty(t, f.Filter([]string{"foo", "bar"}))
	assert.Empty(t, f.Filter(nil))
}

func TestStopWordFilterConcurrent(t *testing.T) {
	f, err := preprocess.NewStopWordFilter(preprocess.StopWordsCacheSize(2))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Equal(t, []string{"battery", "charger"}, f.Filter([]string{"the", "battery", "and", "charger"}))
			}
		}()
	}
	wg.Wait()
}

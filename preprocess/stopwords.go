package preprocess

import (
	"regexp"
	"strings"

	"github.com/bbalet/stopwords"
	"github.com/hashicorp/golang-lru"
	"github.com/hscells/reviewrate/failure"
	"github.com/samber/lo"
	"golang.org/x/text/language"
)

// DefaultStopWordsLanguage is the language whose default list is used when none is configured.
const DefaultStopWordsLanguage = "en"

// StopWordsLanguages are the language codes that have a default stop word list.
var StopWordsLanguages = []string{
	"ar", "bg", "cs", "da", "de", "el", "en", "es", "fa", "fi", "fr", "hu", "id", "it",
	"ja", "km", "lv", "nl", "no", "pl", "pt", "ro", "ru", "sk", "sv", "th", "tr",
}

// dictionaryWord matches a token the default lists could contain. Anything else, such as a
// number, is never a stop word.
var dictionaryWord = regexp.MustCompile(`^[\pL\p{Mc}\p{Mn}_'-]+$`)

// StopWordsLanguageCode normalises a language tag (e.g. "en-GB") to the code of its default stop
// word list, failing for languages without one.
func StopWordsLanguageCode(tag string) (string, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return "", failure.Configuration("stop words language %q: %v", tag, err)
	}
	base, _ := t.Base()
	code := base.String()
	if !lo.Contains(StopWordsLanguages, code) {
		return "", failure.Configuration("no stop word list for language %q", tag)
	}
	return code, nil
}

// StopWordFilter removes stop words from token sequences. Unless a custom set of words is given,
// the default list for a language is used. Verdicts for the default list are cached, and the
// filter is safe for concurrent use.
type StopWordFilter struct {
	language  string
	words     map[string]struct{}
	cacheSize int
	cache     *lru.Cache
}

// StopWordsLanguage selects the default stop word list for a language code (e.g. "en").
func StopWordsLanguage(language string) func(*StopWordFilter) {
	return func(f *StopWordFilter) {
		f.language = language
	}
}

// StopWords replaces the default list with a fixed set of words.
func StopWords(words ...string) func(*StopWordFilter) {
	return func(f *StopWordFilter) {
		f.words = make(map[string]struct{}, len(words))
		for _, w := range words {
			f.words[strings.ToLower(w)] = struct{}{}
		}
	}
}

// StopWordsCacheSize sets how many token verdicts are remembered.
func StopWordsCacheSize(n int) func(*StopWordFilter) {
	return func(f *StopWordFilter) {
		f.cacheSize = n
	}
}

// NewStopWordFilter creates a new stop word filter.
func NewStopWordFilter(options ...func(*StopWordFilter)) (*StopWordFilter, error) {
	f := &StopWordFilter{
		language:  DefaultStopWordsLanguage,
		cacheSize: 1 << 16,
	}
	for _, option := range options {
		option(f)
	}
	if f.words == nil {
		code, err := StopWordsLanguageCode(f.language)
		if err != nil {
			return nil, err
		}
		f.language = code
	}
	cache, err := lru.New(f.cacheSize)
	if err != nil {
		return nil, err
	}
	f.cache = cache
	return f, nil
}

// IsStopWord reports whether a (lowercase) token is a stop word.
func (f *StopWordFilter) IsStopWord(token string) bool {
	if f.words != nil {
		_, ok := f.words[token]
		return ok
	}
	if !dictionaryWord.MatchString(token) {
		return false
	}
	if v, ok := f.cache.Get(token); ok {
		return v.(bool)
	}
	// The cleaner removes stop words from the string, so a stop word comes back blank.
	stop := len(strings.TrimSpace(stopwords.CleanString(token, f.language, false))) == 0
	f.cache.Add(token, stop)
	return stop
}

// Filter returns the tokens that are not stop words, in their original order.
func (f *StopWordFilter) Filter(tokens []string) []string {
	return lo.Filter(tokens, func(token string, _ int) bool {
		return !f.IsStopWord(token)
	})
}

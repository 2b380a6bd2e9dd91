package preprocess

import (
	"strings"

	"github.com/dan-locke/clean-html"
	"github.com/hscells/go-unidecode"
)

// TextFilter rewrites raw text before it is tokenised.
type TextFilter func(text string) string

// StripHTML keeps only the text content of any markup. Text that cannot be parsed is returned as
// it is.
func StripHTML(text string) string {
	portions, err := clean_html.TextPos([]byte(text))
	if err != nil {
		return text
	}
	var b strings.Builder
	for i := range portions.Positions {
		b.WriteString(text[portions.Positions[i][0]:portions.Positions[i][1]])
		b.WriteByte(' ')
	}
	return b.String()
}

// Transliterate replaces non-ASCII characters with their closest ASCII spelling.
func Transliterate(text string) string {
	return unidecode.Unidecode(text)
}

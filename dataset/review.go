// Package dataset reads review records from JSON lines files.
package dataset

import (
	"math"

	"github.com/hscells/reviewrate"
	"github.com/hscells/reviewrate/failure"
	"github.com/mailru/easyjson/jlexer"
)

// Review is a single line of a review dataset. Fields are pointers so that a missing field can be
// told apart from a zero value.
type Review struct {
	ReviewerID     *string
	ASIN           *string
	Summary        *string
	ReviewText     *string
	Overall        *float64
	UnixReviewTime *int64
}

// Record converts the review into a record, checking that it has text and a finite rating.
func (r Review) Record() (reviewrate.Record, error) {
	if r.ReviewText == nil {
		return reviewrate.Record{}, failure.DataValidation("missing reviewText")
	}
	if r.Overall == nil {
		return reviewrate.Record{}, failure.DataValidation("missing overall")
	}
	if math.IsNaN(*r.Overall) || math.IsInf(*r.Overall, 0) {
		return reviewrate.Record{}, failure.DataValidation("overall is not finite")
	}
	return reviewrate.Record{Text: *r.ReviewText, Label: *r.Overall}, nil
}

// UnmarshalJSON supports json.Unmarshaler interface
func (r *Review) UnmarshalJSON(data []byte) error {
	in := jlexer.Lexer{Data: data}
	decodeReview(&in, r)
	return in.Error()
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (r *Review) UnmarshalEasyJSON(l *jlexer.Lexer) {
	decodeReview(l, r)
}

func decodeReview(in *jlexer.Lexer, out *Review) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "reviewerID":
			v := in.String()
			out.ReviewerID = &v
		case "asin":
			v := in.String()
			out.ASIN = &v
		case "summary":
			v := in.String()
			out.Summary = &v
		case "reviewText":
			v := in.String()
			out.ReviewText = &v
		case "overall":
			v := in.Float64()
			out.Overall = &v
		case "unixReviewTime":
			v := in.Int64()
			out.UnixReviewTime = &v
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

package output

import (
	"math"

	"github.com/hscells/reviewrate"
	"github.com/hscells/reviewrate/tuning"
	"github.com/mailru/easyjson/jwriter"
)

// Report is the summary of a run that is written as JSON.
type Report struct {
	RunID      string
	Metric     string
	NumFolds   int
	BestParams tuning.Params
	TrainRMSE  float64
	TestRMSE   float64
	Iterations int
	Converged  bool
	// NonZero is the number of non-zero coefficients of the selected model.
	NonZero    int
	Intercept  float64
	Candidates []CandidateReport
}

// CandidateReport is the cross-validated performance of one combination of hyperparameters.
type CandidateReport struct {
	Params tuning.Params
	Scores []float64
	Mean   float64
	Error  string
}

// NewReport summarises a result.
func NewReport(result reviewrate.Result) Report {
	model := result.Model.Model
	r := Report{
		RunID:      result.RunID.String(),
		Metric:     result.CV.Metric,
		NumFolds:   result.CV.NumFolds,
		BestParams: result.BestParams(),
		TrainRMSE:  result.TrainRMSE,
		TestRMSE:   result.TestRMSE,
		Iterations: model.Summary.Iterations,
		Converged:  model.Summary.Converged,
		Intercept:  model.Intercept,
		Candidates: make([]CandidateReport, len(result.CV.Candidates)),
	}
	for _, c := range model.Coefficients {
		if c != 0 {
			r.NonZero++
		}
	}
	for i, c := range result.CV.Candidates {
		r.Candidates[i] = CandidateReport{
			Params: c.Params,
			Scores: c.Scores,
			Mean:   c.Mean,
		}
		if c.Failed() {
			r.Candidates[i].Error = c.Err.Error()
		}
	}
	return r
}

// JSONFormatter outputs a report of the run in a JSON format.
func JSONFormatter(result reviewrate.Result) (string, error) {
	b, err := NewReport(result).MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// MarshalJSON supports json.Marshaler interface
func (r Report) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	r.MarshalEasyJSON(&w)
	return w.BuildBytes()
}

// MarshalEasyJSON supports easyjson.Marshaler interface
func (r Report) MarshalEasyJSON(out *jwriter.Writer) {
	out.RawByte('{')
	out.RawString(`"runId":`)
	out.String(r.RunID)
	out.RawString(`,"metric":`)
	out.String(r.Metric)
	out.RawString(`,"numFolds":`)
	out.Int(r.NumFolds)
	out.RawString(`,"bestParams":`)
	encodeParams(out, r.BestParams)
	out.RawString(`,"trainRmse":`)
	encodeFloat(out, r.TrainRMSE)
	out.RawString(`,"testRmse":`)
	encodeFloat(out, r.TestRMSE)
	out.RawString(`,"iterations":`)
	out.Int(r.Iterations)
	out.RawString(`,"converged":`)
	out.Bool(r.Converged)
	out.RawString(`,"nonZero":`)
	out.Int(r.NonZero)
	out.RawString(`,"intercept":`)
	encodeFloat(out, r.Intercept)
	out.RawString(`,"candidates":`)
	out.RawByte('[')
	for i, c := range r.Candidates {
		if i > 0 {
			out.RawByte(',')
		}
		c.MarshalEasyJSON(out)
	}
	out.RawByte(']')
	out.RawByte('}')
}

// MarshalEasyJSON supports easyjson.Marshaler interface
func (c CandidateReport) MarshalEasyJSON(out *jwriter.Writer) {
	out.RawByte('{')
	out.RawString(`"params":`)
	encodeParams(out, c.Params)
	out.RawString(`,"scores":`)
	if c.Error != "" || c.Scores == nil {
		out.RawString("null")
	} else {
		out.RawByte('[')
		for i, s := range c.Scores {
			if i > 0 {
				out.RawByte(',')
			}
			encodeFloat(out, s)
		}
		out.RawByte(']')
	}
	out.RawString(`,"mean":`)
	encodeFloat(out, c.Mean)
	if c.Error != "" {
		out.RawString(`,"error":`)
		out.String(c.Error)
	}
	out.RawByte('}')
}

func encodeParams(out *jwriter.Writer, p tuning.Params) {
	out.RawString(`{"numFeatures":`)
	out.Int(p.NumFeatures)
	out.RawString(`,"regParam":`)
	encodeFloat(out, p.RegParam)
	out.RawString(`,"elasticNetParam":`)
	encodeFloat(out, p.ElasticNetParam)
	out.RawByte('}')
}

// encodeFloat writes null for values JSON cannot represent.
func encodeFloat(out *jwriter.Writer, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		out.RawString("null")
		return
	}
	out.Float64(v)
}

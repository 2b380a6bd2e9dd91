// Package output provides different formats of output for pipeline results.
package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/hscells/reviewrate"
	"github.com/hscells/reviewrate/failure"
	"github.com/olekukonko/tablewriter"
)

// Formatter renders the result of a run.
type Formatter func(result reviewrate.Result) (string, error)

var formatters = map[string]Formatter{
	"plain": PlainFormatter,
	"json":  JSONFormatter,
	"table": TableFormatter,
	"csv":   CSVFormatter,
}

// ByName returns the formatter with the given (case-insensitive) name.
func ByName(name string) (Formatter, error) {
	if f, ok := formatters[strings.ToLower(name)]; ok {
		return f, nil
	}
	return nil, failure.Configuration("unknown output format %q", name)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PlainFormatter outputs the train and test rmse, one directly after the other.
func PlainFormatter(result reviewrate.Result) (string, error) {
	return formatFloat(result.TrainRMSE) + formatFloat(result.TestRMSE), nil
}

// TableFormatter outputs the cross-validation scores of every candidate as a table, with the
// selected candidate marked.
func TableFormatter(result reviewrate.Result) (string, error) {
	var buff bytes.Buffer
	table := tablewriter.NewWriter(&buff)

	header := []string{"", "numFeatures", "regParam", "elasticNetParam"}
	for f := 0; f < result.CV.NumFolds; f++ {
		header = append(header, "fold "+strconv.Itoa(f+1))
	}
	header = append(header, "mean "+result.CV.Metric)
	table.SetHeader(header)

	for i, row := range rows(result) {
		marker := ""
		if i == result.CV.Best {
			marker = "*"
		}
		table.Append(append([]string{marker}, row...))
	}
	table.Render()

	buff.WriteString("train rmse: " + formatFloat(result.TrainRMSE) + "\n")
	buff.WriteString("test rmse: " + formatFloat(result.TestRMSE) + "\n")
	return buff.String(), nil
}

// CSVFormatter outputs the cross-validation scores of every candidate as comma separated values.
func CSVFormatter(result reviewrate.Result) (string, error) {
	var buff bytes.Buffer
	w := csv.NewWriter(&buff)

	header := []string{"numFeatures", "regParam", "elasticNetParam"}
	for f := 0; f < result.CV.NumFolds; f++ {
		header = append(header, "fold"+strconv.Itoa(f+1))
	}
	header = append(header, result.CV.Metric, "selected")
	if err := w.Write(header); err != nil {
		return "", err
	}
	for i, row := range rows(result) {
		if err := w.Write(append(row, strconv.FormatBool(i == result.CV.Best))); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buff.String(), w.Error()
}

// rows renders each candidate's parameters, fold scores and mean. Failed candidates have blank
// scores.
func rows(result reviewrate.Result) [][]string {
	rows := make([][]string, len(result.CV.Candidates))
	for i, c := range result.CV.Candidates {
		row := []string{
			strconv.Itoa(c.Params.NumFeatures),
			formatFloat(c.Params.RegParam),
			formatFloat(c.Params.ElasticNetParam),
		}
		for f := 0; f < result.CV.NumFolds; f++ {
			if c.Failed() || f >= len(c.Scores) {
				row = append(row, "")
			} else {
				row = append(row, formatFloat(c.Scores[f]))
			}
		}
		if c.Failed() {
			row = append(row, "")
		} else {
			row = append(row, formatFloat(c.Mean))
		}
		rows[i] = row
	}
	return rows
}

// PredictionsFormatter outputs the label and predicted rating of each record as comma separated
// values.
func PredictionsFormatter(records []reviewrate.Record, predictions []float64) (string, error) {
	if len(records) != len(predictions) {
		return "", failure.DataValidation("%d predictions for %d records", len(predictions), len(records))
	}
	var buff bytes.Buffer
	w := csv.NewWriter(&buff)
	if err := w.Write([]string{"label", "prediction"}); err != nil {
		return "", err
	}
	for i, r := range records {
		if err := w.Write([]string{formatFloat(r.Label), formatFloat(predictions[i])}); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buff.String(), w.Error()
}

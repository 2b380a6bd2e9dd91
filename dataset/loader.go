package dataset

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/hscells/reviewrate"
	"github.com/hscells/reviewrate/failure"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Stats counts what happened to the lines of a file.
type Stats struct {
	Lines   int
	Records int
	Skipped int
}

// Loader reads JSON lines of reviews. By default the first invalid line aborts the read; a loader
// that skips invalid lines logs and counts them instead.
type Loader struct {
	skipInvalid bool
	maxLineSize int
	logger      *zap.Logger
}

// SkipInvalid skips lines that are not valid reviews instead of failing.
func SkipInvalid(skip bool) func(*Loader) {
	return func(l *Loader) {
		l.skipInvalid = skip
	}
}

// MaxLineSize sets the length in bytes of the longest line that can be read.
func MaxLineSize(n int) func(*Loader) {
	return func(l *Loader) {
		l.maxLineSize = n
	}
}

// Logger sets the logger invalid lines are reported to.
func Logger(logger *zap.Logger) func(*Loader) {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a loader that aborts on invalid lines up to 16MB long, unless configured
// otherwise.
func NewLoader(options ...func(*Loader)) Loader {
	l := Loader{
		maxLineSize: 16 * 1024 * 1024,
		logger:      zap.NewNop(),
	}
	for _, option := range options {
		option(&l)
	}
	return l
}

// Read parses every non-blank line of r into a record.
func (l Loader) Read(r io.Reader) ([]reviewrate.Record, Stats, error) {
	var (
		records []reviewrate.Record
		stats   Stats
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), l.maxLineSize)
	for scanner.Scan() {
		stats.Lines++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		record, err := parse(line)
		if err != nil {
			err = errors.Wrapf(err, "line %d", stats.Lines)
			if !l.skipInvalid {
				return nil, stats, err
			}
			l.logger.Warn("skipping invalid line", zap.Int("line", stats.Lines), zap.Error(err))
			stats.Skipped++
			continue
		}
		records = append(records, record)
		stats.Records++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, errors.Wrapf(err, "reading line %d", stats.Lines+1)
	}
	return records, stats, nil
}

// ReadFile reads the records of a JSON lines file.
func (l Loader) ReadFile(path string) ([]reviewrate.Record, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, err
	}
	defer f.Close()
	records, stats, err := l.Read(f)
	if err != nil {
		return nil, stats, errors.Wrap(err, path)
	}
	l.logger.Info("read dataset",
		zap.String("path", path),
		zap.Int("records", stats.Records),
		zap.Int("skipped", stats.Skipped))
	return records, stats, nil
}

func parse(line []byte) (reviewrate.Record, error) {
	var review Review
	if err := review.UnmarshalJSON(line); err != nil {
		return reviewrate.Record{}, failure.DataValidation("malformed review: %v", err)
	}
	return review.Record()
}

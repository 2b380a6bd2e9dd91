package reviewrate

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hscells/reviewrate/failure"
	"github.com/hscells/reviewrate/preprocess"
	"github.com/hscells/reviewrate/tuning"
	"github.com/magiconair/properties"
	"github.com/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// stopwords accepts a language tag that has a default stop word list.
	err := v.RegisterValidation("stopwords", func(fl validator.FieldLevel) bool {
		_, err := preprocess.StopWordsLanguageCode(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic(err)
	}
	return v
}

// Config holds the settings of a pipeline.
type Config struct {
	NumFeaturesGrid []int     `validate:"required,min=1,dive,gt=0"`
	RegParamGrid    []float64 `validate:"required,min=1,dive,gte=0,lte=1"`
	ElasticNetParam float64   `validate:"gte=0,lte=1"`
	MaxIter         int       `validate:"gt=0"`
	NumFolds        int       `validate:"gte=2"`
	Tol             float64   `validate:"gte=0"`
	Standardization bool
	Seed            int64
	Parallelism     int    `validate:"gte=1"`
	Metric          string `validate:"oneof=rmse mse mae r2"`

	StripHTML         bool
	Transliterate     bool
	StopWordsLanguage string `validate:"required,stopwords"`
	Stem              bool
	MinTokenLength    int `validate:"gte=1"`
	Binary            bool
	NormP             float64 `validate:"gt=0"`
}

// DefaultConfig is the configuration used for any setting that is not given.
func DefaultConfig() Config {
	return Config{
		NumFeaturesGrid:   []int{1000, 5000, 10000},
		RegParamGrid:      []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9},
		ElasticNetParam:   0.8,
		MaxIter:           20,
		NumFolds:          5,
		Tol:               1e-6,
		Standardization:   true,
		Seed:              42,
		Parallelism:       runtime.NumCPU(),
		Metric:            "rmse",
		StopWordsLanguage: "en",
		MinTokenLength:    1,
		NormP:             1,
	}
}

// Validate checks every setting, returning a configuration error naming the settings that are
// out of range.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, len(verrs))
		for i, v := range verrs {
			fields[i] = v.Namespace() + " failed " + v.Tag()
		}
		return failure.Configuration("invalid settings: %s", strings.Join(fields, "; "))
	}
	return errors.Wrap(failure.ErrConfiguration, err.Error())
}

// Grid is the hyperparameter grid the configuration searches.
func (c Config) Grid() (tuning.Grid, error) {
	return tuning.NewGrid(c.NumFeaturesGrid, c.RegParamGrid, []float64{c.ElasticNetParam})
}

// LoadConfig reads a properties file over the default configuration.
func LoadConfig(path string) (Config, error) {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return Config{}, errors.Wrapf(failure.ErrConfiguration, "loading %s: %v", path, err)
	}
	return FromProperties(p)
}

// ParseConfig reads properties from a string over the default configuration.
func ParseConfig(s string) (Config, error) {
	p, err := properties.LoadString(s)
	if err != nil {
		return Config{}, errors.Wrapf(failure.ErrConfiguration, "parsing properties: %v", err)
	}
	return FromProperties(p)
}

// FromProperties overrides the default configuration with any of the following keys that are
// set: numFeatures, regParam, elasticNetParam, maxIter, numFolds, tol, standardization, seed,
// parallelism, metric, stripHTML, transliterate, stopWords.language, stem, minTokenLength, binary and normP. numFeatures and
// regParam are comma separated lists. The result is not validated.
func FromProperties(p *properties.Properties) (Config, error) {
	c := DefaultConfig()
	r := propertyReader{p: p}
	r.intList("numFeatures", &c.NumFeaturesGrid)
	r.floatList("regParam", &c.RegParamGrid)
	r.floatValue("elasticNetParam", &c.ElasticNetParam)
	r.intValue("maxIter", &c.MaxIter)
	r.intValue("numFolds", &c.NumFolds)
	r.floatValue("tol", &c.Tol)
	r.boolValue("standardization", &c.Standardization)
	r.int64Value("seed", &c.Seed)
	r.intValue("parallelism", &c.Parallelism)
	if v, ok := p.Get("metric"); ok {
		c.Metric = strings.ToLower(strings.TrimSpace(v))
	}
	r.boolValue("stripHTML", &c.StripHTML)
	r.boolValue("transliterate", &c.Transliterate)
	if v, ok := p.Get("stopWords.language"); ok {
		c.StopWordsLanguage = strings.TrimSpace(v)
	}
	r.boolValue("stem", &c.Stem)
	r.intValue("minTokenLength", &c.MinTokenLength)
	r.boolValue("binary", &c.Binary)
	r.floatValue("normP", &c.NormP)
	return c, r.err
}

// propertyReader parses properties into typed settings, remembering the first failure.
type propertyReader struct {
	p   *properties.Properties
	err error
}

func (r *propertyReader) get(key string) (string, bool) {
	if r.err != nil {
		return "", false
	}
	v, ok := r.p.Get(key)
	return strings.TrimSpace(v), ok
}

func (r *propertyReader) fail(key, v string, err error) {
	r.err = failure.Configuration("%s=%q: %v", key, v, err)
}

func (r *propertyReader) intValue(key string, dst *int) {
	if v, ok := r.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			r.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (r *propertyReader) int64Value(key string, dst *int64) {
	if v, ok := r.get(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			r.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (r *propertyReader) floatValue(key string, dst *float64) {
	if v, ok := r.get(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			r.fail(key, v, err)
			return
		}
		*dst = f
	}
}

func (r *propertyReader) boolValue(key string, dst *bool) {
	if v, ok := r.get(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			r.fail(key, v, err)
			return
		}
		*dst = b
	}
}

func (r *propertyReader) intList(key string, dst *[]int) {
	if v, ok := r.get(key); ok {
		var ns []int
		for _, s := range splitList(v) {
			n, err := strconv.Atoi(s)
			if err != nil {
				r.fail(key, v, err)
				return
			}
			ns = append(ns, n)
		}
		*dst = ns
	}
}

func (r *propertyReader) floatList(key string, dst *[]float64) {
	if v, ok := r.get(key); ok {
		var fs []float64
		for _, s := range splitList(v) {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				r.fail(key, v, err)
				return
			}
			fs = append(fs, f)
		}
		*dst = fs
	}
}

func splitList(v string) []string {
	var items []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); len(s) > 0 {
			items = append(items, s)
		}
	}
	return items
}

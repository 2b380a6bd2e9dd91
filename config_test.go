package reviewrate_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/hscells/reviewrate"
	"github.com/hscells/reviewrate/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := reviewrate.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []int{1000, 5000, 10000}, cfg.NumFeaturesGrid)
	assert.Len(t, cfg.RegParamGrid, 9)
	assert.Equal(t, 0.8, cfg.ElasticNetParam)
	assert.Equal(t, 20, cfg.MaxIter)
	assert.Equal(t, 5, cfg.NumFolds)
	assert.Equal(t, "rmse", cfg.Metric)

	grid, err := cfg.Grid()
	require.NoError(t, err)
	assert.Len(t, grid, 27)
}

func TestParseConfig(t *testing.T) {
	cfg, err := reviewrate.ParseConfig(`
# smaller search
numFeatures = 100, 200
regParam = 0.5
numFolds = 3
standardization = false
metric = MAE
stopWords.language = fr
transliterate = true
`)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []int{100, 200}, cfg.NumFeaturesGrid)
	assert.Equal(t, []float64{0.5}, cfg.RegParamGrid)
	assert.Equal(t, 3, cfg.NumFolds)
	assert.False(t, cfg.Standardization)
	assert.Equal(t, "mae", cfg.Metric)
	assert.Equal(t, "fr", cfg.StopWordsLanguage)
	assert.True(t, cfg.Transliterate)
	assert.False(t, cfg.StripHTML)
	assert.Equal(t, 20, cfg.MaxIter)
}

func TestParseConfigErrors(t *testing.T) {
	for _, s := range []string{
		"numFeatures = 10, ten",
		"maxIter = many",
		"standardization = perhaps",
		"tol = small",
	} {
		_, err := reviewrate.ParseConfig(s)
		assert.True(t, errors.Is(err, failure.ErrConfiguration), s)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviewrate.properties")
	require.NoError(t, os.WriteFile(path, []byte("maxIter=50\n"), 0644))
	cfg, err := reviewrate.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.MaxIter)

	_, err = reviewrate.LoadConfig(filepath.Join(t.TempDir(), "missing.properties"))
	assert.True(t, errors.Is(err, failure.ErrConfiguration))
}

func TestConfigValidate(t *testing.T) {
	for name, modify := range map[string]func(*reviewrate.Config){
		"no buckets":         func(c *reviewrate.Config) { c.NumFeaturesGrid = nil },
		"zero buckets":       func(c *reviewrate.Config) { c.NumFeaturesGrid = []int{0} },
		"negative regParam":  func(c *reviewrate.Config) { c.RegParamGrid = []float64{-0.1} },
		"regParam above one": func(c *reviewrate.Config) { c.RegParamGrid = []float64{0.5, 1.5} },
		"alpha above one":    func(c *reviewrate.Config) { c.ElasticNetParam = 1.5 },
		"nan alpha":          func(c *reviewrate.Config) { c.ElasticNetParam = math.NaN() },
		"no iterations":      func(c *reviewrate.Config) { c.MaxIter = 0 },
		"one fold":           func(c *reviewrate.Config) { c.NumFolds = 1 },
		"no workers":         func(c *reviewrate.Config) { c.Parallelism = 0 },
		"unknown metric":     func(c *reviewrate.Config) { c.Metric = "auc" },
		"no language":        func(c *reviewrate.Config) { c.StopWordsLanguage = "" },
		"language name":      func(c *reviewrate.Config) { c.StopWordsLanguage = "english" },
		"unknown language":   func(c *reviewrate.Config) { c.StopWordsLanguage = "xx" },
		"zero norm":          func(c *reviewrate.Config) { c.NormP = 0 },
	} {
		cfg := reviewrate.DefaultConfig()
		modify(&cfg)
		assert.True(t, errors.Is(cfg.Validate(), failure.ErrConfiguration), name)

		_, err := reviewrate.NewPipeline(cfg)
		assert.True(t, errors.Is(err, failure.ErrConfiguration), name)
	}
}

func TestConfigStopWordsLanguage(t *testing.T) {
	cfg := reviewrate.DefaultConfig()
	cfg.StopWordsLanguage = "en-GB"
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	cfg.RegParamGrid = []float64{0, 1}
	if _, err := reviewrate.NewPipeline(cfg); err != nil {
		t.Fatal(err)
	}
}

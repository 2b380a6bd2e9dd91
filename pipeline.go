package reviewrate

import (
	"github.com/google/uuid"
	"github.com/hscells/reviewrate/eval"
	"github.com/hscells/reviewrate/failure"
	"github.com/hscells/reviewrate/features"
	"github.com/hscells/reviewrate/learning"
	"github.com/hscells/reviewrate/preprocess"
	"github.com/hscells/reviewrate/tuning"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Pipeline fits and evaluates review rating models.
type Pipeline struct {
	Config Config

	analyser  preprocess.Analyser
	grid      tuning.Grid
	evaluator eval.Evaluator
	progress  bool
	logger    *zap.Logger
}

// Logger sets the logger used by the pipeline and every stage it runs.
func Logger(logger *zap.Logger) func(*Pipeline) {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// Progress shows a progress bar while the hyperparameter grid is searched.
func Progress(show bool) func(*Pipeline) {
	return func(p *Pipeline) {
		p.progress = show
	}
}

// NewPipeline creates a pipeline from a configuration. The configuration is checked here, so a
// pipeline that is created can always be run.
func NewPipeline(cfg Config, options ...func(*Pipeline)) (Pipeline, error) {
	p := Pipeline{
		Config: cfg,
		logger: zap.NewNop(),
	}
	for _, option := range options {
		option(&p)
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return Pipeline{}, err
	}
	var err error
	p.grid, err = cfg.Grid()
	if err != nil {
		return Pipeline{}, err
	}
	p.evaluator, err = eval.ByName(cfg.Metric)
	if err != nil {
		return Pipeline{}, err
	}
	p.analyser, err = newAnalyser(cfg)
	if err != nil {
		return Pipeline{}, err
	}
	return p, nil
}

func newAnalyser(cfg Config) (preprocess.Analyser, error) {
	filter, err := preprocess.NewStopWordFilter(preprocess.StopWordsLanguage(cfg.StopWordsLanguage))
	if err != nil {
		return preprocess.Analyser{}, err
	}
	processors := []preprocess.TokenProcessor{filter.Filter}
	if cfg.Stem {
		processors = append(processors, preprocess.Stem)
	}
	tokenizer := preprocess.NewTokenizer(preprocess.TokenizerMinLength(cfg.MinTokenLength))
	analyser := preprocess.NewAnalyser(tokenizer, processors...)
	if cfg.StripHTML {
		analyser = analyser.WithTextFilters(preprocess.StripHTML)
	}
	if cfg.Transliterate {
		analyser = analyser.WithTextFilters(preprocess.Transliterate)
	}
	return analyser, nil
}

// Documents validates and tokenises records.
func (p Pipeline) Documents(records []Record) ([]tuning.Document, error) {
	docs := make([]tuning.Document, len(records))
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		docs[i] = tuning.Document{
			Tokens: p.analyser.Analyse(r.Text),
			Label:  r.Label,
		}
	}
	return docs, nil
}

// Fit selects hyperparameters by cross-validation on the training records and returns the model
// refit on all of them, along with the cross-validation results.
func (p Pipeline) Fit(train []Record) (PipelineModel, tuning.CVResult, error) {
	if len(train) == 0 {
		return PipelineModel{}, tuning.CVResult{}, failure.EmptyTrainingSet("no training records")
	}
	docs, err := p.Documents(train)
	if err != nil {
		return PipelineModel{}, tuning.CVResult{}, err
	}
	p.logCollisionRates(docs)

	cv := tuning.NewCrossValidator(
		estimator{cfg: p.Config, logger: p.logger},
		p.grid,
		tuning.NumFolds(p.Config.NumFolds),
		tuning.Seed(p.Config.Seed),
		tuning.Parallelism(p.Config.Parallelism),
		tuning.Evaluator(p.evaluator),
		tuning.Progress(p.progress),
		tuning.Logger(p.logger))
	result, err := cv.Fit(docs)
	if err != nil {
		return PipelineModel{}, result, err
	}
	model := result.Model.(documentModel).PipelineModel
	model.analyser = p.analyser
	model.cfg = p.Config
	return model, result, nil
}

// Run fits a model to the training records and scores it on the training and test records.
func (p Pipeline) Run(train, test []Record) (Result, error) {
	if len(train) == 0 {
		return Result{}, failure.EmptyTrainingSet("no training records")
	}
	if len(test) == 0 {
		return Result{}, errors.Wrap(failure.ErrEmptyDataset, "no test records")
	}
	for i, r := range test {
		if err := r.Validate(); err != nil {
			return Result{}, errors.Wrapf(err, "test record %d", i)
		}
	}

	runID := uuid.New()
	logger := p.logger.With(zap.Stringer("run", runID))
	logger.Info("running pipeline", zap.Int("train", len(train)), zap.Int("test", len(test)))

	p.logger = logger
	model, cv, err := p.Fit(train)
	if err != nil {
		return Result{}, err
	}

	trainRMSE, err := eval.RMSE.Score(model.Predict(train), Labels(train))
	if err != nil {
		return Result{}, err
	}
	testRMSE, err := eval.RMSE.Score(model.Predict(test), Labels(test))
	if err != nil {
		return Result{}, err
	}
	logger.Info("evaluated model",
		zap.Stringer("params", model.Params),
		zap.Float64("trainRMSE", trainRMSE),
		zap.Float64("testRMSE", testRMSE))

	return Result{
		RunID:     runID,
		Config:    p.Config,
		CV:        cv,
		Model:     model,
		TrainRMSE: trainRMSE,
		TestRMSE:  testRMSE,
	}, nil
}

// logCollisionRates reports how many hash collisions each grid size is expected to cause.
func (p Pipeline) logCollisionRates(docs []tuning.Document) {
	if p.logger.Core().Enabled(zap.DebugLevel) {
		vocabulary := preprocess.Vocabulary(lo.Map(docs, func(d tuning.Document, _ int) []string {
			return d.Tokens
		})...)
		for _, n := range lo.Uniq(p.Config.NumFeaturesGrid) {
			hasher, err := features.NewHasher(n)
			if err != nil {
				continue
			}
			p.logger.Debug("expected hash collisions",
				zap.Int("numFeatures", n),
				zap.Int("vocabulary", len(vocabulary)),
				zap.Float64("collisionRate", hasher.CollisionRate(len(vocabulary))))
		}
	}
}

// estimator fits a pipeline model to tokenised documents.
type estimator struct {
	cfg    Config
	logger *zap.Logger
}

func (e estimator) Fit(docs []tuning.Document, params tuning.Params) (tuning.Model, error) {
	hasher, err := features.NewHasher(params.NumFeatures, features.HashBinary(e.cfg.Binary))
	if err != nil {
		return nil, err
	}
	featurizer := features.Featurizer{
		Hasher:     hasher,
		Normalizer: features.Normalizer{P: e.cfg.NormP},
	}
	fitted, x := featurizer.Fit(tokens(docs))

	regressor := learning.NewElasticNet(
		learning.RegParam(params.RegParam),
		learning.ElasticNetParam(params.ElasticNetParam),
		learning.MaxIter(e.cfg.MaxIter),
		learning.Tolerance(e.cfg.Tol),
		learning.Standardization(e.cfg.Standardization),
		learning.Logger(e.logger.With(zap.Stringer("params", params))))
	model, err := regressor.Fit(x, tuning.Labels(docs))
	if err != nil {
		return nil, err
	}
	return documentModel{PipelineModel{
		Params:     params,
		Featurizer: fitted,
		Model:      model,
	}}, nil
}

func tokens(docs []tuning.Document) [][]string {
	return lo.Map(docs, func(d tuning.Document, _ int) []string {
		return d.Tokens
	})
}

package reviewrate

import (
	"time"

	"github.com/hscells/reviewrate/eval"
	"github.com/hscells/reviewrate/features"
	"github.com/hscells/reviewrate/learning"
	"github.com/hscells/reviewrate/preprocess"
	"github.com/hscells/reviewrate/store"
	"github.com/hscells/reviewrate/tuning"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// PipelineModel is a fitted pipeline: the analyser, the idf fit on the training corpus and the
// regression fit to its feature vectors.
type PipelineModel struct {
	Params     tuning.Params
	Featurizer features.FittedFeaturizer
	Model      learning.LinearModel

	cfg      Config
	analyser preprocess.Analyser
}

// Predict predicts the rating of each record.
func (m PipelineModel) Predict(records []Record) []float64 {
	return m.PredictTokens(lo.Map(records, func(r Record, _ int) []string {
		return m.analyser.Analyse(r.Text)
	}))
}

// PredictTokens predicts the rating of each tokenised document.
func (m PipelineModel) PredictTokens(docs [][]string) []float64 {
	return m.Model.PredictAll(m.Featurizer.TransformAll(docs))
}

// Score predicts the records and scores the predictions against their labels.
func (m PipelineModel) Score(records []Record, e eval.Evaluator) ([]float64, float64, error) {
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, 0, errors.Wrapf(err, "record %d", i)
		}
	}
	predictions := m.Predict(records)
	score, err := e.Score(predictions, Labels(records))
	if err != nil {
		return nil, 0, err
	}
	return predictions, score, nil
}

// Snapshot captures the model so that it can be stored.
func (m PipelineModel) Snapshot(runID string) store.Model {
	return store.Model{
		RunID:             runID,
		CreatedAt:         time.Now().UTC(),
		StripHTML:         m.cfg.StripHTML,
		Transliterate:     m.cfg.Transliterate,
		StopWordsLanguage: m.cfg.StopWordsLanguage,
		Stem:              m.cfg.Stem,
		MinTokenLength:    m.cfg.MinTokenLength,
		NumFeatures:       m.Featurizer.Hasher.NumFeatures(),
		Binary:            m.Featurizer.Hasher.Binary(),
		NormP:             m.Featurizer.Normalizer.P,
		IDF:               m.Featurizer.IDF.Weights(),
		Documents:         m.Featurizer.IDF.Documents(),
		RegParam:          m.Params.RegParam,
		ElasticNetParam:   m.Params.ElasticNetParam,
		Coefficients:      append([]float64(nil), m.Model.Coefficients...),
		Intercept:         m.Model.Intercept,
		Iterations:        m.Model.Summary.Iterations,
		Converged:         m.Model.Summary.Converged,
	}
}

// RestoreModel rebuilds a pipeline model from a stored snapshot.
func RestoreModel(s store.Model) (PipelineModel, error) {
	cfg := DefaultConfig()
	cfg.StripHTML = s.StripHTML
	cfg.Transliterate = s.Transliterate
	cfg.StopWordsLanguage = s.StopWordsLanguage
	cfg.Stem = s.Stem
	cfg.MinTokenLength = s.MinTokenLength
	cfg.Binary = s.Binary
	cfg.NormP = s.NormP
	cfg.NumFeaturesGrid = []int{s.NumFeatures}
	cfg.RegParamGrid = []float64{s.RegParam}
	cfg.ElasticNetParam = s.ElasticNetParam
	if err := cfg.Validate(); err != nil {
		return PipelineModel{}, err
	}
	hasher, err := features.NewHasher(s.NumFeatures, features.HashBinary(s.Binary))
	if err != nil {
		return PipelineModel{}, err
	}
	analyser, err := newAnalyser(cfg)
	if err != nil {
		return PipelineModel{}, err
	}
	return PipelineModel{
		Params: tuning.Params{
			NumFeatures:     s.NumFeatures,
			RegParam:        s.RegParam,
			ElasticNetParam: s.ElasticNetParam,
		},
		Featurizer: features.FittedFeaturizer{
			Hasher:     hasher,
			IDF:        features.NewIDF(s.IDF, s.Documents),
			Normalizer: features.Normalizer{P: s.NormP},
		},
		Model: learning.LinearModel{
			Coefficients: s.Coefficients,
			Intercept:    s.Intercept,
			Summary: learning.Summary{
				Iterations: s.Iterations,
				Converged:  s.Converged,
			},
		},
		cfg:      cfg,
		analyser: analyser,
	}, nil
}

// LoadModel restores the model stored for a run.
func LoadModel(models store.ModelStore, runID string) (PipelineModel, error) {
	s, err := models.Get(runID)
	if err != nil {
		return PipelineModel{}, err
	}
	return RestoreModel(s)
}

// documentModel lets the cross-validator score a pipeline model on tokenised documents.
type documentModel struct {
	PipelineModel
}

func (m documentModel) Predict(docs []tuning.Document) []float64 {
	return m.PredictTokens(tokens(docs))
}

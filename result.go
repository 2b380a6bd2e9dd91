package reviewrate

import (
	"github.com/google/uuid"
	"github.com/hscells/reviewrate/tuning"
)

// Result is the outcome of running a pipeline.
type Result struct {
	RunID     uuid.UUID
	Config    Config
	CV        tuning.CVResult
	Model     PipelineModel
	TrainRMSE float64
	TestRMSE  float64
}

// BestParams are the hyperparameters the model was refit with.
func (r Result) BestParams() tuning.Params {
	return r.Model.Params
}

package main

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/go-errors/errors"
	"github.com/hscells/reviewrate"
	"github.com/hscells/reviewrate/dataset"
	"github.com/hscells/reviewrate/eval"
	"github.com/hscells/reviewrate/output"
	"github.com/hscells/reviewrate/store"
	"go.uber.org/zap"
)

var (
	name    = "reviewrate"
	version = "19.Oct.2026"
	author  = "Harry Scells"
)

type args struct {
	Train       string `help:"JSON lines file of training reviews" arg:"-t"`
	Test        string `help:"JSON lines file of test reviews" arg:"-e,required"`
	Output      string `help:"file to write the train and test rmse (or the predictions) to" arg:"-o,required"`
	Format      string `help:"format of the output file (plain/json/table/csv)" arg:"-f" default:"plain"`
	Config      string `help:"properties file of pipeline settings" arg:"-c"`
	Report      string `help:"file to write a JSON report of the run to" arg:"-r"`
	ModelDir    string `help:"directory fitted models are stored in" arg:"--model-dir"`
	Predict     string `help:"run id of a stored model to predict the test reviews with, instead of training" arg:"-p"`
	SkipInvalid bool   `help:"skip reviews that cannot be parsed instead of failing" arg:"--skip-invalid"`
	Progress    bool   `help:"show a progress bar while searching hyperparameters"`
	Parallelism int    `help:"number of folds to fit at once (overrides the config)"`
	Seed        *int64 `help:"seed for assigning folds (overrides the config)"`
	Debug       bool   `help:"log at debug level"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s`, name, author, version)
}

func main() {
	var args args
	arg.MustParse(&args)

	logger, err := newLogger(args.Debug)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(args, logger); err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, 0).ErrorStack())
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(args args, logger *zap.Logger) error {
	if len(args.Predict) > 0 {
		return predict(args, logger)
	}
	if len(args.Train) == 0 {
		return errors.New("--train is required unless predicting with a stored model")
	}

	cfg := reviewrate.DefaultConfig()
	if len(args.Config) > 0 {
		var err error
		cfg, err = reviewrate.LoadConfig(args.Config)
		if err != nil {
			return err
		}
	}
	if args.Parallelism > 0 {
		cfg.Parallelism = args.Parallelism
	}
	if args.Seed != nil {
		cfg.Seed = *args.Seed
	}

	formatter, err := output.ByName(args.Format)
	if err != nil {
		return err
	}

	// Settings are checked before any data is read.
	p, err := reviewrate.NewPipeline(cfg,
		reviewrate.Logger(logger),
		reviewrate.Progress(args.Progress))
	if err != nil {
		return err
	}

	loader := dataset.NewLoader(
		dataset.SkipInvalid(args.SkipInvalid),
		dataset.Logger(logger))
	train, _, err := loader.ReadFile(args.Train)
	if err != nil {
		return err
	}
	test, _, err := loader.ReadFile(args.Test)
	if err != nil {
		return err
	}

	result, err := p.Run(train, test)
	if err != nil {
		return err
	}

	s, err := formatter(result)
	if err != nil {
		return err
	}
	err = os.WriteFile(args.Output, []byte(s), 0644)
	if err != nil {
		return err
	}

	if len(args.Report) > 0 {
		report, err := output.JSONFormatter(result)
		if err != nil {
			return err
		}
		err = os.WriteFile(args.Report, []byte(report), 0644)
		if err != nil {
			return err
		}
	}

	if len(args.ModelDir) > 0 {
		runID := result.RunID.String()
		err = store.NewDirModelStore(args.ModelDir).Put(runID, result.Model.Snapshot(runID))
		if err != nil {
			return err
		}
		logger.Info("stored model", zap.String("run", runID), zap.String("dir", args.ModelDir))
	}
	return nil
}

// predict scores the test reviews with a model stored by an earlier run.
func predict(args args, logger *zap.Logger) error {
	if len(args.ModelDir) == 0 {
		return errors.New("--model-dir is required to predict with a stored model")
	}
	model, err := reviewrate.LoadModel(store.NewDirModelStore(args.ModelDir), args.Predict)
	if err != nil {
		return err
	}

	test, _, err := dataset.NewLoader(
		dataset.SkipInvalid(args.SkipInvalid),
		dataset.Logger(logger)).ReadFile(args.Test)
	if err != nil {
		return err
	}
	predictions, rmse, err := model.Score(test, eval.RMSE)
	if err != nil {
		return err
	}
	logger.Info("evaluated stored model",
		zap.String("run", args.Predict),
		zap.Stringer("params", model.Params),
		zap.Float64("testRMSE", rmse))

	s, err := output.PredictionsFormatter(test, predictions)
	if err != nil {
		return err
	}
	return os.WriteFile(args.Output, []byte(s), 0644)
}

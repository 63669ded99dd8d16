package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"skeleton-workbench/internal/algorithms/equalization"
	"skeleton-workbench/internal/algorithms/localbin"
	"skeleton-workbench/internal/algorithms/median"
	"skeleton-workbench/internal/algorithms/otsu"
	"skeleton-workbench/internal/algorithms/stretching"
	"skeleton-workbench/internal/algorithms/threshold"
	"skeleton-workbench/internal/config"
	"skeleton-workbench/internal/debug/timing"
	"skeleton-workbench/internal/logger"
	"skeleton-workbench/internal/opencv/codec"
	"skeleton-workbench/internal/pipeline"
)

const (
	AppName    = "skeleton-workbench"
	AppVersion = "1.0.0"
)

// application carries what every subcommand shares.
type application struct {
	cfg         config.Config
	logger      logger.Logger
	timing      *timing.Tracker
	coordinator *pipeline.Coordinator
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	app := &application{cfg: config.FromEnv()}

	root := &cobra.Command{
		Use:           AppName,
		Short:         "Histogram statistics, operator descriptors, skeletonization and minutiae extraction",
		Version:       AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.logTimings()
		},
	}
	app.cfg.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newHistogramCommand(app),
		newPrepareCommand(app, "otsu", "Derive the Otsu threshold of an image", otsu.Name),
		newPrepareCommand(app, "equalize", "Derive the equalization tables of an image", equalization.Name),
		newPrepareCommand(app, "stretch", "Derive the contrast stretching range of an image", stretching.Name),
		newParameterCommand(app, "threshold", "Build the manual threshold descriptor", threshold.Name),
		newParameterCommand(app, "localbin", "Build the local binarization descriptor", localbin.Name),
		newParameterCommand(app, "median", "Build the median filter descriptor", median.Name),
		newConvolveCommand(app),
		newPixelizeCommand(app),
		newSkeletonizeCommand(app),
		newMinutiaeCommand(app),
		newFiltersCommand(app),
	)

	return root
}

func (app *application) setup() error {
	if err := app.cfg.Validate(); err != nil {
		return err
	}

	app.logger = app.cfg.NewLogger()
	app.timing = timing.NewTracker(app.logger)

	stdCodec := pipeline.NewStdCodec()
	cvCodec := codec.New()
	app.coordinator = pipeline.NewCoordinator(pipeline.Config{
		Logger:        app.logger,
		TimingTracker: app.timing,
		Decoders:      []pipeline.Decoder{cvCodec, stdCodec},
		Encoders:      []pipeline.Encoder{cvCodec, stdCodec},
	})

	app.logger.Debug("Main", "application starting", map[string]interface{}{
		"version":    AppVersion,
		"go_version": runtime.Version(),
		"log_level":  app.cfg.LogLevel.String(),
	})
	return nil
}

func (app *application) logTimings() {
	if app.timing == nil {
		return
	}
	for _, s := range app.timing.Summaries() {
		app.logger.Debug("Main", "timing summary", map[string]interface{}{
			"operation":  s.Operation,
			"count":      s.Count,
			"total_ms":   float64(s.Total.Microseconds()) / 1000,
			"average_ms": float64(s.Average.Microseconds()) / 1000,
		})
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tommurray222/candid-hospitality/internal/analysis"
	"github.com/tommurray222/candid-hospitality/internal/clustering"
	"github.com/tommurray222/candid-hospitality/internal/exporter"
	"github.com/tommurray222/candid-hospitality/internal/operations"
)

var timeNow = time.Now

func (a *app) newPipeline(steps ...operations.Step) (*operations.Pipeline, error) {
	cfg := operations.NewConfig()
	cfg.DefaultTimeout = a.cfg.Pipeline.StepTimeout

	return operations.NewPipeline(operations.PipelineOptions{
		Config:    cfg,
		Telemetry: a.telemetry,
		Logger:    a.logger,
	}, steps...)
}

func (a *app) exporter() *exporter.DatasetExporter {
	return exporter.NewDatasetExporter(a.paths, a.cfg.Export.BOM, a.logger)
}

func (a *app) cleanStep() (*operations.CleanStep, error) {
	inputs, err := a.inputs()
	if err != nil {
		return nil, err
	}
	return operations.NewCleanStep(inputs, a.cleaner(), a.logger), nil
}

func (a *app) prepareStep() (*operations.PrepareStep, error) {
	p, err := a.preparer()
	if err != nil {
		return nil, err
	}
	return operations.NewPrepareStep(p), nil
}

func (a *app) analyzeStep() *operations.AnalyzeStep {
	c := a.cfg.Analysis
	opts := analysis.Options{
		Bins:               c.Bins,
		TopN:               c.TopN,
		NumericColumns:     c.NumericColumns,
		CategoricalColumns: c.CategoricalColumns,
		GroupBy:            c.GroupBy,
		GroupStat:          c.GroupStat,
		CorrelationColumns: c.CorrelationColumns,
		Logger:             a.logger,
	}
	workbook := ""
	if c.WorkbookFile != "" {
		workbook = a.paths.GetOutputPath(c.WorkbookFile)
	}
	return operations.NewAnalyzeStep(opts, workbook)
}

func (a *app) clusterStep(exp *exporter.DatasetExporter) (*operations.ClusterStep, error) {
	c := a.cfg.Clustering
	opts := clustering.Options{
		Weight:         c.Weight,
		CultureColumns: c.CultureColumns,
		Logger:         a.logger,
	}
	if c.CitiesFile != "" {
		cities, err := clustering.LoadCities(c.CitiesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load cluster cities: %w", err)
		}
		opts.Cities = cities
	}
	return operations.NewClusterStep(opts, exp), nil
}

// execute runs the pipeline, writes the run manifest and prints a summary.
// The manifest is written even when a step fails.
func (a *app) execute(ctx context.Context, p *operations.Pipeline) (*operations.OperationState, error) {
	state := operations.NewOperationState(a.runID)
	runErr := p.Run(ctx, state)

	if a.cfg.Export.ManifestFile != "" {
		path := a.paths.GetOutputPath(a.cfg.Export.ManifestFile)
		if err := operations.NewRunManifest(state, p.StepIDs()).SaveToFile(path); err != nil {
			a.logger.ErrorContext(ctx, "Failed to write run manifest",
				slog.String("path", path),
				slog.String("error", err.Error()))
		} else {
			a.logger.InfoContext(ctx, "Run manifest written", slog.String("path", path))
		}
	}

	a.printSummary(state, p.StepIDs())
	return state, runErr
}

func (a *app) printSummary(state *operations.OperationState, stepIDs []string) {
	fmt.Fprintf(a.out, "run %s %s in %s\n", state.ID, state.GetStatus(), state.Duration().Round(time.Millisecond))
	for _, id := range stepIDs {
		s := state.GetStage(id)
		if s == nil {
			continue
		}
		line := fmt.Sprintf("  %-8s %s", id, s.GetStatus())
		if s.Message != "" {
			line += ": " + s.Message
		}
		fmt.Fprintln(a.out, line)
	}
	for _, path := range state.GetOutputs() {
		fmt.Fprintf(a.out, "  wrote %s\n", a.relPath(path))
	}
}

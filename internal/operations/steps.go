package operations

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tommurray222/candid-hospitality/internal/analysis"
	"github.com/tommurray222/candid-hospitality/internal/cleaning"
	"github.com/tommurray222/candid-hospitality/internal/clustering"
	"github.com/tommurray222/candid-hospitality/internal/config"
	"github.com/tommurray222/candid-hospitality/internal/dataprocessing"
	"github.com/tommurray222/candid-hospitality/internal/exporter"
	"github.com/tommurray222/candid-hospitality/internal/infrastructure"
	"github.com/tommurray222/candid-hospitality/internal/preparation"
	"github.com/tommurray222/candid-hospitality/internal/validation"
)

// CleanStep loads the three input tables and cleans them
type CleanStep struct {
	BaseStage
	inputs  dataprocessing.Inputs
	cleaner *cleaning.Cleaner
	files   *validation.FileValidator
	logger  *slog.Logger
}

// NewCleanStep creates the clean step. A raw dataset already present in the
// operation state takes precedence over inputs.
func NewCleanStep(inputs dataprocessing.Inputs, cleaner *cleaning.Cleaner, logger *slog.Logger) *CleanStep {
	logger = infrastructure.WithComponent(logger, "clean_step")
	return &CleanStep{
		BaseStage: NewBaseStage(StepIDClean, StepNameClean),
		inputs:    inputs,
		cleaner:   cleaner,
		files:     validation.NewFileValidator(logger),
		logger:    logger,
	}
}

// Validate checks that a source for the raw tables exists
func (s *CleanStep) Validate(state *OperationState) error {
	if s.cleaner == nil {
		return NewValidationError(s.ID(), "cleaner is not configured")
	}
	if _, ok := state.RawDataset(); ok {
		return nil
	}
	if s.inputs.Users == "" || s.inputs.Matches == "" || s.inputs.Chats == "" {
		return NewValidationError(s.ID(), "users, matches and chats inputs are required")
	}
	for _, path := range []string{s.inputs.Users, s.inputs.Matches, s.inputs.Chats} {
		if err := s.files.ValidateInputFile(path); err != nil {
			return NewValidationError(s.ID(), err.Error())
		}
	}
	return nil
}

// Execute loads and cleans the raw dataset
func (s *CleanStep) Execute(ctx context.Context, state *OperationState) error {
	raw, ok := state.RawDataset()
	if !ok {
		var err error
		raw, err = dataprocessing.LoadRaw(ctx, s.inputs)
		if err != nil {
			return err
		}
		state.SetContext(ContextKeyRaw, raw)
		s.logger.InfoContext(ctx, "Raw tables loaded",
			slog.Int("users", raw.Users.Len()),
			slog.Int("matches", raw.Matches.Len()),
			slog.Int("chats", raw.Chats.Len()))
	}

	clean, report, err := s.cleaner.Clean(ctx, raw)
	if err != nil {
		return err
	}
	state.SetContext(ContextKeyClean, clean)
	state.SetContext(ContextKeyCleanReport, report)

	if st := state.GetStage(s.ID()); st != nil {
		st.SetMetadata("users", len(clean.Users))
		st.SetMetadata("matches", len(clean.Matches))
		st.SetMetadata("chats", len(clean.Chats))
		st.SetMetadata("issues", len(report.Issues))
	}
	return nil
}

// PrepareStep derives ages and chat statistics and joins the candidate records
type PrepareStep struct {
	BaseStage
	preparer *preparation.Preparer
}

// NewPrepareStep creates the prepare step
func NewPrepareStep(preparer *preparation.Preparer) *PrepareStep {
	return &PrepareStep{
		BaseStage: NewBaseStage(StepIDPrepare, StepNamePrepare),
		preparer:  preparer,
	}
}

// Validate requires the cleaned dataset
func (s *PrepareStep) Validate(state *OperationState) error {
	if s.preparer == nil {
		return NewValidationError(s.ID(), "preparer is not configured")
	}
	if _, ok := state.CleanDataset(); !ok {
		return NewDependencyError(s.ID(), StepIDClean, "cleaned dataset not available")
	}
	return nil
}

// Execute runs the preparer
func (s *PrepareStep) Execute(ctx context.Context, state *OperationState) error {
	clean, _ := state.CleanDataset()
	prepared, report, err := s.preparer.Prepare(ctx, clean)
	if err != nil {
		return err
	}
	state.SetContext(ContextKeyPrepared, prepared)
	state.SetContext(ContextKeyPrepareReport, report)

	if st := state.GetStage(s.ID()); st != nil {
		st.SetMetadata("candidates", len(prepared.Candidates))
		st.SetMetadata("chat_stats", len(prepared.ChatStats))
		st.SetMetadata("excluded", len(report.Issues))
	}
	return nil
}

// AnalyzeStep describes the prepared candidates and saves the chart workbook
type AnalyzeStep struct {
	BaseStage
	opts         analysis.Options
	workbookPath string
}

// NewAnalyzeStep creates the analyze step. An empty workbookPath keeps the
// statistics in the operation state without writing a workbook.
func NewAnalyzeStep(opts analysis.Options, workbookPath string) *AnalyzeStep {
	return &AnalyzeStep{
		BaseStage:    NewBaseStage(StepIDAnalyze, StepNameAnalyze),
		opts:         opts,
		workbookPath: workbookPath,
	}
}

// Validate requires the prepared dataset
func (s *AnalyzeStep) Validate(state *OperationState) error {
	if _, ok := state.PreparedDataset(); !ok {
		return NewDependencyError(s.ID(), StepIDPrepare, "prepared dataset not available")
	}
	return nil
}

// Execute computes the statistics and writes the workbook
func (s *AnalyzeStep) Execute(ctx context.Context, state *OperationState) error {
	prepared, _ := state.PreparedDataset()
	f := analysis.NewCandidateFrame(prepared.Candidates)

	res, err := analysis.Analyze(ctx, f, s.opts)
	if err != nil {
		return err
	}
	defer res.Workbook.Close()

	if s.workbookPath != "" {
		if err := res.Workbook.Save(s.workbookPath); err != nil {
			return fmt.Errorf("failed to save analysis workbook: %w", err)
		}
		state.AddOutput(s.workbookPath)
	}
	state.SetContext(ContextKeyAnalysis, res)

	if st := state.GetStage(s.ID()); st != nil {
		st.SetMetadata("rows", f.Len())
		st.SetMetadata("sheets", len(res.Workbook.Sheets()))
	}
	return nil
}

// ExportStep writes the cleaned and, when available, prepared datasets
type ExportStep struct {
	BaseStage
	exporter *exporter.DatasetExporter
}

// NewExportStep creates the export step
func NewExportStep(exp *exporter.DatasetExporter) *ExportStep {
	return &ExportStep{
		BaseStage: NewBaseStage(StepIDExport, StepNameExport),
		exporter:  exp,
	}
}

// Validate requires the cleaned dataset
func (s *ExportStep) Validate(state *OperationState) error {
	if s.exporter == nil {
		return NewValidationError(s.ID(), "exporter is not configured")
	}
	if _, ok := state.CleanDataset(); !ok {
		return NewDependencyError(s.ID(), StepIDClean, "cleaned dataset not available")
	}
	return nil
}

// Execute writes every available dataset
func (s *ExportStep) Execute(ctx context.Context, state *OperationState) error {
	clean, _ := state.CleanDataset()
	paths, err := s.exporter.ExportCleaned(ctx, clean)
	state.AddOutput(paths...)
	if err != nil {
		return err
	}

	if prepared, ok := state.PreparedDataset(); ok {
		more, err := s.exporter.ExportPrepared(ctx, prepared, state.Report())
		state.AddOutput(more...)
		if err != nil {
			return err
		}
		paths = append(paths, more...)
	}

	if st := state.GetStage(s.ID()); st != nil {
		st.SetMetadata("files", len(paths))
	}
	return nil
}

// ClusterStep builds the k-means feature table from the prepared candidates
type ClusterStep struct {
	BaseStage
	opts     clustering.Options
	exporter *exporter.DatasetExporter
}

// NewClusterStep creates the cluster step. A nil exporter keeps the feature
// frame in the operation state only.
func NewClusterStep(opts clustering.Options, exp *exporter.DatasetExporter) *ClusterStep {
	return &ClusterStep{
		BaseStage: NewBaseStage(StepIDCluster, StepNameCluster),
		opts:      opts,
		exporter:  exp,
	}
}

// Validate requires the prepared dataset
func (s *ClusterStep) Validate(state *OperationState) error {
	if _, ok := state.PreparedDataset(); !ok {
		return NewDependencyError(s.ID(), StepIDPrepare, "prepared dataset not available")
	}
	return nil
}

// Execute pre-processes the candidates and exports the feature table
func (s *ClusterStep) Execute(ctx context.Context, state *OperationState) error {
	prepared, _ := state.PreparedDataset()
	f, err := clustering.Preprocess(ctx, prepared.Candidates, s.opts)
	if err != nil {
		return err
	}
	state.SetContext(ContextKeyClusterFrame, f)

	if s.exporter != nil {
		path, err := s.exporter.ExportTable(ctx, config.ClusterDataCSV, f.Table())
		if err != nil {
			return err
		}
		state.AddOutput(path)
	}

	if st := state.GetStage(s.ID()); st != nil {
		st.SetMetadata("users", f.Len())
		st.SetMetadata("columns", len(f.Columns()))
	}
	return nil
}

package operations

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommurray222/candid-hospitality/internal/analysis"
	"github.com/tommurray222/candid-hospitality/internal/cleaning"
	"github.com/tommurray222/candid-hospitality/internal/clustering"
	"github.com/tommurray222/candid-hospitality/internal/config"
	"github.com/tommurray222/candid-hospitality/internal/dataprocessing"
	"github.com/tommurray222/candid-hospitality/internal/exporter"
	"github.com/tommurray222/candid-hospitality/internal/preparation"
	"github.com/tommurray222/candid-hospitality/internal/shared/testutil"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

type testSteps struct {
	clean   *CleanStep
	prepare *PrepareStep
	analyze *AnalyzeStep
	export  *ExportStep
	cluster *ClusterStep
	paths   *config.Paths
}

func newTestSteps(t *testing.T, inputs dataprocessing.Inputs) testSteps {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	paths := &config.Paths{OutputDir: t.TempDir()}

	preparer, err := preparation.NewPreparer(preparation.Options{
		Reference: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Logger:    logger,
	})
	require.NoError(t, err)

	exp := exporter.NewDatasetExporter(paths, false, logger)
	return testSteps{
		clean: NewCleanStep(inputs,
			cleaning.NewCleaner(cleaning.Options{TestAccounts: []int64{testutil.TestAccountID}, Logger: logger}),
			logger),
		prepare: NewPrepareStep(preparer),
		analyze: NewAnalyzeStep(analysis.Options{
			NumericColumns:     []string{"score_overall", "age"},
			CategoricalColumns: []string{"department_name"},
			CorrelationColumns: []string{"score_overall", "age"},
			Logger:             logger,
		}, paths.GetOutputPath(config.AnalysisWorkbook)),
		export:  NewExportStep(exp),
		cluster: NewClusterStep(clustering.Options{Logger: logger}, exp),
		paths:   paths,
	}
}

func TestSteps_FullRun(t *testing.T) {
	inputs := testutil.WriteInputs(t, t.TempDir())
	s := newTestSteps(t, inputs)

	p, err := NewPipeline(PipelineOptions{}, s.clean, s.prepare, s.analyze, s.export, s.cluster)
	require.NoError(t, err)

	state := NewOperationState("full")
	require.NoError(t, p.Run(context.Background(), state))

	clean, ok := state.CleanDataset()
	require.True(t, ok)
	assert.Len(t, clean.Users, 4)
	assert.Len(t, clean.Matches, 5)
	assert.Len(t, clean.Chats, 7)
	for _, m := range clean.Matches {
		assert.NotEqual(t, int64(14), m.MatchID, "test account match kept")
	}
	for _, c := range clean.Chats {
		assert.NotEqual(t, int64(14), c.MatchID, "test account chat kept")
	}

	prepared, ok := state.PreparedDataset()
	require.True(t, ok)
	assert.Len(t, prepared.Candidates, 4)

	_, ok = state.AnalysisResult()
	assert.True(t, ok)

	frame, ok := state.ClusterFrame()
	require.True(t, ok)
	assert.Equal(t, 4, frame.Len())
	assert.True(t, frame.HasColumn(clustering.ColNormalisedSalary))

	want := []string{
		config.AnalysisWorkbook,
		config.UsersCleanCSV, config.MatchesCleanCSV, config.ChatsCleanCSV,
		config.CandidDataCSV, config.ChatStatsCSV, config.DataQualityCSV, config.QualitySummaryCSV,
		config.ClusterDataCSV,
	}
	outputs := state.GetOutputs()
	require.Len(t, outputs, len(want))
	for i, name := range want {
		assert.Equal(t, s.paths.GetOutputPath(name), outputs[i])
		assert.FileExists(t, outputs[i])
	}

	report := state.Report()
	require.NotNil(t, report)
	assert.Equal(t, domain.TableCounts{Read: 7, Kept: 4, Dropped: 3, Flagged: 3}, *report.Counts[domain.TableUsers])
	assert.NotEmpty(t, report.IssuesFor(domain.TableMatches))

	cleanState := state.GetStage(StepIDClean)
	assert.Equal(t, 4, cleanState.Metadata["users"])
	assert.Equal(t, 4, state.GetStage(StepIDCluster).Metadata["users"])
}

func TestCleanStep_UsesRawDatasetFromState(t *testing.T) {
	s := newTestSteps(t, dataprocessing.Inputs{})
	state := NewOperationState("raw")
	state.SetContext(ContextKeyRaw, testutil.RawDataset(t))

	require.NoError(t, s.clean.Validate(state))
	require.NoError(t, s.clean.Execute(context.Background(), state))

	clean, ok := state.CleanDataset()
	require.True(t, ok)
	assert.Len(t, clean.Users, 4)

	report, ok := state.CleanReport()
	require.True(t, ok)
	assert.Equal(t, 7, report.Counts[domain.TableUsers].Read)
}

func TestCleanStep_MissingInput(t *testing.T) {
	dir := t.TempDir()
	inputs := testutil.WriteInputs(t, dir)
	require.NoError(t, os.Remove(inputs.Chats))

	s := newTestSteps(t, inputs)
	p, err := NewPipeline(PipelineOptions{}, s.clean, s.prepare)
	require.NoError(t, err)

	state := NewOperationState("missing")
	err = p.Run(context.Background(), state)
	require.Error(t, err)
	assert.Equal(t, ErrorTypeValidation, GetErrorType(err))
	assert.Contains(t, err.Error(), "does not exist")
	assert.Equal(t, StepStatusFailed, state.GetStage(StepIDClean).GetStatus())
	assert.Equal(t, StepStatusSkipped, state.GetStage(StepIDPrepare).GetStatus())
	assert.Empty(t, state.GetOutputs())
}

func TestCleanStep_UnsupportedInput(t *testing.T) {
	dir := t.TempDir()
	inputs := testutil.WriteInputs(t, dir)
	inputs.Users = filepath.Join(dir, "users.json")
	require.NoError(t, os.WriteFile(inputs.Users, []byte("{}"), 0644))

	s := newTestSteps(t, inputs)
	err := s.clean.Validate(NewOperationState("json"))
	require.Error(t, err)
	assert.Equal(t, ErrorTypeValidation, GetErrorType(err))
	assert.Contains(t, err.Error(), "unsupported extension")
}

func TestSteps_Validate(t *testing.T) {
	s := newTestSteps(t, dataprocessing.Inputs{})
	empty := NewOperationState("empty")

	tests := []struct {
		name     string
		step     Step
		wantType ErrorType
	}{
		{"clean without inputs", s.clean, ErrorTypeValidation},
		{"prepare without clean data", s.prepare, ErrorTypeDependency},
		{"analyze without prepared data", s.analyze, ErrorTypeDependency},
		{"export without clean data", s.export, ErrorTypeDependency},
		{"cluster without prepared data", s.cluster, ErrorTypeDependency},
		{"clean without cleaner", NewCleanStep(dataprocessing.Inputs{}, nil, nil), ErrorTypeValidation},
		{"export without exporter", NewExportStep(nil), ErrorTypeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.step.Validate(empty)
			require.Error(t, err)
			assert.Equal(t, tt.wantType, GetErrorType(err))
		})
	}
}

func TestExportStep_CleanedOnly(t *testing.T) {
	s := newTestSteps(t, testutil.WriteInputs(t, t.TempDir()))
	p, err := NewPipeline(PipelineOptions{}, s.clean, s.export)
	require.NoError(t, err)

	state := NewOperationState("clean-only")
	require.NoError(t, p.Run(context.Background(), state))

	outputs := state.GetOutputs()
	require.Len(t, outputs, 3)
	assert.Equal(t, config.UsersCleanCSV, filepath.Base(outputs[0]))
	assert.Equal(t, 3, state.GetStage(StepIDExport).Metadata["files"])
}

func TestClusterStep_WithoutExporter(t *testing.T) {
	s := newTestSteps(t, testutil.WriteInputs(t, t.TempDir()))
	p, err := NewPipeline(PipelineOptions{}, s.clean, s.prepare,
		NewClusterStep(clustering.Options{}, nil))
	require.NoError(t, err)

	state := NewOperationState("cluster")
	require.NoError(t, p.Run(context.Background(), state))

	_, ok := state.ClusterFrame()
	assert.True(t, ok)
	assert.Empty(t, state.GetOutputs())
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommurray222/candid-hospitality/internal/config"
	"github.com/tommurray222/candid-hospitality/internal/operations"
	"github.com/tommurray222/candid-hospitality/internal/shared/testutil"
)

// runCLI executes the root command in-process with a fixture data directory
// and returns stdout and the output directory.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	dataDir := t.TempDir()
	testutil.WriteInputs(t, dataDir)
	outDir := t.TempDir()

	t.Setenv("CANDID_PATHS_LOGS_DIR", t.TempDir())
	t.Setenv("CANDID_LOGGING_OUTPUT", "console")

	base := []string{
		"--data-dir", dataDir,
		"--output-dir", outDir,
		"--reference-date", "2024-06-01",
		"--test-accounts", "21",
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, base...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), outDir, err
}

func TestRunCommand(t *testing.T) {
	out, outDir, err := runCLI(t, "run", "--cluster")
	require.NoError(t, err, out)

	for _, name := range []string{
		config.UsersCleanCSV, config.MatchesCleanCSV, config.ChatsCleanCSV,
		config.CandidDataCSV, config.ChatStatsCSV, config.DataQualityCSV, config.QualitySummaryCSV,
		config.ClusterDataCSV, config.AnalysisWorkbook, config.ManifestFile, config.MetricsTextfile,
	} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}

	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "wrote "+config.CandidDataCSV)

	manifest, err := operations.LoadManifestFromFile(filepath.Join(outDir, config.ManifestFile))
	require.NoError(t, err)
	assert.Equal(t, "completed", manifest.Status)
	assert.Len(t, manifest.Steps, 5)
	assert.Equal(t, 4, manifest.Counts["users"].Kept)

	metrics, err := os.ReadFile(filepath.Join(outDir, config.MetricsTextfile))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "candid_rows_read")
}

func TestRunCommand_NoWorkbook(t *testing.T) {
	out, outDir, err := runCLI(t, "run", "--no-workbook")
	require.NoError(t, err, out)

	assert.NoFileExists(t, filepath.Join(outDir, config.AnalysisWorkbook))
	assert.NoFileExists(t, filepath.Join(outDir, config.ClusterDataCSV))
	assert.FileExists(t, filepath.Join(outDir, config.CandidDataCSV))
}

func TestCleanCommand(t *testing.T) {
	out, outDir, err := runCLI(t, "clean")
	require.NoError(t, err, out)

	assert.FileExists(t, filepath.Join(outDir, config.UsersCleanCSV))
	assert.NoFileExists(t, filepath.Join(outDir, config.CandidDataCSV))

	content, err := os.ReadFile(filepath.Join(outDir, config.UsersCleanCSV))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Len(t, lines, 5, "header plus four users")
}

func TestClusterCommand(t *testing.T) {
	cities := filepath.Join(t.TempDir(), "cities.csv")
	require.NoError(t, os.WriteFile(cities, []byte("city,lat,lng\nLondon,51.5074,-0.1278\nManchester,53.4808,-2.2426\n"), 0644))

	out, outDir, err := runCLI(t, "cluster", "--cities", cities, "--weight", "0.5")
	require.NoError(t, err, out)

	content, err := os.ReadFile(filepath.Join(outDir, config.ClusterDataCSV))
	require.NoError(t, err)
	header := strings.SplitN(string(content), "\n", 2)[0]
	assert.Contains(t, header, "city_London")
	assert.Contains(t, header, "city_Manchester")
	assert.NotContains(t, header, "city_Bristol")
	assert.Contains(t, header, "normalised_salary")
}

func TestClusterCommand_InvalidWeight(t *testing.T) {
	_, _, err := runCLI(t, "cluster", "--weight", "2")
	assert.Error(t, err)
}

func TestDescribeCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name:     "numeric and categorical",
			args:     []string{"describe", "--column", "score_overall", "--column", "department_name"},
			contains: []string{"score_overall", "median", "department_name", "percent"},
		},
		{
			name:     "grouped",
			args:     []string{"describe", "-c", "score_overall", "--group-by", "department_name", "--stat", "median"},
			contains: []string{"score_overall by department_name", "Kitchen"},
		},
		{
			name:     "users table",
			args:     []string{"describe", "--table", "users", "--column", "age"},
			contains: []string{"age", "count"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, tt.args...)
			require.NoError(t, err, out)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestDescribeCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing column flag", []string{"describe"}},
		{"unknown column", []string{"describe", "--column", "height"}},
		{"unknown table", []string{"describe", "--table", "jobs", "--column", "age"}},
		{"unknown stat", []string{"describe", "--column", "age", "--group-by", "gender", "--stat", "sum"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRootOptions_InvalidTestAccount(t *testing.T) {
	_, _, err := runCLI(t, "clean", "--test-accounts", "abc")
	assert.Error(t, err)
}

func TestMissingInputs(t *testing.T) {
	t.Setenv("CANDID_PATHS_LOGS_DIR", t.TempDir())

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"clean", "--data-dir", t.TempDir(), "--output-dir", t.TempDir()})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestLogFormatFlag(t *testing.T) {
	_, _, err := runCLI(t, "clean", "--log-format", "text")
	assert.NoError(t, err)

	_, _, err = runCLI(t, "clean", "--log-format", "xml")
	assert.Error(t, err)
}

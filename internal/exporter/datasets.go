package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/tommurray222/candid-hospitality/internal/config"
	"github.com/tommurray222/candid-hospitality/internal/dataprocessing"
	"github.com/tommurray222/candid-hospitality/internal/infrastructure"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

// DatasetExporter writes pipeline datasets to the output directory
type DatasetExporter struct {
	csvWriter *CSVWriter
	bom       bool
	logger    *slog.Logger
}

// NewDatasetExporter creates a dataset exporter. bom prefixes every file
// with a UTF-8 byte order mark so Excel detects the encoding.
func NewDatasetExporter(paths *config.Paths, bom bool, logger *slog.Logger) *DatasetExporter {
	return &DatasetExporter{
		csvWriter: NewCSVWriter(paths),
		bom:       bom,
		logger:    infrastructure.WithComponent(logger, "exporter"),
	}
}

// ExportCleaned writes the cleaned users, matches and chats. It returns the
// written paths in that order.
func (d *DatasetExporter) ExportCleaned(ctx context.Context, clean *domain.CleanDataset) ([]string, error) {
	return d.exportAll(ctx, []namedTable{
		{config.UsersCleanCSV, dataprocessing.EncodeUsers(clean.Users)},
		{config.MatchesCleanCSV, dataprocessing.EncodeMatches(clean.Matches)},
		{config.ChatsCleanCSV, dataprocessing.EncodeChats(clean.Chats)},
	})
}

// ExportPrepared writes candid_data, the chat statistics and, when report is
// not nil, the data-quality issues and per-table counts.
func (d *DatasetExporter) ExportPrepared(ctx context.Context, prepared *domain.PreparedDataset, report *domain.Report) ([]string, error) {
	tables := []namedTable{
		{config.CandidDataCSV, dataprocessing.EncodeCandidates(prepared.Candidates)},
		{config.ChatStatsCSV, dataprocessing.EncodeChatStats(prepared.ChatStats)},
	}
	if report != nil {
		tables = append(tables,
			namedTable{config.DataQualityCSV, dataprocessing.EncodeIssues(report.Issues)},
			namedTable{config.QualitySummaryCSV, EncodeCounts(report)},
		)
	}
	return d.exportAll(ctx, tables)
}

// ExportTable writes a single table under filename.
func (d *DatasetExporter) ExportTable(ctx context.Context, filename string, t *dataprocessing.Table) (string, error) {
	path, err := d.csvWriter.WriteTable(filename, t, d.bom)
	if err != nil {
		return "", fmt.Errorf("failed to export %s: %w", filename, err)
	}
	d.logger.InfoContext(ctx, "Exported table",
		slog.String("table", t.Name),
		slog.String("path", path),
		slog.Int("rows", t.Len()))
	return path, nil
}

type namedTable struct {
	filename string
	table    *dataprocessing.Table
}

func (d *DatasetExporter) exportAll(ctx context.Context, tables []namedTable) ([]string, error) {
	paths := make([]string, 0, len(tables))
	for _, nt := range tables {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path, err := d.ExportTable(ctx, nt.filename, nt.table)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// EncodeCounts renders the per-table counts of a report, sorted by table.
func EncodeCounts(report *domain.Report) *dataprocessing.Table {
	names := make([]string, 0, len(report.Counts))
	for name := range report.Counts {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		c := report.Counts[name]
		rows = append(rows, []string{
			name,
			strconv.Itoa(c.Read),
			strconv.Itoa(c.Kept),
			strconv.Itoa(c.Dropped),
			strconv.Itoa(c.Flagged),
		})
	}
	return dataprocessing.NewTable("quality_summary",
		[]string{"table", "read", "kept", "dropped", "flagged"}, rows)
}

package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
)

const (
	indexSheet     = "Summary"
	maxSheetName   = 31
	chartWidth     = 720
	chartHeight    = 360
	chartAnchor    = "E2"
	percentFormat  = "0.0"
	decimalsFormat = "0.00"
)

// Workbook collects analysis sheets with native Excel charts.
type Workbook struct {
	file   *excelize.File
	sheets []string
	index  int
}

// NewWorkbook creates a workbook whose first sheet indexes the others.
func NewWorkbook() *Workbook {
	f := excelize.NewFile()
	_ = f.SetSheetName("Sheet1", indexSheet)
	_ = f.SetSheetRow(indexSheet, "A1", &[]any{"sheet", "kind", "columns"})
	return &Workbook{file: f, index: 1}
}

// Sheets returns the analysis sheet names in creation order.
func (w *Workbook) Sheets() []string {
	return append([]string(nil), w.sheets...)
}

// File exposes the underlying workbook.
func (w *Workbook) File() *excelize.File {
	return w.file
}

func (w *Workbook) newSheet(kind, name, columns string) (string, error) {
	base := sheetName(kind + "_" + name)
	name = base
	for i := 2; contains(w.sheets, name); i++ {
		suffix := fmt.Sprintf("_%d", i)
		name = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	if _, err := w.file.NewSheet(name); err != nil {
		return "", apperrors.NewStorageError("create sheet "+name, err)
	}
	w.sheets = append(w.sheets, name)
	w.index++
	cell, _ := excelize.CoordinatesToCellName(1, w.index)
	_ = w.file.SetSheetRow(indexSheet, cell, &[]any{name, kind, columns})
	return name, nil
}

// AddNumeric adds a sheet with the column summary, its histogram table and
// a column chart of the histogram.
func (w *Workbook) AddNumeric(f *Frame, col string, bins int) error {
	summary, err := Describe(f, col)
	if err != nil {
		return err
	}
	hist, err := Histogram(f, col, bins)
	if err != nil {
		return err
	}

	sheet, err := w.newSheet("num", col, col)
	if err != nil {
		return err
	}

	rows := [][]any{
		{"statistic", col},
		{"count", summary.Count},
		{"missing", summary.Missing},
		{"mean", cellValue(summary.Mean)},
		{"std", cellValue(summary.Std)},
		{"min", cellValue(summary.Min)},
		{"q1", cellValue(summary.Q1)},
		{"median", cellValue(summary.Median)},
		{"q3", cellValue(summary.Q3)},
		{"max", cellValue(summary.Max)},
		{"iqr", cellValue(summary.IQR)},
		{"outliers", summary.Outliers},
	}
	if err := w.writeRows(sheet, 1, 1, rows); err != nil {
		return err
	}

	histStart := len(rows) + 2
	histRows := [][]any{{"bin", "count"}}
	for _, b := range hist {
		histRows = append(histRows, []any{b.Label(), b.Count})
	}
	if err := w.writeRows(sheet, 1, histStart, histRows); err != nil {
		return err
	}
	if len(hist) == 0 {
		return nil
	}

	first, last := histStart+1, histStart+len(hist)
	return w.addChart(sheet, &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$%d", sheet, histStart),
			Categories: fmt.Sprintf("'%s'!$A$%d:$A$%d", sheet, first, last),
			Values:     fmt.Sprintf("'%s'!$B$%d:$B$%d", sheet, first, last),
		}},
		Title:  []excelize.RichTextRun{{Text: "Distribution of " + col}},
		Legend: excelize.ChartLegend{Position: "none"},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: col}}},
		YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "count"}}},
	})
}

// AddCategorical adds a sheet with the top categories and a horizontal bar
// chart labelled with counts.
func (w *Workbook) AddCategorical(f *Frame, col string, topN int) error {
	counts, err := CategoryCounts(f, col, topN)
	if err != nil {
		return err
	}
	sheet, err := w.newSheet("cat", col, col)
	if err != nil {
		return err
	}

	rows := [][]any{{col, "count", "percent"}}
	for _, c := range counts {
		rows = append(rows, []any{c.Value, c.Count, math.Round(c.Percent*10) / 10})
	}
	if err := w.writeRows(sheet, 1, 1, rows); err != nil {
		return err
	}
	if err := w.numberFormat(sheet, fmt.Sprintf("C2:C%d", len(rows)), percentFormat); err != nil {
		return err
	}
	if len(counts) == 0 {
		return nil
	}

	last := len(rows)
	return w.addChart(sheet, &excelize.Chart{
		Type: excelize.Bar,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", sheet),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, last),
			Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", sheet, last),
		}},
		Title:    []excelize.RichTextRun{{Text: "Distribution of " + col}},
		Legend:   excelize.ChartLegend{Position: "none"},
		PlotArea: excelize.ChartPlotArea{ShowVal: true},
		XAxis:    excelize.ChartAxis{ReverseOrder: true},
	})
}

// AddGrouped adds a sheet with stat of numericCol per groupCol and a bar chart.
func (w *Workbook) AddGrouped(f *Frame, numericCol, groupCol, stat string) error {
	groups, err := GroupedStat(f, numericCol, groupCol, stat)
	if err != nil {
		return err
	}
	sheet, err := w.newSheet("grp", numericCol+"_"+groupCol, numericCol+","+groupCol)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("%s of %s", stat, numericCol)
	rows := [][]any{{groupCol, header, "count"}}
	for _, g := range groups {
		rows = append(rows, []any{g.Group, cellValue(g.Value), g.Count})
	}
	if err := w.writeRows(sheet, 1, 1, rows); err != nil {
		return err
	}
	if err := w.numberFormat(sheet, fmt.Sprintf("B2:B%d", len(rows)), decimalsFormat); err != nil {
		return err
	}
	if len(groups) == 0 {
		return nil
	}

	last := len(rows)
	title := strings.ToUpper(stat[:1]) + stat[1:] + " of " + numericCol + " by " + groupCol
	return w.addChart(sheet, &excelize.Chart{
		Type: excelize.Bar,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", sheet),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, last),
			Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", sheet, last),
		}},
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "none"},
		XAxis:  excelize.ChartAxis{ReverseOrder: true},
	})
}

// AddCorrelation adds the correlation matrix with a red-white-green colour scale.
func (w *Workbook) AddCorrelation(f *Frame, cols ...string) error {
	m, err := Correlation(f, cols...)
	if err != nil {
		return err
	}
	sheet, err := w.newSheet("corr", "matrix", strings.Join(cols, ","))
	if err != nil {
		return err
	}

	header := []any{""}
	for _, c := range cols {
		header = append(header, c)
	}
	rows := [][]any{header}
	for i, c := range cols {
		row := []any{c}
		for _, v := range m.Values[i] {
			row = append(row, cellValue(v))
		}
		rows = append(rows, row)
	}
	if err := w.writeRows(sheet, 1, 1, rows); err != nil {
		return err
	}
	if len(cols) == 0 {
		return nil
	}

	last, _ := excelize.CoordinatesToCellName(len(cols)+1, len(cols)+1)
	area := "B2:" + last
	if err := w.numberFormat(sheet, area, decimalsFormat); err != nil {
		return err
	}
	err = w.file.SetConditionalFormat(sheet, area, []excelize.ConditionalFormatOptions{{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  "num",
		MinValue: "-1",
		MinColor: "#F8696B",
		MidType:  "num",
		MidValue: "0",
		MidColor: "#FFFFFF",
		MaxType:  "num",
		MaxValue: "1",
		MaxColor: "#63BE7B",
	}})
	if err != nil {
		return apperrors.NewStorageError("format correlation sheet", err)
	}
	return nil
}

// Save writes the workbook to path.
func (w *Workbook) Save(path string) error {
	if err := w.file.SaveAs(path); err != nil {
		return apperrors.NewStorageError("save workbook "+path, err)
	}
	return nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

func (w *Workbook) writeRows(sheet string, col, row int, rows [][]any) error {
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(col, row+i)
		if err != nil {
			return apperrors.NewStorageError("cell name", err)
		}
		values := r
		if err := w.file.SetSheetRow(sheet, cell, &values); err != nil {
			return apperrors.NewStorageError("write sheet "+sheet, err)
		}
	}
	return nil
}

func (w *Workbook) numberFormat(sheet, area, format string) error {
	style, err := w.file.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return apperrors.NewStorageError("number format", err)
	}
	cells := strings.SplitN(area, ":", 2)
	if len(cells) != 2 {
		return nil
	}
	if err := w.file.SetCellStyle(sheet, cells[0], cells[1], style); err != nil {
		return apperrors.NewStorageError("number format", err)
	}
	return nil
}

func (w *Workbook) addChart(sheet string, chart *excelize.Chart) error {
	chart.Dimension = excelize.ChartDimension{Width: chartWidth, Height: chartHeight}
	if err := w.file.AddChart(sheet, chartAnchor, chart); err != nil {
		return apperrors.NewStorageError("add chart to "+sheet, err)
	}
	return nil
}

// cellValue leaves NaN cells empty.
func cellValue(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// sheetName replaces characters Excel forbids and truncates to 31 runes.
func sheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]'`, r) {
			return '_'
		}
		return r
	}, s)
	return truncate(s, maxSheetName)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
